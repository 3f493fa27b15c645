package models

import "time"

// Payment statuses for orders. An order starts pending and only its
// payment status may change afterwards.
const (
	PaymentStatusPending  = "pending"
	PaymentStatusFailed   = "failed"
	PaymentStatusComplete = "complete"
)

// Order is the durable record of a completed checkout. Except for
// PaymentStatus it is immutable once created.
type Order struct {
	ID            string      `json:"id" gorm:"primaryKey;type:varchar(36)"`
	CustomerID    string      `json:"customer_id" gorm:"type:varchar(36);not null;index"`
	PaymentStatus string      `json:"payment_status" gorm:"type:varchar(10);default:pending"`
	PlacedAt      time.Time   `json:"placed_at"`
	Items         []OrderItem `json:"items" gorm:"foreignKey:OrderID"`
}

// OrderItem is one line of an order. UnitPrice is copied from the
// product at checkout time so the order history is immune to later
// price changes.
type OrderItem struct {
	ID        uint    `json:"id" gorm:"primaryKey;autoIncrement"`
	OrderID   string  `json:"order_id" gorm:"type:varchar(36);not null;index"`
	ProductID string  `json:"product_id" gorm:"type:varchar(36);not null"`
	Quantity  int     `json:"quantity" gorm:"not null"`
	UnitPrice float64 `json:"unit_price" gorm:"not null"`
	Product   Product `json:"product" gorm:"foreignKey:ProductID"`
}

// TotalAmount sums the snapshotted line prices.
func (o Order) TotalAmount() float64 {
	var total float64
	for _, item := range o.Items {
		total += float64(item.Quantity) * item.UnitPrice
	}
	return total
}
