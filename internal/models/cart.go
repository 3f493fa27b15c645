package models

import "time"

// Cart is a transient pre-purchase collection of product selections,
// keyed by an opaque UUID handed to the client. It is deleted (with its
// items) when checkout converts it into an Order.
type Cart struct {
	ID        string     `json:"id" gorm:"primaryKey;type:varchar(36)"`
	CreatedAt time.Time  `json:"created_at"`
	Items     []CartItem `json:"items" gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE"`
}

// CartItem is one line of a cart. At most one row may exist per
// (cart, product) pair; adding the same product again increments the
// quantity instead of creating a duplicate.
type CartItem struct {
	ID        uint    `json:"id" gorm:"primaryKey;autoIncrement"`
	CartID    string  `json:"cart_id" gorm:"type:varchar(36);not null;uniqueIndex:idx_cart_product"`
	ProductID string  `json:"product_id" gorm:"type:varchar(36);not null;uniqueIndex:idx_cart_product" validate:"required,uuid"`
	Quantity  int     `json:"quantity" gorm:"not null" validate:"required,gte=1"`
	Product   Product `json:"product" gorm:"foreignKey:ProductID"`
}

// TotalPrice is the live total of the line at the product's current price.
func (i CartItem) TotalPrice() float64 {
	return float64(i.Quantity) * i.Product.UnitPrice
}
