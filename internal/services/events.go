package services

import "time"

// OrderEventSink receives domain events after they are durable. Delivery
// is best-effort: a sink failure is logged by the publisher and never
// propagated into the operation that emitted the event.
type OrderEventSink interface {
	Publish(exchange, routingKey string, body []byte) error
}

// OrderCreatedEvent is the payload published on the "order.created"
// routing key after a checkout commits.
type OrderCreatedEvent struct {
	OrderID       string    `json:"order_id"`
	CustomerID    string    `json:"customer_id"`
	UserID        string    `json:"user_id"`
	PaymentStatus string    `json:"payment_status"`
	Total         float64   `json:"total"`
	PlacedAt      time.Time `json:"placed_at"`
}
