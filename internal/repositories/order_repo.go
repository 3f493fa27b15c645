package repositories

import (
	"storefront/internal/models"
)

// OrderRepository defines the interface for order data access.
// Create and BulkInsertItems are invocable inside a unit of work so the
// checkout conversion commits or rolls back as one.
type OrderRepository interface {
	GetAll() ([]models.Order, error)
	GetByCustomer(customerID string) ([]models.Order, error)
	GetByID(id string) (*models.Order, error)
	Create(order *models.Order) error
	BulkInsertItems(items []models.OrderItem) error
	UpdatePaymentStatus(id string, status string) error
}
