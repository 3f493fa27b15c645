package repositories

import "storefront/internal/models"

// CustomerRepository defines the interface for customer data access.
type CustomerRepository interface {
	GetAll() ([]models.Customer, error)
	GetByUserID(userID string) (*models.Customer, error)
	Create(customer *models.Customer) error
	Update(customer *models.Customer) error
}
