package repositories

import (
	"fmt"
	"storefront/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMCustomerRepository is a GORM implementation of CustomerRepository.
type GORMCustomerRepository struct {
	db *gorm.DB
}

// NewGORMCustomerRepository creates a new instance of GORMCustomerRepository.
func NewGORMCustomerRepository(db *gorm.DB) *GORMCustomerRepository {
	return &GORMCustomerRepository{
		db: db,
	}
}

// GetAll retrieves all customers from the database.
func (r *GORMCustomerRepository) GetAll() ([]models.Customer, error) {
	var customers []models.Customer
	if err := r.db.Find(&customers).Error; err != nil {
		return nil, fmt.Errorf("failed to get all customers: %w", err)
	}
	return customers, nil
}

// GetByUserID retrieves the customer attached to a user account.
func (r *GORMCustomerRepository) GetByUserID(userID string) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.First(&customer, "user_id = ?", userID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("customer for user %s: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get customer for user %s: %w", userID, err)
	}
	return &customer, nil
}

// Create creates a new customer in the database.
func (r *GORMCustomerRepository) Create(customer *models.Customer) error {
	if customer.ID == "" {
		customer.ID = uuid.New().String()
	}
	if customer.Membership == "" {
		customer.Membership = models.MembershipBronze
	}
	if err := r.db.Create(customer).Error; err != nil {
		return fmt.Errorf("failed to create customer: %w", err)
	}
	return nil
}

// Update updates an existing customer in the database.
func (r *GORMCustomerRepository) Update(customer *models.Customer) error {
	res := r.db.Save(customer)
	if res.Error != nil {
		return fmt.Errorf("failed to update customer: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("customer with ID %s not found for update: %w", customer.ID, ErrNotFound)
	}
	return nil
}
