package repositories

import (
	"fmt"
	"sync"

	"storefront/internal/models"

	"github.com/google/uuid"
)

// MockCustomerRepository is an in-memory implementation of CustomerRepository.
type MockCustomerRepository struct {
	customers map[string]models.Customer // keyed by customer ID
	mu        sync.RWMutex
}

// NewMockCustomerRepository creates a new instance of MockCustomerRepository.
func NewMockCustomerRepository() *MockCustomerRepository {
	return &MockCustomerRepository{
		customers: make(map[string]models.Customer),
	}
}

// GetAll returns all customers.
func (r *MockCustomerRepository) GetAll() ([]models.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	customerList := make([]models.Customer, 0, len(r.customers))
	for _, customer := range r.customers {
		customerList = append(customerList, customer)
	}
	return customerList, nil
}

// GetByUserID returns the customer attached to a user account.
func (r *MockCustomerRepository) GetByUserID(userID string) (*models.Customer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, customer := range r.customers {
		if customer.UserID == userID {
			c := customer
			return &c, nil
		}
	}
	return nil, fmt.Errorf("customer for user %s: %w", userID, ErrNotFound)
}

// Create adds a new customer.
func (r *MockCustomerRepository) Create(customer *models.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if customer.ID == "" {
		customer.ID = uuid.New().String()
	}
	if customer.Membership == "" {
		customer.Membership = models.MembershipBronze
	}
	r.customers[customer.ID] = *customer
	return nil
}

// Update modifies an existing customer.
func (r *MockCustomerRepository) Update(customer *models.Customer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.customers[customer.ID]
	if !ok {
		return fmt.Errorf("customer with ID %s not found for update: %w", customer.ID, ErrNotFound)
	}
	r.customers[customer.ID] = *customer
	return nil
}
