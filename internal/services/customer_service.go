package services

import (
	"errors"
	"fmt"

	"storefront/internal/models"
	"storefront/internal/repositories"
)

// CustomerService handles business logic for customer profiles.
type CustomerService struct {
	customers repositories.CustomerRepository
}

// NewCustomerService creates a new CustomerService.
func NewCustomerService(customers repositories.CustomerRepository) *CustomerService {
	return &CustomerService{
		customers: customers,
	}
}

// GetAllCustomers retrieves all customer profiles.
func (s *CustomerService) GetAllCustomers() ([]models.Customer, error) {
	return s.customers.GetAll()
}

// GetOrCreateByUserID returns the customer profile for a user account,
// creating an empty bronze profile on first access. Checkout deliberately
// does not share this behavior: it rejects a missing profile instead.
func (s *CustomerService) GetOrCreateByUserID(userID string) (*models.Customer, error) {
	customer, err := s.customers.GetByUserID(userID)
	if err == nil {
		return customer, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up customer for user %s: %w", userID, err)
	}

	customer = &models.Customer{
		UserID:     userID,
		Membership: models.MembershipBronze,
	}
	if err := s.customers.Create(customer); err != nil {
		return nil, fmt.Errorf("failed to create customer for user %s: %w", userID, err)
	}
	return customer, nil
}

// UpdateProfile applies the given profile fields to the user's customer
// record, creating it first if needed.
func (s *CustomerService) UpdateProfile(userID string, patch *models.Customer) (*models.Customer, error) {
	customer, err := s.GetOrCreateByUserID(userID)
	if err != nil {
		return nil, err
	}

	if patch.Phone != "" {
		customer.Phone = patch.Phone
	}
	if patch.Birthdate != nil {
		customer.Birthdate = patch.Birthdate
	}
	if patch.Membership != "" {
		customer.Membership = patch.Membership
	}

	if err := s.customers.Update(customer); err != nil {
		return nil, fmt.Errorf("failed to update customer for user %s: %w", userID, err)
	}
	return customer, nil
}
