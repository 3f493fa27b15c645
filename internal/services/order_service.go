package services

import (
	"errors"
	"fmt"

	"storefront/internal/models"
	"storefront/internal/repositories"
)

// OrderService handles reads and administrative updates on orders.
// Order creation goes through CheckoutService.
type OrderService struct {
	orders    repositories.OrderRepository
	customers repositories.CustomerRepository
}

// NewOrderService creates a new OrderService.
func NewOrderService(orders repositories.OrderRepository, customers repositories.CustomerRepository) *OrderService {
	return &OrderService{
		orders:    orders,
		customers: customers,
	}
}

// ListOrders returns the requester's own orders; admins see all orders.
// A user without a customer profile simply has no orders.
func (s *OrderService) ListOrders(userID string, isAdmin bool) ([]models.Order, error) {
	if isAdmin {
		return s.orders.GetAll()
	}

	customer, err := s.customers.GetByUserID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return []models.Order{}, nil
		}
		return nil, fmt.Errorf("failed to look up customer for user %s: %w", userID, err)
	}
	return s.orders.GetByCustomer(customer.ID)
}

// GetOrder retrieves a single order, restricted to its owner or admins.
func (s *OrderService) GetOrder(id, userID string, isAdmin bool) (*models.Order, error) {
	order, err := s.orders.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}

	if !isAdmin {
		customer, err := s.customers.GetByUserID(userID)
		if err != nil || customer.ID != order.CustomerID {
			return nil, ErrForbidden
		}
	}
	return order, nil
}

// UpdatePaymentStatus transitions the payment status of an order. This
// is the only mutation an order admits after creation.
func (s *OrderService) UpdatePaymentStatus(id string, status string) error {
	validStatuses := map[string]bool{
		models.PaymentStatusPending:  true,
		models.PaymentStatusFailed:   true,
		models.PaymentStatusComplete: true,
	}
	if _, ok := validStatuses[status]; !ok {
		return fmt.Errorf("%w: %s", ErrInvalidPaymentStatus, status)
	}

	if err := s.orders.UpdatePaymentStatus(id, status); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrOrderNotFound
		}
		return fmt.Errorf("failed to update payment status for order %s: %w", id, err)
	}
	return nil
}
