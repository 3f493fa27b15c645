package repositories

import (
	"fmt"
	"sync"
	"time"

	"storefront/internal/models"

	"github.com/google/uuid"
)

// MockOrderRepository is an in-memory implementation of OrderRepository.
// InsertItemsErr lets tests induce a failure inside the checkout unit of
// work to exercise rollback.
type MockOrderRepository struct {
	orders     map[string]models.Order
	nextItemID uint
	mu         sync.RWMutex

	InsertItemsErr error
}

// NewMockOrderRepository creates a new instance of MockOrderRepository.
func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{
		orders: make(map[string]models.Order),
	}
}

// GetAll returns all orders.
func (r *MockOrderRepository) GetAll() ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	orderList := make([]models.Order, 0, len(r.orders))
	for _, order := range r.orders {
		orderList = append(orderList, order)
	}
	return orderList, nil
}

// GetByCustomer returns the orders of one customer.
func (r *MockOrderRepository) GetByCustomer(customerID string) ([]models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var orderList []models.Order
	for _, order := range r.orders {
		if order.CustomerID == customerID {
			orderList = append(orderList, order)
		}
	}
	return orderList, nil
}

// GetByID returns an order by its ID.
func (r *MockOrderRepository) GetByID(id string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.orders[id]
	if !ok {
		return nil, fmt.Errorf("order with ID %s: %w", id, ErrNotFound)
	}
	return &order, nil
}

// Create adds a new order.
func (r *MockOrderRepository) Create(order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	if order.PaymentStatus == "" {
		order.PaymentStatus = models.PaymentStatusPending
	}
	if order.PlacedAt.IsZero() {
		order.PlacedAt = time.Now()
	}
	r.orders[order.ID] = *order
	return nil
}

// BulkInsertItems attaches items to their orders.
func (r *MockOrderRepository) BulkInsertItems(items []models.OrderItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.InsertItemsErr != nil {
		return r.InsertItemsErr
	}

	for _, item := range items {
		order, ok := r.orders[item.OrderID]
		if !ok {
			return fmt.Errorf("order with ID %s not found for item insert: %w", item.OrderID, ErrNotFound)
		}
		r.nextItemID++
		item.ID = r.nextItemID
		order.Items = append(order.Items, item)
		r.orders[item.OrderID] = order
	}
	return nil
}

// UpdatePaymentStatus updates the payment status of an order.
func (r *MockOrderRepository) UpdatePaymentStatus(id string, status string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[id]
	if !ok {
		return fmt.Errorf("order with ID %s not found for status update: %w", id, ErrNotFound)
	}
	order.PaymentStatus = status
	r.orders[id] = order
	return nil
}

// snapshot copies the current state for rollback by MockUnitOfWork.
func (r *MockOrderRepository) snapshot() map[string]models.Order {
	r.mu.RLock()
	defer r.mu.RUnlock()

	snap := make(map[string]models.Order, len(r.orders))
	for id, order := range r.orders {
		items := make([]models.OrderItem, len(order.Items))
		copy(items, order.Items)
		order.Items = items
		snap[id] = order
	}
	return snap
}

func (r *MockOrderRepository) restore(snap map[string]models.Order) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders = snap
}
