package repositories

import (
	"fmt"
	"storefront/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{
		db: db,
	}
}

// GetAll retrieves all orders with their items.
func (r *GORMOrderRepository) GetAll() ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.Preload("Items.Product").Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to get all orders: %w", err)
	}
	return orders, nil
}

// GetByCustomer retrieves the orders placed by one customer.
func (r *GORMOrderRepository) GetByCustomer(customerID string) ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.Preload("Items.Product").Where("customer_id = ?", customerID).Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to get orders for customer %s: %w", customerID, err)
	}
	return orders, nil
}

// GetByID retrieves a single order by its ID with its items.
func (r *GORMOrderRepository) GetByID(id string) (*models.Order, error) {
	var order models.Order
	if err := r.db.Preload("Items.Product").First(&order, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("order with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get order by ID %s: %w", id, err)
	}
	return &order, nil
}

// Create inserts a new order row. Items are inserted separately through
// BulkInsertItems so the caller controls batching.
func (r *GORMOrderRepository) Create(order *models.Order) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	if err := r.db.Omit("Items").Create(order).Error; err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

// BulkInsertItems inserts all order items in one batched write.
func (r *GORMOrderRepository) BulkInsertItems(items []models.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	// Omit Product so GORM does not try to upsert the associated rows.
	if err := r.db.Omit("Product").Create(&items).Error; err != nil {
		return fmt.Errorf("failed to insert order items: %w", err)
	}
	return nil
}

// UpdatePaymentStatus updates the payment status of an order.
func (r *GORMOrderRepository) UpdatePaymentStatus(id string, status string) error {
	res := r.db.Model(&models.Order{}).Where("id = ?", id).Update("payment_status", status)
	if res.Error != nil {
		return fmt.Errorf("failed to update payment status of order %s: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("order with ID %s not found for status update: %w", id, ErrNotFound)
	}
	return nil
}
