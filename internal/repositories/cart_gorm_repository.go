package repositories

import (
	"errors"
	"fmt"
	"storefront/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMCartRepository is a GORM implementation of CartRepository.
type GORMCartRepository struct {
	db *gorm.DB
}

// NewGORMCartRepository creates a new instance of GORMCartRepository.
func NewGORMCartRepository(db *gorm.DB) *GORMCartRepository {
	return &GORMCartRepository{
		db: db,
	}
}

// Create creates a new, empty cart in the database.
func (r *GORMCartRepository) Create(cart *models.Cart) error {
	if cart.ID == "" {
		cart.ID = uuid.New().String()
	}
	if err := r.db.Create(cart).Error; err != nil {
		return fmt.Errorf("failed to create cart: %w", err)
	}
	return nil
}

// GetByID retrieves a cart with its items and their products.
func (r *GORMCartRepository) GetByID(id string) (*models.Cart, error) {
	var cart models.Cart
	if err := r.db.Preload("Items.Product").First(&cart, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("cart with ID %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get cart by ID %s: %w", id, err)
	}
	return &cart, nil
}

// Delete removes a cart and its items. Items are deleted explicitly so
// the behavior does not depend on the store honoring the FK cascade.
func (r *GORMCartRepository) Delete(id string) error {
	if err := r.db.Delete(&models.CartItem{}, "cart_id = ?", id).Error; err != nil {
		return fmt.Errorf("failed to delete items of cart %s: %w", id, err)
	}
	res := r.db.Delete(&models.Cart{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete cart: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("cart with ID %s not found for deletion: %w", id, ErrNotFound)
	}
	return nil
}

// CountItems returns the number of item rows in a cart.
func (r *GORMCartRepository) CountItems(cartID string) (int64, error) {
	var count int64
	if err := r.db.Model(&models.CartItem{}).Where("cart_id = ?", cartID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count items of cart %s: %w", cartID, err)
	}
	return count, nil
}

// ListItems returns the items of a cart joined with their product in a
// single query, so the prices a caller reads are consistent within the
// surrounding transaction.
func (r *GORMCartRepository) ListItems(cartID string) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.db.Joins("Product").Where("cart_items.cart_id = ?", cartID).Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to list items of cart %s: %w", cartID, err)
	}
	return items, nil
}

// UpsertItem adds delta to the quantity of the (cart, product) row,
// creating the row if it does not exist. Two concurrent calls may both
// miss the update and race to insert; the schema's unique index rejects
// the loser, which then retries as an increment. Requires the gorm
// connection to be opened with TranslateError so duplicate-key errors
// surface as gorm.ErrDuplicatedKey.
func (r *GORMCartRepository) UpsertItem(cartID, productID string, delta int) (*models.CartItem, error) {
	// The item row alone would not catch a bad cart reference on stores
	// that do not enforce the FK, so verify the cart first.
	var cartCount int64
	if err := r.db.Model(&models.Cart{}).Where("id = ?", cartID).Count(&cartCount).Error; err != nil {
		return nil, fmt.Errorf("failed to look up cart %s: %w", cartID, err)
	}
	if cartCount == 0 {
		return nil, fmt.Errorf("cart with ID %s: %w", cartID, ErrNotFound)
	}

	for attempt := 0; attempt < 2; attempt++ {
		res := r.db.Model(&models.CartItem{}).
			Where("cart_id = ? AND product_id = ?", cartID, productID).
			UpdateColumn("quantity", gorm.Expr("quantity + ?", delta))
		if res.Error != nil {
			return nil, fmt.Errorf("failed to increment cart item: %w", res.Error)
		}
		if res.RowsAffected > 0 {
			return r.getItem(cartID, productID)
		}

		item := &models.CartItem{CartID: cartID, ProductID: productID, Quantity: delta}
		err := r.db.Create(item).Error
		if err == nil {
			return r.getItem(cartID, productID)
		}
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("failed to create cart item: %w", err)
		}
		// Lost the insert race; loop once more and increment instead.
	}
	return nil, fmt.Errorf("failed to upsert item for cart %s product %s", cartID, productID)
}

func (r *GORMCartRepository) getItem(cartID, productID string) (*models.CartItem, error) {
	var item models.CartItem
	if err := r.db.Joins("Product").
		Where("cart_items.cart_id = ? AND cart_items.product_id = ?", cartID, productID).
		First(&item).Error; err != nil {
		return nil, fmt.Errorf("failed to load cart item: %w", err)
	}
	return &item, nil
}

// UpdateItemQuantity overwrites the quantity of a cart item.
func (r *GORMCartRepository) UpdateItemQuantity(cartID string, itemID uint, quantity int) (*models.CartItem, error) {
	res := r.db.Model(&models.CartItem{}).
		Where("id = ? AND cart_id = ?", itemID, cartID).
		UpdateColumn("quantity", quantity)
	if res.Error != nil {
		return nil, fmt.Errorf("failed to update cart item %d: %w", itemID, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("cart item %d in cart %s: %w", itemID, cartID, ErrNotFound)
	}

	var item models.CartItem
	if err := r.db.Joins("Product").Where("cart_items.id = ?", itemID).First(&item).Error; err != nil {
		return nil, fmt.Errorf("failed to load cart item %d: %w", itemID, err)
	}
	return &item, nil
}

// RemoveItem deletes a single item from a cart.
func (r *GORMCartRepository) RemoveItem(cartID string, itemID uint) error {
	res := r.db.Delete(&models.CartItem{}, "id = ? AND cart_id = ?", itemID, cartID)
	if res.Error != nil {
		return fmt.Errorf("failed to remove cart item %d: %w", itemID, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("cart item %d in cart %s: %w", itemID, cartID, ErrNotFound)
	}
	return nil
}
