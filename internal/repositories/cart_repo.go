package repositories

import (
	"storefront/internal/models"
)

// CartRepository defines the interface for cart and cart-item data access.
// ListItems returns items joined with their product so a caller reading
// prices sees them from the same query.
type CartRepository interface {
	Create(cart *models.Cart) error
	GetByID(id string) (*models.Cart, error)
	Delete(id string) error
	CountItems(cartID string) (int64, error)
	ListItems(cartID string) ([]models.CartItem, error)
	UpsertItem(cartID, productID string, delta int) (*models.CartItem, error)
	UpdateItemQuantity(cartID string, itemID uint, quantity int) (*models.CartItem, error)
	RemoveItem(cartID string, itemID uint) error
}
