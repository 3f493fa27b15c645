package repositories

import (
	"fmt"
	"sync"
	"time"

	"storefront/internal/models"

	"github.com/google/uuid"
)

// MockCartRepository is an in-memory implementation of CartRepository.
// Items are keyed by (cart, product), which enforces the same uniqueness
// invariant the schema's composite index provides: concurrent upserts for
// the same pair merge into one row under the repository mutex.
type MockCartRepository struct {
	carts      map[string]models.Cart
	items      map[string]map[string]models.CartItem // cartID -> productID -> item
	products   *MockProductRepository
	nextItemID uint
	mu         sync.RWMutex
}

// NewMockCartRepository creates a new instance of MockCartRepository.
// The product repository is used to join product snapshots onto items.
func NewMockCartRepository(products *MockProductRepository) *MockCartRepository {
	return &MockCartRepository{
		carts:    make(map[string]models.Cart),
		items:    make(map[string]map[string]models.CartItem),
		products: products,
	}
}

// Create adds a new, empty cart.
func (r *MockCartRepository) Create(cart *models.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cart.ID == "" {
		cart.ID = uuid.New().String()
	}
	if cart.CreatedAt.IsZero() {
		cart.CreatedAt = time.Now()
	}
	r.carts[cart.ID] = *cart
	r.items[cart.ID] = make(map[string]models.CartItem)
	return nil
}

// GetByID returns a cart with its items and product snapshots.
func (r *MockCartRepository) GetByID(id string) (*models.Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cart, ok := r.carts[id]
	if !ok {
		return nil, fmt.Errorf("cart with ID %s: %w", id, ErrNotFound)
	}
	cart.Items = r.joinItems(id)
	return &cart, nil
}

// Delete removes a cart and all its items.
func (r *MockCartRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.carts[id]; !ok {
		return fmt.Errorf("cart with ID %s not found for deletion: %w", id, ErrNotFound)
	}
	delete(r.carts, id)
	delete(r.items, id)
	return nil
}

// CountItems returns the number of item rows in a cart.
func (r *MockCartRepository) CountItems(cartID string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.items[cartID])), nil
}

// ListItems returns the items of a cart with their product snapshots.
func (r *MockCartRepository) ListItems(cartID string) ([]models.CartItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.carts[cartID]; !ok {
		return nil, fmt.Errorf("cart with ID %s: %w", cartID, ErrNotFound)
	}
	return r.joinItems(cartID), nil
}

// joinItems resolves products onto items. Callers must hold the lock.
func (r *MockCartRepository) joinItems(cartID string) []models.CartItem {
	itemList := make([]models.CartItem, 0, len(r.items[cartID]))
	for _, item := range r.items[cartID] {
		if r.products != nil {
			if product, err := r.products.GetByID(item.ProductID); err == nil {
				item.Product = *product
			}
		}
		itemList = append(itemList, item)
	}
	return itemList
}

// UpsertItem adds delta to the (cart, product) row, creating it if
// missing. The map key guarantees at most one row per pair.
func (r *MockCartRepository) UpsertItem(cartID, productID string, delta int) (*models.CartItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.carts[cartID]; !ok {
		return nil, fmt.Errorf("cart with ID %s: %w", cartID, ErrNotFound)
	}

	cartItems := r.items[cartID]
	item, ok := cartItems[productID]
	if ok {
		item.Quantity += delta
	} else {
		r.nextItemID++
		item = models.CartItem{
			ID:        r.nextItemID,
			CartID:    cartID,
			ProductID: productID,
			Quantity:  delta,
		}
	}
	cartItems[productID] = item

	if r.products != nil {
		if product, err := r.products.GetByID(productID); err == nil {
			item.Product = *product
		}
	}
	return &item, nil
}

// UpdateItemQuantity overwrites the quantity of a cart item.
func (r *MockCartRepository) UpdateItemQuantity(cartID string, itemID uint, quantity int) (*models.CartItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for productID, item := range r.items[cartID] {
		if item.ID == itemID {
			item.Quantity = quantity
			r.items[cartID][productID] = item
			return &item, nil
		}
	}
	return nil, fmt.Errorf("cart item %d in cart %s: %w", itemID, cartID, ErrNotFound)
}

// RemoveItem deletes a single item from a cart.
func (r *MockCartRepository) RemoveItem(cartID string, itemID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for productID, item := range r.items[cartID] {
		if item.ID == itemID {
			delete(r.items[cartID], productID)
			return nil
		}
	}
	return fmt.Errorf("cart item %d in cart %s: %w", itemID, cartID, ErrNotFound)
}

// snapshot copies the current state for rollback by MockUnitOfWork.
func (r *MockCartRepository) snapshot() (map[string]models.Cart, map[string]map[string]models.CartItem) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	carts := make(map[string]models.Cart, len(r.carts))
	for id, cart := range r.carts {
		carts[id] = cart
	}
	items := make(map[string]map[string]models.CartItem, len(r.items))
	for cartID, cartItems := range r.items {
		inner := make(map[string]models.CartItem, len(cartItems))
		for productID, item := range cartItems {
			inner[productID] = item
		}
		items[cartID] = inner
	}
	return carts, items
}

func (r *MockCartRepository) restore(carts map[string]models.Cart, items map[string]map[string]models.CartItem) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.carts = carts
	r.items = items
}
