package services

import (
	"errors"
	"fmt"

	"storefront/internal/models"
	"storefront/internal/repositories"
)

// CartService handles business logic for carts and their items.
type CartService struct {
	carts    repositories.CartRepository
	products repositories.ProductRepository
}

// NewCartService creates a new CartService.
func NewCartService(carts repositories.CartRepository, products repositories.ProductRepository) *CartService {
	return &CartService{
		carts:    carts,
		products: products,
	}
}

// CreateCart creates a new, empty cart and returns it.
func (s *CartService) CreateCart() (*models.Cart, error) {
	cart := &models.Cart{}
	if err := s.carts.Create(cart); err != nil {
		return nil, fmt.Errorf("failed to create cart: %w", err)
	}
	return cart, nil
}

// GetCart retrieves a cart with its items and product snapshots.
func (s *CartService) GetCart(id string) (*models.Cart, error) {
	cart, err := s.carts.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCartNotFound
		}
		return nil, err
	}
	return cart, nil
}

// DeleteCart removes a cart and all its items.
func (s *CartService) DeleteCart(id string) error {
	if err := s.carts.Delete(id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrCartNotFound
		}
		return err
	}
	return nil
}

// ListItems returns the items of a cart.
func (s *CartService) ListItems(cartID string) ([]models.CartItem, error) {
	items, err := s.carts.ListItems(cartID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCartNotFound
		}
		return nil, err
	}
	return items, nil
}

// AddItem adds quantity of a product to a cart. Adding a product already
// in the cart increments the existing line instead of creating a second
// row; the repository absorbs the concurrent-insert race against the
// (cart, product) unique constraint.
func (s *CartService) AddItem(cartID, productID string, quantity int) (*models.CartItem, error) {
	if _, err := s.products.GetByID(productID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to look up product %s: %w", productID, err)
	}

	item, err := s.carts.UpsertItem(cartID, productID, quantity)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCartNotFound
		}
		return nil, fmt.Errorf("failed to add item to cart %s: %w", cartID, err)
	}
	return item, nil
}

// UpdateItem overwrites the quantity of a cart item.
func (s *CartService) UpdateItem(cartID string, itemID uint, quantity int) (*models.CartItem, error) {
	item, err := s.carts.UpdateItemQuantity(cartID, itemID, quantity)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCartItemNotFound
		}
		return nil, err
	}
	return item, nil
}

// RemoveItem deletes a single item from a cart.
func (s *CartService) RemoveItem(cartID string, itemID uint) error {
	if err := s.carts.RemoveItem(cartID, itemID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrCartItemNotFound
		}
		return err
	}
	return nil
}
