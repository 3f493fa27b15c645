package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"storefront/internal/models"
	"storefront/internal/repositories"
)

// CheckoutService converts a cart into an order inside one unit of work.
type CheckoutService struct {
	carts     repositories.CartRepository
	customers repositories.CustomerRepository
	uow       repositories.UnitOfWork
	sink      OrderEventSink
}

// NewCheckoutService creates a new CheckoutService. The sink may be nil,
// in which case no events are published.
func NewCheckoutService(carts repositories.CartRepository, customers repositories.CustomerRepository, uow repositories.UnitOfWork, sink OrderEventSink) *CheckoutService {
	return &CheckoutService{
		carts:     carts,
		customers: customers,
		uow:       uow,
		sink:      sink,
	}
}

// CreateOrder validates the cart reference, snapshots its line items into
// immutable order items (capturing each product's unit price at purchase
// time), deletes the cart, and emits an order-created event.
//
// All preconditions are checked before any mutation. The conversion runs
// inside a single transaction: callers observe either a fully-formed
// order and no cart, or, on failure, an untouched cart and no order.
func (s *CheckoutService) CreateOrder(userID, cartID string) (*models.Order, error) {
	// Preconditions, each with a distinct error.
	if _, err := s.carts.GetByID(cartID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCartNotFound
		}
		return nil, fmt.Errorf("failed to look up cart %s: %w", cartID, err)
	}

	count, err := s.carts.CountItems(cartID)
	if err != nil {
		return nil, fmt.Errorf("failed to count items of cart %s: %w", cartID, err)
	}
	if count == 0 {
		return nil, ErrEmptyCart
	}

	// A missing customer profile is rejected, never auto-provisioned.
	customer, err := s.customers.GetByUserID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCustomerNotFound
		}
		return nil, fmt.Errorf("failed to look up customer for user %s: %w", userID, err)
	}

	var order *models.Order
	err = s.uow.Do(func(stores repositories.CheckoutStores) error {
		order = &models.Order{
			CustomerID:    customer.ID,
			PaymentStatus: models.PaymentStatusPending,
			PlacedAt:      time.Now(),
		}
		if err := stores.Orders.Create(order); err != nil {
			return err
		}

		// One joined read: each item carries its product's unit price as
		// seen inside this transaction. That price is frozen into the
		// order item and never read from the product again.
		cartItems, err := stores.Carts.ListItems(cartID)
		if err != nil {
			return err
		}
		// The count above ran outside this transaction. A cart emptied
		// in between must not become a zero-item order.
		if len(cartItems) == 0 {
			return ErrEmptyCart
		}

		orderItems := make([]models.OrderItem, 0, len(cartItems))
		for _, item := range cartItems {
			orderItems = append(orderItems, models.OrderItem{
				OrderID:   order.ID,
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				UnitPrice: item.Product.UnitPrice,
				Product:   item.Product,
			})
		}
		if err := stores.Orders.BulkInsertItems(orderItems); err != nil {
			return err
		}

		if err := stores.Carts.Delete(cartID); err != nil {
			return err
		}

		order.Items = orderItems
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("checkout of cart %s failed: %w", cartID, err)
	}

	s.publishOrderCreated(order, userID)

	return order, nil
}

// publishOrderCreated notifies the event sink after the checkout is
// durable. Failures are logged only; the order already committed.
func (s *CheckoutService) publishOrderCreated(order *models.Order, userID string) {
	if s.sink == nil {
		log.Println("Order event sink is not configured. Skipping order.created publication.")
		return
	}

	event := OrderCreatedEvent{
		OrderID:       order.ID,
		CustomerID:    order.CustomerID,
		UserID:        userID,
		PaymentStatus: order.PaymentStatus,
		Total:         order.TotalAmount(),
		PlacedAt:      order.PlacedAt,
	}
	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal order.created event for order %s: %v", order.ID, err)
		return
	}

	if err := s.sink.Publish("orders", "order.created", body); err != nil {
		log.Printf("Warning: failed to publish order.created event for order %s: %v", order.ID, err)
		return
	}
	log.Printf("Published order.created event for order %s", order.ID)
}
