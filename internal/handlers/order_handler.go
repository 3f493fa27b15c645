package handlers

import (
	"errors"
	"log"

	"storefront/internal/middleware"
	"storefront/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests for orders: checkout, reads, and
// the admin-only payment status transition.
type OrderHandler struct {
	checkout *services.CheckoutService
	orders   *services.OrderService
	validate *validator.Validate
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(checkout *services.CheckoutService, orders *services.OrderService) *OrderHandler {
	return &OrderHandler{
		checkout: checkout,
		orders:   orders,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the order routes with the Fiber app. All of
// them require authentication; the status transition requires admin.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Post("/", h.HandleCreateOrder)
	orderRoutes.Get("/", h.HandleGetOrders)
	orderRoutes.Get("/:id", h.HandleGetOrderByID)
	orderRoutes.Patch("/:id", middleware.AdminRequired(), h.HandleUpdatePaymentStatus)
}

// CreateOrderRequest is the checkout request body: the cart to convert.
type CreateOrderRequest struct {
	CartID string `json:"cart_id" validate:"required,uuid"`
}

// HandleCreateOrder converts the given cart into an order for the
// authenticated user's customer profile.
func (h *OrderHandler) HandleCreateOrder(c *fiber.Ctx) error {
	var req CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing checkout request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "A valid cart_id is required",
			"error":   err.Error(),
		})
	}

	order, err := h.checkout.CreateOrder(middleware.UserID(c), req.CartID)
	if err != nil {
		log.Printf("Error creating order from cart %s: %v", req.CartID, err)
		switch {
		case errors.Is(err, services.ErrCartNotFound),
			errors.Is(err, services.ErrEmptyCart),
			errors.Is(err, services.ErrCustomerNotFound):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Checkout failed",
				"error":   err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create order",
			"error":   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(order)
}

// HandleGetOrders retrieves the requester's orders (all orders for admins).
func (h *OrderHandler) HandleGetOrders(c *fiber.Ctx) error {
	orders, err := h.orders.ListOrders(middleware.UserID(c), middleware.IsAdmin(c))
	if err != nil {
		log.Printf("Error getting orders: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve orders",
			"error":   err.Error(),
		})
	}
	return c.JSON(orders)
}

// HandleGetOrderByID retrieves a single order by its ID.
func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	orderID := c.Params("id")
	order, err := h.orders.GetOrder(orderID, middleware.UserID(c), middleware.IsAdmin(c))
	if err != nil {
		log.Printf("Error getting order by ID %s: %v", orderID, err)
		switch {
		case errors.Is(err, services.ErrOrderNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Order not found",
			})
		case errors.Is(err, services.ErrForbidden):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "You do not have permission to view this order",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve order",
			"error":   err.Error(),
		})
	}
	return c.JSON(order)
}

// HandleUpdatePaymentStatus transitions the payment status of an order.
func (h *OrderHandler) HandleUpdatePaymentStatus(c *fiber.Ctx) error {
	orderID := c.Params("id")
	var updateData struct {
		PaymentStatus string `json:"payment_status"`
	}

	if err := c.BodyParser(&updateData); err != nil {
		log.Printf("Error parsing request body for status update: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body for status update",
			"error":   err.Error(),
		})
	}
	if updateData.PaymentStatus == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "payment_status is required",
		})
	}

	if err := h.orders.UpdatePaymentStatus(orderID, updateData.PaymentStatus); err != nil {
		log.Printf("Error updating payment status for order %s: %v", orderID, err)
		switch {
		case errors.Is(err, services.ErrOrderNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Order not found",
			})
		case errors.Is(err, services.ErrInvalidPaymentStatus):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Invalid payment status",
				"error":   err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update payment status",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"message": "Order payment status updated successfully",
	})
}
