package handlers

import (
	"errors"
	"log"
	"strconv"

	"storefront/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CartHandler handles HTTP requests for carts and cart items. Carts are
// addressed by an opaque UUID, so these routes are unauthenticated.
type CartHandler struct {
	service  *services.CartService
	validate *validator.Validate
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(service *services.CartService) *CartHandler {
	return &CartHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the cart routes with the Fiber app.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cartRoutes := router.Group("/carts")
	cartRoutes.Post("/", h.HandleCreateCart)
	cartRoutes.Get("/:id", h.HandleGetCart)
	cartRoutes.Delete("/:id", h.HandleDeleteCart)
	cartRoutes.Get("/:id/items", h.HandleListItems)
	cartRoutes.Post("/:id/items", h.HandleAddItem)
	cartRoutes.Patch("/:id/items/:itemID", h.HandleUpdateItem)
	cartRoutes.Delete("/:id/items/:itemID", h.HandleRemoveItem)
}

// HandleCreateCart creates a new, empty cart and returns its ID.
func (h *CartHandler) HandleCreateCart(c *fiber.Ctx) error {
	cart, err := h.service.CreateCart()
	if err != nil {
		log.Printf("Error creating cart: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create cart",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(cart)
}

// HandleGetCart retrieves a cart with its items and a live total.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	cartID := c.Params("id")
	cart, err := h.service.GetCart(cartID)
	if err != nil {
		if errors.Is(err, services.ErrCartNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Cart not found",
			})
		}
		log.Printf("Error getting cart %s: %v", cartID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve cart",
			"error":   err.Error(),
		})
	}

	var total float64
	for _, item := range cart.Items {
		total += item.TotalPrice()
	}
	return c.JSON(fiber.Map{
		"id":          cart.ID,
		"created_at":  cart.CreatedAt,
		"items":       cart.Items,
		"total_price": total,
	})
}

// HandleDeleteCart removes a cart and all its items.
func (h *CartHandler) HandleDeleteCart(c *fiber.Ctx) error {
	cartID := c.Params("id")
	if err := h.service.DeleteCart(cartID); err != nil {
		if errors.Is(err, services.ErrCartNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Cart not found",
			})
		}
		log.Printf("Error deleting cart %s: %v", cartID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not delete cart",
			"error":   err.Error(),
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleListItems lists the items of a cart.
func (h *CartHandler) HandleListItems(c *fiber.Ctx) error {
	cartID := c.Params("id")
	items, err := h.service.ListItems(cartID)
	if err != nil {
		if errors.Is(err, services.ErrCartNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Cart not found",
			})
		}
		log.Printf("Error listing items of cart %s: %v", cartID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve cart items",
			"error":   err.Error(),
		})
	}
	return c.JSON(items)
}

// AddCartItemRequest is the body for adding a product to a cart.
type AddCartItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"required,gte=1"`
}

// HandleAddItem adds a product to a cart, merging with an existing line
// for the same product.
func (h *CartHandler) HandleAddItem(c *fiber.Ctx) error {
	cartID := c.Params("id")

	var req AddCartItemRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing add-item request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"error":   err.Error(),
		})
	}

	item, err := h.service.AddItem(cartID, req.ProductID, req.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrProductNotFound):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Product not found",
			})
		case errors.Is(err, services.ErrCartNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Cart not found",
			})
		}
		log.Printf("Error adding item to cart %s: %v", cartID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not add item to cart",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// HandleUpdateItem overwrites the quantity of a cart item.
func (h *CartHandler) HandleUpdateItem(c *fiber.Ctx) error {
	cartID := c.Params("id")
	itemID, err := strconv.ParseUint(c.Params("itemID"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid cart item ID",
		})
	}

	var req struct {
		Quantity int `json:"quantity" validate:"required,gte=1"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Quantity must be at least 1",
			"error":   err.Error(),
		})
	}

	item, err := h.service.UpdateItem(cartID, uint(itemID), req.Quantity)
	if err != nil {
		if errors.Is(err, services.ErrCartItemNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Cart item not found",
			})
		}
		log.Printf("Error updating item %d of cart %s: %v", itemID, cartID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update cart item",
			"error":   err.Error(),
		})
	}
	return c.JSON(item)
}

// HandleRemoveItem deletes a single item from a cart.
func (h *CartHandler) HandleRemoveItem(c *fiber.Ctx) error {
	cartID := c.Params("id")
	itemID, err := strconv.ParseUint(c.Params("itemID"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid cart item ID",
		})
	}

	if err := h.service.RemoveItem(cartID, uint(itemID)); err != nil {
		if errors.Is(err, services.ErrCartItemNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Cart item not found",
			})
		}
		log.Printf("Error removing item %d from cart %s: %v", itemID, cartID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not remove cart item",
			"error":   err.Error(),
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
