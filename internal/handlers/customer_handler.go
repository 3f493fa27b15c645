package handlers

import (
	"log"

	"storefront/internal/middleware"
	"storefront/internal/models"
	"storefront/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CustomerHandler handles HTTP requests for customer profiles.
type CustomerHandler struct {
	service  *services.CustomerService
	validate *validator.Validate
}

// NewCustomerHandler creates a new CustomerHandler.
func NewCustomerHandler(service *services.CustomerService) *CustomerHandler {
	return &CustomerHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the customer routes. Listing all customers is
// admin-only; /me is available to any authenticated user.
func (h *CustomerHandler) RegisterRoutes(router fiber.Router) {
	customerRoutes := router.Group("/customers")
	customerRoutes.Get("/", middleware.AdminRequired(), h.HandleGetCustomers)
	customerRoutes.Get("/me", h.HandleGetMe)
	customerRoutes.Patch("/me", h.HandleUpdateMe)
}

// HandleGetCustomers retrieves all customer profiles.
func (h *CustomerHandler) HandleGetCustomers(c *fiber.Ctx) error {
	customers, err := h.service.GetAllCustomers()
	if err != nil {
		log.Printf("Error getting customers: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve customers",
			"error":   err.Error(),
		})
	}
	return c.JSON(customers)
}

// HandleGetMe returns the requester's customer profile, creating an
// empty one on first access.
func (h *CustomerHandler) HandleGetMe(c *fiber.Ctx) error {
	customer, err := h.service.GetOrCreateByUserID(middleware.UserID(c))
	if err != nil {
		log.Printf("Error getting customer profile: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve customer profile",
			"error":   err.Error(),
		})
	}
	return c.JSON(customer)
}

// HandleUpdateMe patches the requester's customer profile.
func (h *CustomerHandler) HandleUpdateMe(c *fiber.Ctx) error {
	var patch models.Customer
	if err := c.BodyParser(&patch); err != nil {
		log.Printf("Error parsing customer patch body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"error":   err.Error(),
		})
	}

	customer, err := h.service.UpdateProfile(middleware.UserID(c), &patch)
	if err != nil {
		log.Printf("Error updating customer profile: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update customer profile",
			"error":   err.Error(),
		})
	}
	return c.JSON(customer)
}
