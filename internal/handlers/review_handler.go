package handlers

import (
	"errors"
	"log"
	"strconv"

	"storefront/internal/middleware"
	"storefront/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ReviewHandler handles HTTP requests for product reviews.
type ReviewHandler struct {
	service  *services.ReviewService
	validate *validator.Validate
}

// NewReviewHandler creates a new ReviewHandler.
func NewReviewHandler(service *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterPublicRoutes registers the read-only review routes.
func (h *ReviewHandler) RegisterPublicRoutes(router fiber.Router) {
	router.Get("/products/:productID/reviews", h.HandleGetReviews)
}

// RegisterAuthenticatedRoutes registers the review write routes.
func (h *ReviewHandler) RegisterAuthenticatedRoutes(router fiber.Router) {
	router.Post("/products/:productID/reviews", h.HandleCreateReview)
	router.Patch("/products/:productID/reviews/:id", h.HandleUpdateReview)
	router.Delete("/products/:productID/reviews/:id", h.HandleDeleteReview)
}

// HandleGetReviews lists the reviews of one product.
func (h *ReviewHandler) HandleGetReviews(c *fiber.Ctx) error {
	productID := c.Params("productID")
	reviews, err := h.service.ListByProduct(productID)
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Product not found",
			})
		}
		log.Printf("Error listing reviews for product %s: %v", productID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve reviews",
			"error":   err.Error(),
		})
	}
	return c.JSON(reviews)
}

// ReviewRequest is the body for creating or updating a review.
type ReviewRequest struct {
	Title   string `json:"title" validate:"required,min=1,max=255"`
	Content string `json:"content" validate:"required,min=1"`
}

// HandleCreateReview attaches a new review to a product.
func (h *ReviewHandler) HandleCreateReview(c *fiber.Ctx) error {
	productID := c.Params("productID")

	var req ReviewRequest
	if err := c.BodyParser(&req); err != nil {
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

	review, err := h.service.CreateReview(productID, middleware.UserID(c), req.Title, req.Content)
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Product not found",
			})
		}
		log.Printf("Error creating review for product %s: %v", productID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create review",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(review)
}

// HandleUpdateReview edits a review; only the author may edit.
func (h *ReviewHandler) HandleUpdateReview(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid review ID",
		})
	}

	var req ReviewRequest
	if err := c.BodyParser(&req); err != nil {
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

	review, err := h.service.UpdateReview(uint(id), middleware.UserID(c), req.Title, req.Content)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrReviewNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Review not found",
			})
		case errors.Is(err, services.ErrForbidden):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "You do not have permission to edit this review",
			})
		}
		log.Printf("Error updating review %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update review",
			"error":   err.Error(),
		})
	}
	return c.JSON(review)
}

// HandleDeleteReview removes a review; the author or an admin may delete.
func (h *ReviewHandler) HandleDeleteReview(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid review ID",
		})
	}

	if err := h.service.DeleteReview(uint(id), middleware.UserID(c), middleware.IsAdmin(c)); err != nil {
		switch {
		case errors.Is(err, services.ErrReviewNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Review not found",
			})
		case errors.Is(err, services.ErrForbidden):
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "You do not have permission to delete this review",
			})
		}
		log.Printf("Error deleting review %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not delete review",
			"error":   err.Error(),
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
