package handlers

import (
	"errors"
	"log"
	"strconv"

	"storefront/internal/models"
	"storefront/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CollectionHandler handles HTTP requests for collections. Reads are
// public; writes require an admin account.
type CollectionHandler struct {
	service  *services.CollectionService
	validate *validator.Validate
}

// NewCollectionHandler creates a new CollectionHandler.
func NewCollectionHandler(service *services.CollectionService) *CollectionHandler {
	return &CollectionHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterPublicRoutes registers the read-only collection routes.
func (h *CollectionHandler) RegisterPublicRoutes(router fiber.Router) {
	collectionRoutes := router.Group("/collections")
	collectionRoutes.Get("/", h.HandleGetCollections)
	collectionRoutes.Get("/:id", h.HandleGetCollectionByID)
}

// RegisterAdminRoutes registers the collection write routes.
func (h *CollectionHandler) RegisterAdminRoutes(router fiber.Router) {
	collectionRoutes := router.Group("/collections")
	collectionRoutes.Post("/", h.HandleCreateCollection)
	collectionRoutes.Put("/:id", h.HandleUpdateCollection)
	collectionRoutes.Delete("/:id", h.HandleDeleteCollection)
}

// HandleGetCollections retrieves all collections with product counts.
func (h *CollectionHandler) HandleGetCollections(c *fiber.Ctx) error {
	collections, err := h.service.GetAllCollections()
	if err != nil {
		log.Printf("Error getting collections: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve collections",
			"error":   err.Error(),
		})
	}
	return c.JSON(collections)
}

// HandleGetCollectionByID retrieves a single collection by its ID.
func (h *CollectionHandler) HandleGetCollectionByID(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid collection ID",
		})
	}

	collection, err := h.service.GetCollectionByID(uint(id))
	if err != nil {
		if errors.Is(err, services.ErrCollectionNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Collection not found",
			})
		}
		log.Printf("Error getting collection %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve collection",
			"error":   err.Error(),
		})
	}
	return c.JSON(collection)
}

// HandleCreateCollection creates a new collection.
func (h *CollectionHandler) HandleCreateCollection(c *fiber.Ctx) error {
	var collection models.Collection
	if err := c.BodyParser(&collection); err != nil {
		log.Printf("Error parsing collection request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(collection); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"error":   err.Error(),
		})
	}

	if err := h.service.CreateCollection(&collection); err != nil {
		log.Printf("Error creating collection: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create collection",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(collection)
}

// HandleUpdateCollection updates an existing collection.
func (h *CollectionHandler) HandleUpdateCollection(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid collection ID",
		})
	}

	var collection models.Collection
	if err := c.BodyParser(&collection); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	collection.ID = uint(id)

	if err := h.service.UpdateCollection(&collection); err != nil {
		if errors.Is(err, services.ErrCollectionNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Collection not found",
			})
		}
		log.Printf("Error updating collection %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not update collection",
			"error":   err.Error(),
		})
	}
	return c.JSON(collection)
}

// HandleDeleteCollection deletes a collection by its ID.
func (h *CollectionHandler) HandleDeleteCollection(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid collection ID",
		})
	}

	if err := h.service.DeleteCollection(uint(id)); err != nil {
		if errors.Is(err, services.ErrCollectionNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Collection not found",
			})
		}
		log.Printf("Error deleting collection %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not delete collection",
			"error":   err.Error(),
		})
	}
	return c.SendStatus(fiber.StatusNoContent)
}
