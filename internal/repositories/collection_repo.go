package repositories

import "storefront/internal/models"

// CollectionRepository defines the interface for collection data access.
type CollectionRepository interface {
	GetAll() ([]models.Collection, error)
	GetByID(id uint) (*models.Collection, error)
	Create(collection *models.Collection) error
	Update(collection *models.Collection) error
	Delete(id uint) error
}
