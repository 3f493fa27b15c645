package repositories

import (
	"fmt"
	"storefront/internal/models"

	"gorm.io/gorm"
)

// GORMCollectionRepository is a GORM implementation of CollectionRepository.
type GORMCollectionRepository struct {
	db *gorm.DB
}

// NewGORMCollectionRepository creates a new instance of GORMCollectionRepository.
func NewGORMCollectionRepository(db *gorm.DB) *GORMCollectionRepository {
	return &GORMCollectionRepository{
		db: db,
	}
}

// GetAll retrieves all collections with their product counts.
func (r *GORMCollectionRepository) GetAll() ([]models.Collection, error) {
	var collections []models.Collection
	err := r.db.Model(&models.Collection{}).
		Select("collections.*, count(products.id) as products_count").
		Joins("LEFT JOIN products ON products.collection_id = collections.id AND products.deleted_at IS NULL").
		Group("collections.id").
		Find(&collections).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get all collections: %w", err)
	}
	return collections, nil
}

// GetByID retrieves a single collection by its ID.
func (r *GORMCollectionRepository) GetByID(id uint) (*models.Collection, error) {
	var collection models.Collection
	if err := r.db.First(&collection, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("collection with ID %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get collection by ID %d: %w", id, err)
	}
	return &collection, nil
}

// Create creates a new collection in the database.
func (r *GORMCollectionRepository) Create(collection *models.Collection) error {
	if err := r.db.Create(collection).Error; err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}
	return nil
}

// Update updates an existing collection in the database.
func (r *GORMCollectionRepository) Update(collection *models.Collection) error {
	res := r.db.Save(collection)
	if res.Error != nil {
		return fmt.Errorf("failed to update collection: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("collection with ID %d not found for update: %w", collection.ID, ErrNotFound)
	}
	return nil
}

// Delete deletes a collection by its ID from the database.
func (r *GORMCollectionRepository) Delete(id uint) error {
	res := r.db.Delete(&models.Collection{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete collection: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("collection with ID %d not found for deletion: %w", id, ErrNotFound)
	}
	return nil
}
