package repositories

import (
	"fmt"
	"storefront/internal/models"

	"gorm.io/gorm"
)

// GORMReviewRepository is a GORM implementation of ReviewRepository.
type GORMReviewRepository struct {
	db *gorm.DB
}

// NewGORMReviewRepository creates a new instance of GORMReviewRepository.
func NewGORMReviewRepository(db *gorm.DB) *GORMReviewRepository {
	return &GORMReviewRepository{
		db: db,
	}
}

// GetByProduct retrieves the reviews of one product.
func (r *GORMReviewRepository) GetByProduct(productID string) ([]models.Review, error) {
	var reviews []models.Review
	if err := r.db.Where("product_id = ?", productID).Order("created_at DESC").Find(&reviews).Error; err != nil {
		return nil, fmt.Errorf("failed to get reviews for product %s: %w", productID, err)
	}
	return reviews, nil
}

// GetByID retrieves a single review by its ID.
func (r *GORMReviewRepository) GetByID(id uint) (*models.Review, error) {
	var review models.Review
	if err := r.db.First(&review, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("review with ID %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get review by ID %d: %w", id, err)
	}
	return &review, nil
}

// Create creates a new review in the database.
func (r *GORMReviewRepository) Create(review *models.Review) error {
	if err := r.db.Create(review).Error; err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

// Update updates the title and content of an existing review.
func (r *GORMReviewRepository) Update(review *models.Review) error {
	res := r.db.Model(&models.Review{}).Where("id = ?", review.ID).
		Updates(map[string]interface{}{"title": review.Title, "content": review.Content})
	if res.Error != nil {
		return fmt.Errorf("failed to update review: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("review with ID %d not found for update: %w", review.ID, ErrNotFound)
	}
	return nil
}

// Delete deletes a review by its ID from the database.
func (r *GORMReviewRepository) Delete(id uint) error {
	res := r.db.Delete(&models.Review{}, "id = ?", id)
	if res.Error != nil {
		return fmt.Errorf("failed to delete review: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("review with ID %d not found for deletion: %w", id, ErrNotFound)
	}
	return nil
}
