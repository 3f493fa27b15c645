package services

import (
	"errors"
	"fmt"

	"storefront/internal/models"
	"storefront/internal/repositories"
)

// ReviewService handles business logic for product reviews.
type ReviewService struct {
	reviews  repositories.ReviewRepository
	products repositories.ProductRepository
}

// NewReviewService creates a new ReviewService.
func NewReviewService(reviews repositories.ReviewRepository, products repositories.ProductRepository) *ReviewService {
	return &ReviewService{
		reviews:  reviews,
		products: products,
	}
}

// ListByProduct returns the reviews of one product.
func (s *ReviewService) ListByProduct(productID string) ([]models.Review, error) {
	if _, err := s.products.GetByID(productID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return s.reviews.GetByProduct(productID)
}

// CreateReview attaches a new review from the given user to a product.
func (s *ReviewService) CreateReview(productID, userID, title, content string) (*models.Review, error) {
	if _, err := s.products.GetByID(productID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	review := &models.Review{
		ProductID: productID,
		UserID:    userID,
		Title:     title,
		Content:   content,
	}
	if err := s.reviews.Create(review); err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}
	return review, nil
}

// UpdateReview edits a review. Only the author may edit.
func (s *ReviewService) UpdateReview(id uint, userID, title, content string) (*models.Review, error) {
	review, err := s.reviews.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	if review.UserID != userID {
		return nil, ErrForbidden
	}

	review.Title = title
	review.Content = content
	if err := s.reviews.Update(review); err != nil {
		return nil, fmt.Errorf("failed to update review %d: %w", id, err)
	}
	return review, nil
}

// DeleteReview removes a review. The author or an admin may delete.
func (s *ReviewService) DeleteReview(id uint, userID string, isAdmin bool) error {
	review, err := s.reviews.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrReviewNotFound
		}
		return err
	}
	if !isAdmin && review.UserID != userID {
		return ErrForbidden
	}
	return s.reviews.Delete(id)
}
