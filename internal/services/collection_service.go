package services

import (
	"errors"

	"storefront/internal/models"
	"storefront/internal/repositories"
)

// CollectionService handles business logic related to collections.
type CollectionService struct {
	repo repositories.CollectionRepository
}

// NewCollectionService creates a new CollectionService.
func NewCollectionService(repo repositories.CollectionRepository) *CollectionService {
	return &CollectionService{
		repo: repo,
	}
}

// GetAllCollections retrieves all collections with their product counts.
func (s *CollectionService) GetAllCollections() ([]models.Collection, error) {
	return s.repo.GetAll()
}

// GetCollectionByID retrieves a single collection by its ID.
func (s *CollectionService) GetCollectionByID(id uint) (*models.Collection, error) {
	collection, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrCollectionNotFound
		}
		return nil, err
	}
	return collection, nil
}

// CreateCollection creates a new collection.
func (s *CollectionService) CreateCollection(collection *models.Collection) error {
	return s.repo.Create(collection)
}

// UpdateCollection updates an existing collection.
func (s *CollectionService) UpdateCollection(collection *models.Collection) error {
	if err := s.repo.Update(collection); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrCollectionNotFound
		}
		return err
	}
	return nil
}

// DeleteCollection deletes a collection by its ID.
func (s *CollectionService) DeleteCollection(id uint) error {
	if err := s.repo.Delete(id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrCollectionNotFound
		}
		return err
	}
	return nil
}
