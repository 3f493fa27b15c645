package services

import (
	"errors"
	"fmt"

	"storefront/internal/cache"
	"storefront/internal/models"
	"storefront/internal/repositories"
)

// ProductService handles business logic related to products. Reads go
// through the product cache when one is configured; writes invalidate.
type ProductService struct {
	repo  repositories.ProductRepository
	cache *cache.ProductCache
}

// NewProductService creates a new ProductService. The cache may be nil.
func NewProductService(repo repositories.ProductRepository, productCache *cache.ProductCache) *ProductService {
	return &ProductService{
		repo:  repo,
		cache: productCache,
	}
}

// GetAllProducts retrieves all products.
func (s *ProductService) GetAllProducts() ([]models.Product, error) {
	if products, ok := s.cache.GetList("all"); ok {
		return products, nil
	}
	products, err := s.repo.GetAll()
	if err != nil {
		return nil, err
	}
	s.cache.SetList("all", products)
	return products, nil
}

// GetProductsByCollection retrieves the products of one collection.
func (s *ProductService) GetProductsByCollection(collectionID uint) ([]models.Product, error) {
	key := fmt.Sprintf("collection:%d", collectionID)
	if products, ok := s.cache.GetList(key); ok {
		return products, nil
	}
	products, err := s.repo.GetByCollection(collectionID)
	if err != nil {
		return nil, err
	}
	s.cache.SetList(key, products)
	return products, nil
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id string) (*models.Product, error) {
	if product, ok := s.cache.GetProduct(id); ok {
		return product, nil
	}
	product, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	s.cache.SetProduct(product)
	return product, nil
}

// CreateProduct creates a new product.
func (s *ProductService) CreateProduct(product *models.Product) error {
	if err := s.repo.Create(product); err != nil {
		return err
	}
	s.cache.Invalidate(product.ID)
	return nil
}

// UpdateProduct updates an existing product.
func (s *ProductService) UpdateProduct(product *models.Product) error {
	if err := s.repo.Update(product); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	s.cache.Invalidate(product.ID)
	return nil
}

// DeleteProduct deletes a product by its ID.
func (s *ProductService) DeleteProduct(id string) error {
	if err := s.repo.Delete(id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	s.cache.Invalidate(id)
	return nil
}
