package services_test

import (
	"fmt"
	"testing"

	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// StubProductRepository is a testify mock of repositories.ProductRepository.
type StubProductRepository struct {
	mock.Mock
}

func (m *StubProductRepository) GetAll() ([]models.Product, error) {
	args := m.Called()
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *StubProductRepository) GetByCollection(collectionID uint) ([]models.Product, error) {
	args := m.Called(collectionID)
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *StubProductRepository) GetByID(id string) (*models.Product, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *StubProductRepository) Create(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *StubProductRepository) Update(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *StubProductRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func TestProductService_GetAllProducts(t *testing.T) {
	mockRepo := new(StubProductRepository)
	service := services.NewProductService(mockRepo, nil)

	expectedProducts := []models.Product{
		{ID: "1", Title: "Product A", UnitPrice: 10.0, Quantity: 100, CollectionID: 1},
		{ID: "2", Title: "Product B", UnitPrice: 20.0, Quantity: 50, CollectionID: 1},
	}

	mockRepo.On("GetAll").Return(expectedProducts, nil).Once()

	products, err := service.GetAllProducts()

	assert.NoError(t, err)
	assert.Len(t, products, 2)
	assert.Equal(t, expectedProducts, products)
	mockRepo.AssertExpectations(t)
}

func TestProductService_GetProductsByCollection(t *testing.T) {
	mockRepo := new(StubProductRepository)
	service := services.NewProductService(mockRepo, nil)

	expectedProducts := []models.Product{
		{ID: "1", Title: "Product A", UnitPrice: 10.0, Quantity: 100, CollectionID: 7},
	}

	mockRepo.On("GetByCollection", uint(7)).Return(expectedProducts, nil).Once()

	products, err := service.GetProductsByCollection(7)

	assert.NoError(t, err)
	assert.Equal(t, expectedProducts, products)
	mockRepo.AssertExpectations(t)
}

func TestProductService_GetProductByID(t *testing.T) {
	mockRepo := new(StubProductRepository)
	service := services.NewProductService(mockRepo, nil)

	expectedProduct := &models.Product{ID: "1", Title: "Product A", UnitPrice: 10.0, Quantity: 100}

	// Test successful retrieval
	mockRepo.On("GetByID", "1").Return(expectedProduct, nil).Once()
	product, err := service.GetProductByID("1")
	assert.NoError(t, err)
	assert.Equal(t, expectedProduct, product)
	mockRepo.AssertExpectations(t)

	// Test product not found
	mockRepo.On("GetByID", "99").Return(nil, fmt.Errorf("product with ID 99: %w", repositories.ErrNotFound)).Once()
	product, err = service.GetProductByID("99")
	assert.ErrorIs(t, err, services.ErrProductNotFound)
	assert.Nil(t, product)
	mockRepo.AssertExpectations(t)
}

func TestProductService_CreateProduct(t *testing.T) {
	mockRepo := new(StubProductRepository)
	service := services.NewProductService(mockRepo, nil)

	newProduct := &models.Product{Title: "New Product", UnitPrice: 50.0, Quantity: 20, CollectionID: 1}

	// Test successful creation
	mockRepo.On("Create", newProduct).Return(nil).Once()
	err := service.CreateProduct(newProduct)
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)

	// Test creation failure (e.g., database error)
	mockRepo.On("Create", newProduct).Return(fmt.Errorf("database error")).Once()
	err = service.CreateProduct(newProduct)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "database error")
	mockRepo.AssertExpectations(t)
}

func TestProductService_UpdateProduct(t *testing.T) {
	mockRepo := new(StubProductRepository)
	service := services.NewProductService(mockRepo, nil)

	updatedProduct := &models.Product{ID: "1", Title: "Product A Updated", UnitPrice: 12.0, Quantity: 95, CollectionID: 1}

	// Test successful update
	mockRepo.On("Update", updatedProduct).Return(nil).Once()
	err := service.UpdateProduct(updatedProduct)
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)

	// Test update of a missing product
	missing := &models.Product{ID: "99", Title: "NonExistent", UnitPrice: 1.0, Quantity: 1, CollectionID: 1}
	mockRepo.On("Update", missing).Return(fmt.Errorf("product with ID 99 not found for update: %w", repositories.ErrNotFound)).Once()
	err = service.UpdateProduct(missing)
	assert.ErrorIs(t, err, services.ErrProductNotFound)
	mockRepo.AssertExpectations(t)
}

func TestProductService_DeleteProduct(t *testing.T) {
	mockRepo := new(StubProductRepository)
	service := services.NewProductService(mockRepo, nil)

	// Test successful deletion
	mockRepo.On("Delete", "1").Return(nil).Once()
	err := service.DeleteProduct("1")
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)

	// Test deletion of a missing product
	mockRepo.On("Delete", "99").Return(fmt.Errorf("product with ID 99 not found for deletion: %w", repositories.ErrNotFound)).Once()
	err = service.DeleteProduct("99")
	assert.ErrorIs(t, err, services.ErrProductNotFound)
	mockRepo.AssertExpectations(t)
}
