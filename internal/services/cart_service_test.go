package services_test

import (
	"sync"
	"testing"

	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/services"

	"github.com/stretchr/testify/assert"
)

func newCartFixture(t *testing.T) (*services.CartService, *repositories.MockCartRepository, *models.Product) {
	t.Helper()

	products := repositories.NewMockProductRepository()
	carts := repositories.NewMockCartRepository(products)

	product := &models.Product{Title: "Espresso Beans", UnitPrice: 10.00, Quantity: 100, CollectionID: 1}
	assert.NoError(t, products.Create(product))

	return services.NewCartService(carts, products), carts, product
}

func TestCartService_CreateAndGetCart(t *testing.T) {
	service, _, _ := newCartFixture(t)

	cart, err := service.CreateCart()
	assert.NoError(t, err)
	assert.NotEmpty(t, cart.ID)

	fetched, err := service.GetCart(cart.ID)
	assert.NoError(t, err)
	assert.Equal(t, cart.ID, fetched.ID)
	assert.Empty(t, fetched.Items)

	_, err = service.GetCart("00000000-0000-0000-0000-000000000000")
	assert.ErrorIs(t, err, services.ErrCartNotFound)
}

func TestCartService_AddItem_MergesDuplicateProduct(t *testing.T) {
	service, _, product := newCartFixture(t)

	cart, err := service.CreateCart()
	assert.NoError(t, err)

	first, err := service.AddItem(cart.ID, product.ID, 2)
	assert.NoError(t, err)
	assert.Equal(t, 2, first.Quantity)

	// Adding the same product again increments the existing line.
	second, err := service.AddItem(cart.ID, product.ID, 3)
	assert.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 5, second.Quantity)

	items, err := service.ListItems(cart.ID)
	assert.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Quantity)
	assert.InDelta(t, 50.00, items[0].TotalPrice(), 0.001)
}

func TestCartService_AddItem_ConcurrentAddsMergeIntoOneLine(t *testing.T) {
	service, _, product := newCartFixture(t)

	cart, err := service.CreateCart()
	assert.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := service.AddItem(cart.ID, product.ID, 1)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	items, err := service.ListItems(cart.ID)
	assert.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
}

func TestCartService_AddItem_UnknownProduct(t *testing.T) {
	service, _, _ := newCartFixture(t)

	cart, err := service.CreateCart()
	assert.NoError(t, err)

	_, err = service.AddItem(cart.ID, "c3b3f0a2-9c1d-4c53-9d32-1df1f0a2b3c4", 1)
	assert.ErrorIs(t, err, services.ErrProductNotFound)

	items, err := service.ListItems(cart.ID)
	assert.NoError(t, err)
	assert.Empty(t, items)
}

func TestCartService_AddItem_UnknownCart(t *testing.T) {
	service, _, product := newCartFixture(t)

	_, err := service.AddItem("00000000-0000-0000-0000-000000000000", product.ID, 1)
	assert.ErrorIs(t, err, services.ErrCartNotFound)
}

func TestCartService_UpdateAndRemoveItem(t *testing.T) {
	service, _, product := newCartFixture(t)

	cart, err := service.CreateCart()
	assert.NoError(t, err)
	item, err := service.AddItem(cart.ID, product.ID, 2)
	assert.NoError(t, err)

	updated, err := service.UpdateItem(cart.ID, item.ID, 7)
	assert.NoError(t, err)
	assert.Equal(t, 7, updated.Quantity)

	_, err = service.UpdateItem(cart.ID, 9999, 1)
	assert.ErrorIs(t, err, services.ErrCartItemNotFound)

	assert.NoError(t, service.RemoveItem(cart.ID, item.ID))
	items, err := service.ListItems(cart.ID)
	assert.NoError(t, err)
	assert.Empty(t, items)

	assert.ErrorIs(t, service.RemoveItem(cart.ID, item.ID), services.ErrCartItemNotFound)
}

func TestCartService_DeleteCart(t *testing.T) {
	service, _, product := newCartFixture(t)

	cart, err := service.CreateCart()
	assert.NoError(t, err)
	_, err = service.AddItem(cart.ID, product.ID, 1)
	assert.NoError(t, err)

	assert.NoError(t, service.DeleteCart(cart.ID))
	_, err = service.GetCart(cart.ID)
	assert.ErrorIs(t, err, services.ErrCartNotFound)

	assert.ErrorIs(t, service.DeleteCart(cart.ID), services.ErrCartNotFound)
}
