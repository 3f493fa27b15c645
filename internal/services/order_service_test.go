package services_test

import (
	"testing"

	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/services"

	"github.com/stretchr/testify/assert"
)

func newOrderFixture(t *testing.T) (*services.OrderService, *repositories.MockOrderRepository, *models.Customer, *models.Customer) {
	t.Helper()

	orders := repositories.NewMockOrderRepository()
	customers := repositories.NewMockCustomerRepository()

	alice := &models.Customer{UserID: "user-alice"}
	bob := &models.Customer{UserID: "user-bob"}
	assert.NoError(t, customers.Create(alice))
	assert.NoError(t, customers.Create(bob))

	assert.NoError(t, orders.Create(&models.Order{ID: "order-alice", CustomerID: alice.ID}))
	assert.NoError(t, orders.Create(&models.Order{ID: "order-bob", CustomerID: bob.ID}))

	return services.NewOrderService(orders, customers), orders, alice, bob
}

func TestOrderService_ListOrders(t *testing.T) {
	service, _, alice, _ := newOrderFixture(t)

	// A customer only sees their own orders.
	orders, err := service.ListOrders("user-alice", false)
	assert.NoError(t, err)
	assert.Len(t, orders, 1)
	assert.Equal(t, alice.ID, orders[0].CustomerID)

	// Admins see everything.
	orders, err = service.ListOrders("user-alice", true)
	assert.NoError(t, err)
	assert.Len(t, orders, 2)

	// A user without a customer profile has no orders.
	orders, err = service.ListOrders("user-unknown", false)
	assert.NoError(t, err)
	assert.Empty(t, orders)
}

func TestOrderService_GetOrder(t *testing.T) {
	service, _, _, _ := newOrderFixture(t)

	order, err := service.GetOrder("order-alice", "user-alice", false)
	assert.NoError(t, err)
	assert.Equal(t, "order-alice", order.ID)

	// Another customer's order is off limits.
	_, err = service.GetOrder("order-bob", "user-alice", false)
	assert.ErrorIs(t, err, services.ErrForbidden)

	// Unless the requester is an admin.
	order, err = service.GetOrder("order-bob", "user-alice", true)
	assert.NoError(t, err)
	assert.Equal(t, "order-bob", order.ID)

	_, err = service.GetOrder("order-missing", "user-alice", false)
	assert.ErrorIs(t, err, services.ErrOrderNotFound)
}

func TestOrderService_UpdatePaymentStatus(t *testing.T) {
	service, orders, _, _ := newOrderFixture(t)

	assert.NoError(t, service.UpdatePaymentStatus("order-alice", models.PaymentStatusComplete))
	stored, err := orders.GetByID("order-alice")
	assert.NoError(t, err)
	assert.Equal(t, models.PaymentStatusComplete, stored.PaymentStatus)

	err = service.UpdatePaymentStatus("order-alice", "refunded")
	assert.ErrorIs(t, err, services.ErrInvalidPaymentStatus)

	err = service.UpdatePaymentStatus("order-missing", models.PaymentStatusFailed)
	assert.ErrorIs(t, err, services.ErrOrderNotFound)
}
