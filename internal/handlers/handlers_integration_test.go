package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"
	"testing"

	"storefront/internal/handlers"
	"storefront/internal/middleware"
	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

// memUserRepo is an in-memory repositories.UserRepository for tests.
type memUserRepo struct {
	users map[string]models.User // keyed by ID
	mu    sync.RWMutex
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]models.User)}
}

func (r *memUserRepo) Create(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	r.users[user.ID] = *user
	return nil
}

func (r *memUserRepo) GetByUsername(username string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Username == username {
			user := u
			return &user, nil
		}
	}
	return nil, fmt.Errorf("user with username %s: %w", username, repositories.ErrNotFound)
}

func (r *memUserRepo) GetByEmail(email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, fmt.Errorf("user with email %s: %w", email, repositories.ErrNotFound)
}

func (r *memUserRepo) GetByID(id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("user with ID %s: %w", id, repositories.ErrNotFound)
	}
	return &u, nil
}

// testEnv is a fully wired app over in-memory repositories.
type testEnv struct {
	app      *fiber.App
	users    *memUserRepo
	products *repositories.MockProductRepository
	orders   *repositories.MockOrderRepository
}

// setupApp wires the handler stack over in-memory repositories and seeds
// one product priced 10.00.
func setupApp(t *testing.T) (*testEnv, *models.Product) {
	t.Helper()

	users := newMemUserRepo()
	products := repositories.NewMockProductRepository()
	carts := repositories.NewMockCartRepository(products)
	customers := repositories.NewMockCustomerRepository()
	orders := repositories.NewMockOrderRepository()
	uow := repositories.NewMockUnitOfWork(carts, orders)

	product := &models.Product{Title: "Espresso Beans", UnitPrice: 10.00, Quantity: 100, CollectionID: 1}
	assert.NoError(t, products.Create(product))

	authService := services.NewAuthService(users, "test_jwt_secret")
	customerService := services.NewCustomerService(customers)
	productService := services.NewProductService(products, nil)
	cartService := services.NewCartService(carts, products)
	orderService := services.NewOrderService(orders, customers)
	checkoutService := services.NewCheckoutService(carts, customers, uow, nil)

	authHandler := handlers.NewAuthHandler(authService)
	customerHandler := handlers.NewCustomerHandler(customerService)
	productHandler := handlers.NewProductHandler(productService)
	cartHandler := handlers.NewCartHandler(cartService)
	orderHandler := handlers.NewOrderHandler(checkoutService, orderService)

	app := fiber.New()
	apiV1 := app.Group("/api/v1")

	authHandler.RegisterRoutes(apiV1)
	productHandler.RegisterPublicRoutes(apiV1)
	cartHandler.RegisterRoutes(apiV1)

	authed := apiV1.Group("", middleware.AuthRequired(authService))
	customerHandler.RegisterRoutes(authed)
	orderHandler.RegisterRoutes(authed)

	return &testEnv{app: app, users: users, products: products, orders: orders}, product
}

// TestMain runs setup and teardown for all tests
func TestMain(m *testing.M) {
	log.SetOutput(io.Discard)
	code := m.Run()
	os.Exit(code)
}

// doJSON issues a JSON request against the test app.
func doJSON(t *testing.T, app *fiber.App, method, path, token string, payload interface{}) *http.Response {
	t.Helper()

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		assert.NoError(t, err)
		body = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, body)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	assert.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}

// registerAndLogin creates an account through the API and returns a token.
func registerAndLogin(t *testing.T, app *fiber.App, username string) string {
	t.Helper()

	resp := doJSON(t, app, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"username": username,
		"email":    username + "@example.com",
		"password": "password123",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": username,
		"password": "password123",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var loginResp map[string]string
	decode(t, resp, &loginResp)
	assert.NotEmpty(t, loginResp["token"])
	return loginResp["token"]
}

func TestCheckoutFlow(t *testing.T) {
	env, product := setupApp(t)
	token := registerAndLogin(t, env.app, "shopper")

	// Touching /customers/me provisions the customer profile.
	resp := doJSON(t, env.app, http.MethodGet, "/api/v1/customers/me", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var customer models.Customer
	decode(t, resp, &customer)
	assert.Equal(t, models.MembershipBronze, customer.Membership)

	// Create a cart and add the same product twice.
	resp = doJSON(t, env.app, http.MethodPost, "/api/v1/carts/", "", nil)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var cart models.Cart
	decode(t, resp, &cart)
	assert.NotEmpty(t, cart.ID)

	addItem := map[string]interface{}{"product_id": product.ID, "quantity": 2}
	resp = doJSON(t, env.app, http.MethodPost, "/api/v1/carts/"+cart.ID+"/items", "", addItem)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	addItem["quantity"] = 3
	resp = doJSON(t, env.app, http.MethodPost, "/api/v1/carts/"+cart.ID+"/items", "", addItem)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	// The duplicate add merged into one line of quantity 5.
	resp = doJSON(t, env.app, http.MethodGet, "/api/v1/carts/"+cart.ID, "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var cartView struct {
		Items      []models.CartItem `json:"items"`
		TotalPrice float64           `json:"total_price"`
	}
	decode(t, resp, &cartView)
	assert.Len(t, cartView.Items, 1)
	assert.Equal(t, 5, cartView.Items[0].Quantity)
	assert.InDelta(t, 50.00, cartView.TotalPrice, 0.001)

	// Checkout.
	resp = doJSON(t, env.app, http.MethodPost, "/api/v1/orders/", token, map[string]string{"cart_id": cart.ID})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var order models.Order
	decode(t, resp, &order)
	assert.NotEmpty(t, order.ID)
	assert.Equal(t, models.PaymentStatusPending, order.PaymentStatus)
	assert.Len(t, order.Items, 1)
	assert.Equal(t, 5, order.Items[0].Quantity)
	assert.InDelta(t, 10.00, order.Items[0].UnitPrice, 0.001)

	// The cart was consumed.
	resp = doJSON(t, env.app, http.MethodGet, "/api/v1/carts/"+cart.ID, "", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	// The order is visible to its owner.
	resp = doJSON(t, env.app, http.MethodGet, "/api/v1/orders/", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var orders []models.Order
	decode(t, resp, &orders)
	assert.Len(t, orders, 1)
	assert.Equal(t, order.ID, orders[0].ID)

	resp = doJSON(t, env.app, http.MethodGet, "/api/v1/orders/"+order.ID, token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestCheckoutRejectsEmptyCart(t *testing.T) {
	env, _ := setupApp(t)
	token := registerAndLogin(t, env.app, "emptyhanded")

	resp := doJSON(t, env.app, http.MethodGet, "/api/v1/customers/me", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, env.app, http.MethodPost, "/api/v1/carts/", "", nil)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var cart models.Cart
	decode(t, resp, &cart)

	resp = doJSON(t, env.app, http.MethodPost, "/api/v1/orders/", token, map[string]string{"cart_id": cart.ID})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// The rejected checkout did not consume the cart.
	resp = doJSON(t, env.app, http.MethodGet, "/api/v1/carts/"+cart.ID, "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestCheckoutRejectsUnknownCart(t *testing.T) {
	env, _ := setupApp(t)
	token := registerAndLogin(t, env.app, "cartless")

	resp := doJSON(t, env.app, http.MethodGet, "/api/v1/customers/me", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, env.app, http.MethodPost, "/api/v1/orders/", token,
		map[string]string{"cart_id": "00000000-0000-0000-0000-000000000000"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// A malformed cart ID fails validation before reaching the service.
	resp = doJSON(t, env.app, http.MethodPost, "/api/v1/orders/", token,
		map[string]string{"cart_id": "not-a-uuid"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestCheckoutRejectsMissingCustomerProfile(t *testing.T) {
	env, product := setupApp(t)
	// Log in but never touch /customers/me.
	token := registerAndLogin(t, env.app, "profileless")

	resp := doJSON(t, env.app, http.MethodPost, "/api/v1/carts/", "", nil)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var cart models.Cart
	decode(t, resp, &cart)

	resp = doJSON(t, env.app, http.MethodPost, "/api/v1/carts/"+cart.ID+"/items", "",
		map[string]interface{}{"product_id": product.ID, "quantity": 1})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, env.app, http.MethodPost, "/api/v1/orders/", token, map[string]string{"cart_id": cart.ID})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestOrderEndpointsRequireAuth(t *testing.T) {
	env, _ := setupApp(t)

	resp := doJSON(t, env.app, http.MethodPost, "/api/v1/orders/", "",
		map[string]string{"cart_id": "00000000-0000-0000-0000-000000000000"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, env.app, http.MethodGet, "/api/v1/orders/", "", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestPaymentStatusUpdateIsAdminOnly(t *testing.T) {
	env, _ := setupApp(t)

	// Seed an admin account directly; registration never grants admin.
	hashed, err := bcrypt.GenerateFromPassword([]byte("adminpass"), bcrypt.DefaultCost)
	assert.NoError(t, err)
	assert.NoError(t, env.users.Create(&models.User{
		Username: "admin",
		Email:    "admin@example.com",
		Password: string(hashed),
		IsAdmin:  true,
	}))
	assert.NoError(t, env.orders.Create(&models.Order{ID: "order-1", CustomerID: "customer-1"}))

	resp := doJSON(t, env.app, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": "admin",
		"password": "adminpass",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var loginResp map[string]string
	decode(t, resp, &loginResp)
	adminToken := loginResp["token"]

	// A regular user is forbidden.
	userToken := registerAndLogin(t, env.app, "plainuser")
	resp = doJSON(t, env.app, http.MethodPatch, "/api/v1/orders/order-1", userToken,
		map[string]string{"payment_status": models.PaymentStatusComplete})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	// The admin transitions the status.
	resp = doJSON(t, env.app, http.MethodPatch, "/api/v1/orders/order-1", adminToken,
		map[string]string{"payment_status": models.PaymentStatusComplete})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	order, err := env.orders.GetByID("order-1")
	assert.NoError(t, err)
	assert.Equal(t, models.PaymentStatusComplete, order.PaymentStatus)

	// An unknown status is rejected.
	resp = doJSON(t, env.app, http.MethodPatch, "/api/v1/orders/order-1", adminToken,
		map[string]string{"payment_status": "refunded"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}
