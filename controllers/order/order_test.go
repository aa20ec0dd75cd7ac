package orderControllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/abhikadam2003/Ecommerce/config"
	authControllers "github.com/abhikadam2003/Ecommerce/controllers/auth"
	"github.com/abhikadam2003/Ecommerce/models"
	"github.com/abhikadam2003/Ecommerce/routes"
	"github.com/abhikadam2003/Ecommerce/services/email"
	"github.com/abhikadam2003/Ecommerce/store"
)

const testSecret = "test-secret"

func newTestServer(t *testing.T) (*gin.Engine, *store.Memory) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		JWTSecret:  testSecret,
		JWTExpires: time.Hour,
		UploadDir:  t.TempDir(),
		ClientURL:  "http://localhost:5173",
	}
	log := logrus.New()
	log.SetOutput(io.Discard)

	s := store.NewMemory()
	r := gin.New()
	routes.SetupRoutes(r, s, email.NewSender(cfg, log), cfg, log)
	return r, s
}

func newUser(t *testing.T, s *store.Memory, role models.Role) (*models.User, string) {
	t.Helper()
	user := &models.User{
		Name:     "Buyer",
		Email:    primitive.NewObjectID().Hex() + "@example.com",
		Password: "hash",
		Role:     role,
	}
	require.NoError(t, s.CreateUser(context.Background(), user))
	token, err := authControllers.SignToken(user, testSecret, time.Hour)
	require.NoError(t, err)
	return user, token
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type orderResponse struct {
	Success bool         `json:"success"`
	Data    models.Order `json:"data"`
}

func seedCartedProduct(t *testing.T, s *store.Memory, user *models.User, name string, price float64, stock, qty int) *models.Product {
	t.Helper()
	cat := &models.Category{Name: "Books", Slug: "books"}
	require.NoError(t, s.CreateCategory(context.Background(), cat))
	p := &models.Product{Name: name, Slug: models.Slugify(name), Price: price, Stock: stock, Category: cat.ID}
	require.NoError(t, s.CreateProduct(context.Background(), p))
	require.NoError(t, s.SaveCart(context.Background(), user.ID, []models.CartItem{
		{Product: p.ID, Quantity: qty, PriceSnapshot: price},
	}))
	return p
}

func TestPlaceOrder(t *testing.T) {
	r, s := newTestServer(t)
	user, token := newUser(t, s, models.RoleUser)
	product := seedCartedProduct(t, s, user, "Mystery Novel", 9.99, 5, 2)

	w := doJSON(t, r, http.MethodPost, "/api/orders", token, gin.H{"shippingAddress": "221B Baker St"})
	require.Equal(t, http.StatusCreated, w.Code)

	var out orderResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	order := out.Data

	assert.NotEmpty(t, order.Ref)
	assert.Equal(t, user.ID, order.User)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, "221B Baker St", order.ShippingAddress)
	require.Len(t, order.Items, 1)
	assert.Equal(t, "Mystery Novel", order.Items[0].Name)
	assert.Equal(t, 2, order.Items[0].Quantity)
	assert.InDelta(t, 9.99, order.Items[0].Price, 1e-9)
	assert.InDelta(t, 19.98, order.Total, 1e-9)

	// stock was decremented and the cart cleared
	stored, err := s.ProductByID(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, stored.Stock)

	refreshed, err := s.UserByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Empty(t, refreshed.Cart)
}

func TestPlaceOrderEmptyCart(t *testing.T) {
	r, s := newTestServer(t)
	_, token := newUser(t, s, models.RoleUser)

	w := doJSON(t, r, http.MethodPost, "/api/orders", token, gin.H{"shippingAddress": "221B Baker St"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	orders, err := s.ListOrders(context.Background())
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestPlaceOrderMissingAddress(t *testing.T) {
	r, s := newTestServer(t)
	user, token := newUser(t, s, models.RoleUser)
	seedCartedProduct(t, s, user, "Mystery Novel", 9.99, 5, 1)

	w := doJSON(t, r, http.MethodPost, "/api/orders", token, gin.H{"shippingAddress": "   "})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPlaceOrderSkipsDeletedProducts(t *testing.T) {
	r, s := newTestServer(t)
	user, token := newUser(t, s, models.RoleUser)
	product := seedCartedProduct(t, s, user, "Mystery Novel", 9.99, 5, 1)
	require.NoError(t, s.DeleteProduct(context.Background(), product.ID))

	// the cart's only product is gone, so checkout behaves like an empty cart
	w := doJSON(t, r, http.MethodPost, "/api/orders", token, gin.H{"shippingAddress": "221B Baker St"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetMyOrders(t *testing.T) {
	r, s := newTestServer(t)
	user, token := newUser(t, s, models.RoleUser)
	other, _ := newUser(t, s, models.RoleUser)

	mine := &models.Order{Ref: "r1", User: user.ID, Total: 5, Status: models.OrderStatusPending}
	theirs := &models.Order{Ref: "r2", User: other.ID, Total: 7, Status: models.OrderStatusPending}
	require.NoError(t, s.CreateOrder(context.Background(), mine))
	require.NoError(t, s.CreateOrder(context.Background(), theirs))

	w := doJSON(t, r, http.MethodGet, "/api/orders/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var out struct {
		Data []models.Order `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	require.Len(t, out.Data, 1)
	assert.Equal(t, "r1", out.Data[0].Ref)
}

func TestGetAllOrdersAdminOnly(t *testing.T) {
	r, s := newTestServer(t)
	user, userToken := newUser(t, s, models.RoleUser)
	_, adminToken := newUser(t, s, models.RoleAdmin)

	order := &models.Order{Ref: "r1", User: user.ID, Total: 5, Status: models.OrderStatusPending}
	require.NoError(t, s.CreateOrder(context.Background(), order))

	t.Run("regular user forbidden", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, "/api/orders", userToken, nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("admin sees owner expansion", func(t *testing.T) {
		w := doJSON(t, r, http.MethodGet, "/api/orders", adminToken, nil)
		require.Equal(t, http.StatusOK, w.Code)

		var out struct {
			Data []models.Order `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
		require.Len(t, out.Data, 1)
		require.NotNil(t, out.Data[0].UserDoc)
		assert.Equal(t, user.Email, out.Data[0].UserDoc.Email)
	})
}

func TestUpdateOrderStatus(t *testing.T) {
	r, s := newTestServer(t)
	user, _ := newUser(t, s, models.RoleUser)
	_, adminToken := newUser(t, s, models.RoleAdmin)

	order := &models.Order{Ref: "r1", User: user.ID, Total: 5, Status: models.OrderStatusPending}
	require.NoError(t, s.CreateOrder(context.Background(), order))

	t.Run("valid status", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPut, "/api/orders/"+order.ID.Hex(), adminToken, gin.H{"status": "Shipped"})
		require.Equal(t, http.StatusOK, w.Code)

		var out orderResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
		assert.Equal(t, models.OrderStatusShipped, out.Data.Status)
	})

	t.Run("unknown status", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPut, "/api/orders/"+order.ID.Hex(), adminToken, gin.H{"status": "teleported"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown order", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPut, "/api/orders/"+primitive.NewObjectID().Hex(), adminToken, gin.H{"status": "shipped"})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
