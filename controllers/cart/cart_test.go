package cartControllers_test

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

func newUser(t *testing.T, s *store.Memory) (*models.User, string) {
	t.Helper()
	user := &models.User{
		Name:     "Shopper",
		Email:    primitive.NewObjectID().Hex() + "@example.com",
		Password: "hash",
		Role:     models.RoleUser,
	}
	require.NoError(t, s.CreateUser(context.Background(), user))
	token, err := authControllers.SignToken(user, testSecret, time.Hour)
	require.NoError(t, err)
	return user, token
}

func newProduct(t *testing.T, s *store.Memory, name string, price float64, stock int) *models.Product {
	t.Helper()
	cat := &models.Category{Name: "Electronics", Slug: "electronics"}
	require.NoError(t, s.CreateCategory(context.Background(), cat))
	p := &models.Product{
		Name:     name,
		Slug:     models.Slugify(name),
		Price:    price,
		Stock:    stock,
		Category: cat.ID,
	}
	require.NoError(t, s.CreateProduct(context.Background(), p))
	return p
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

type cartResponse struct {
	Success bool `json:"success"`
	Data    []struct {
		Product *struct {
			ID           string  `json:"id"`
			Name         string  `json:"name"`
			Price        float64 `json:"price"`
			CategoryName string  `json:"categoryName"`
		} `json:"product"`
		Quantity      int     `json:"quantity"`
		PriceSnapshot float64 `json:"priceSnapshot"`
	} `json:"data"`
}

func decodeCart(t *testing.T, w *httptest.ResponseRecorder) cartResponse {
	t.Helper()
	var out cartResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestCartRequiresAuth(t *testing.T) {
	r, _ := newTestServer(t)

	w := doJSON(t, r, http.MethodGet, "/api/cart", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAddToCartAccumulates(t *testing.T) {
	r, s := newTestServer(t)
	_, token := newUser(t, s)
	product := newProduct(t, s, "Wireless Mouse", 24.50, 40)

	w := doJSON(t, r, http.MethodPost, "/api/cart", token, gin.H{"productId": product.ID.Hex(), "quantity": 2})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/cart", token, gin.H{"productId": product.ID.Hex(), "quantity": 3})
	require.Equal(t, http.StatusOK, w.Code)

	cart := decodeCart(t, w)
	require.Len(t, cart.Data, 1)
	assert.Equal(t, 5, cart.Data[0].Quantity)
	assert.Equal(t, "Wireless Mouse", cart.Data[0].Product.Name)
	assert.Equal(t, "Electronics", cart.Data[0].Product.CategoryName)
}

func TestAddToCartDefaultsQuantityToOne(t *testing.T) {
	r, s := newTestServer(t)
	_, token := newUser(t, s)
	product := newProduct(t, s, "USB Cable", 5.99, 100)

	w := doJSON(t, r, http.MethodPost, "/api/cart", token, gin.H{"productId": product.ID.Hex()})
	require.Equal(t, http.StatusOK, w.Code)

	cart := decodeCart(t, w)
	require.Len(t, cart.Data, 1)
	assert.Equal(t, 1, cart.Data[0].Quantity)
}

func TestAddToCartUnknownProduct(t *testing.T) {
	r, s := newTestServer(t)
	_, token := newUser(t, s)

	w := doJSON(t, r, http.MethodPost, "/api/cart", token, gin.H{"productId": primitive.NewObjectID().Hex()})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/cart", token, gin.H{"productId": "not-a-hex-id"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPriceSnapshotFrozenAtFirstAdd(t *testing.T) {
	r, s := newTestServer(t)
	_, token := newUser(t, s)
	product := newProduct(t, s, "Mechanical Keyboard", 79.00, 15)

	require.Equal(t, http.StatusOK,
		doJSON(t, r, http.MethodPost, "/api/cart", token, gin.H{"productId": product.ID.Hex(), "quantity": 1}).Code)

	// reprice after the first add
	product.Price = 99.00
	require.NoError(t, s.UpdateProduct(context.Background(), product))

	w := doJSON(t, r, http.MethodPost, "/api/cart", token, gin.H{"productId": product.ID.Hex(), "quantity": 1})
	require.Equal(t, http.StatusOK, w.Code)

	cart := decodeCart(t, w)
	require.Len(t, cart.Data, 1)
	assert.Equal(t, 2, cart.Data[0].Quantity)
	assert.InDelta(t, 79.00, cart.Data[0].PriceSnapshot, 1e-9)
	assert.InDelta(t, 99.00, cart.Data[0].Product.Price, 1e-9)
}

func TestUpdateCartItem(t *testing.T) {
	r, s := newTestServer(t)
	_, token := newUser(t, s)
	product := newProduct(t, s, "Desk Lamp", 32.00, 8)

	require.Equal(t, http.StatusOK,
		doJSON(t, r, http.MethodPost, "/api/cart", token, gin.H{"productId": product.ID.Hex(), "quantity": 2}).Code)

	t.Run("overwrites quantity", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPut, "/api/cart", token, gin.H{"productId": product.ID.Hex(), "quantity": 7})
		require.Equal(t, http.StatusOK, w.Code)
		cart := decodeCart(t, w)
		require.Len(t, cart.Data, 1)
		assert.Equal(t, 7, cart.Data[0].Quantity)
	})

	t.Run("missing item", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPut, "/api/cart", token, gin.H{"productId": primitive.NewObjectID().Hex(), "quantity": 1})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("zero quantity removes", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPut, "/api/cart", token, gin.H{"productId": product.ID.Hex(), "quantity": 0})
		require.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, decodeCart(t, w).Data)
	})
}

func TestRemoveFromCartIdempotent(t *testing.T) {
	r, s := newTestServer(t)
	_, token := newUser(t, s)
	product := newProduct(t, s, "Notebook", 3.50, 200)

	require.Equal(t, http.StatusOK,
		doJSON(t, r, http.MethodPost, "/api/cart", token, gin.H{"productId": product.ID.Hex()}).Code)

	first := doJSON(t, r, http.MethodDelete, "/api/cart/"+product.ID.Hex(), token, nil)
	require.Equal(t, http.StatusOK, first.Code)
	assert.Empty(t, decodeCart(t, first).Data)

	// a second removal of the same item is a no-op
	second := doJSON(t, r, http.MethodDelete, "/api/cart/"+product.ID.Hex(), token, nil)
	require.Equal(t, http.StatusOK, second.Code)
	assert.Empty(t, decodeCart(t, second).Data)
}

func TestCartShowsNilProductAfterDeletion(t *testing.T) {
	r, s := newTestServer(t)
	_, token := newUser(t, s)
	product := newProduct(t, s, "Discontinued Gadget", 49.99, 3)

	require.Equal(t, http.StatusOK,
		doJSON(t, r, http.MethodPost, "/api/cart", token, gin.H{"productId": product.ID.Hex()}).Code)
	require.NoError(t, s.DeleteProduct(context.Background(), product.ID))

	w := doJSON(t, r, http.MethodGet, "/api/cart", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	cart := decodeCart(t, w)
	require.Len(t, cart.Data, 1)
	assert.Nil(t, cart.Data[0].Product)
	assert.InDelta(t, 49.99, cart.Data[0].PriceSnapshot, 1e-9)
}

func TestWishlistToggle(t *testing.T) {
	r, s := newTestServer(t)
	_, token := newUser(t, s)
	product := newProduct(t, s, "Headphones", 59.00, 12)

	w := doJSON(t, r, http.MethodPost, "/api/cart/wishlist", token, gin.H{"productId": product.ID.Hex()})
	require.Equal(t, http.StatusOK, w.Code)

	var out struct {
		Data []models.Product `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	require.Len(t, out.Data, 1)
	assert.Equal(t, "Headphones", out.Data[0].Name)

	// toggling again removes the product
	w = doJSON(t, r, http.MethodPost, "/api/cart/wishlist", token, gin.H{"productId": product.ID.Hex()})
	require.Equal(t, http.StatusOK, w.Code)
	out.Data = nil
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Empty(t, out.Data)
}

func TestWishlistInvalidID(t *testing.T) {
	r, s := newTestServer(t)
	_, token := newUser(t, s)

	w := doJSON(t, r, http.MethodPost, "/api/cart/wishlist", token, gin.H{"productId": "nope"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWishlistDropsDeletedProducts(t *testing.T) {
	r, s := newTestServer(t)
	user, token := newUser(t, s)
	keep := newProduct(t, s, "Keep Me", 10, 5)
	gone := newProduct(t, s, "Gone Soon", 20, 5)

	require.NoError(t, s.SaveWishlist(context.Background(), user.ID, []primitive.ObjectID{keep.ID, gone.ID}))
	require.NoError(t, s.DeleteProduct(context.Background(), gone.ID))

	w := doJSON(t, r, http.MethodGet, "/api/cart/wishlist", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var out struct {
		Data []models.Product `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	require.Len(t, out.Data, 1)
	assert.Equal(t, "Keep Me", out.Data[0].Name)
}
