package categoryControllers_test

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

func adminToken(t *testing.T, s *store.Memory) string {
	t.Helper()
	user := &models.User{
		Name:     "Admin",
		Email:    primitive.NewObjectID().Hex() + "@example.com",
		Password: "hash",
		Role:     models.RoleAdmin,
	}
	require.NoError(t, s.CreateUser(context.Background(), user))
	token, err := authControllers.SignToken(user, testSecret, time.Hour)
	require.NoError(t, err)
	return token
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

func decodeCategory(t *testing.T, w *httptest.ResponseRecorder) models.Category {
	t.Helper()
	var out struct {
		Data models.Category `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out.Data
}

func TestCreateCategory(t *testing.T) {
	r, s := newTestServer(t)
	admin := adminToken(t, s)

	t.Run("admin only", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/api/categories", "", gin.H{"name": "Home & Garden"})
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("creates with derived slug", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/api/categories", admin, gin.H{"name": "Home & Garden"})
		require.Equal(t, http.StatusCreated, w.Code)
		cat := decodeCategory(t, w)
		assert.Equal(t, "Home & Garden", cat.Name)
		assert.Equal(t, "home-and-garden", cat.Slug)
	})

	t.Run("blank name", func(t *testing.T) {
		w := doJSON(t, r, http.MethodPost, "/api/categories", admin, gin.H{"name": "   "})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestListCategoriesSortedByName(t *testing.T) {
	r, s := newTestServer(t)
	for _, name := range []string{"Tools", "Books", "Fashion"} {
		cat := &models.Category{Name: name, Slug: models.Slugify(name)}
		require.NoError(t, s.CreateCategory(context.Background(), cat))
	}

	w := doJSON(t, r, http.MethodGet, "/api/categories", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var out struct {
		Data []models.Category `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	require.Len(t, out.Data, 3)
	assert.Equal(t, "Books", out.Data[0].Name)
	assert.Equal(t, "Fashion", out.Data[1].Name)
	assert.Equal(t, "Tools", out.Data[2].Name)
}

func TestUpdateCategoryRenameRecomputesSlug(t *testing.T) {
	r, s := newTestServer(t)
	admin := adminToken(t, s)
	cat := &models.Category{Name: "Gadgets", Slug: "gadgets"}
	require.NoError(t, s.CreateCategory(context.Background(), cat))

	w := doJSON(t, r, http.MethodPut, "/api/categories/"+cat.ID.Hex(), admin, gin.H{"name": "Smart Gadgets"})
	require.Equal(t, http.StatusOK, w.Code)
	updated := decodeCategory(t, w)
	assert.Equal(t, "smart-gadgets", updated.Slug)

	w = doJSON(t, r, http.MethodPut, "/api/categories/"+primitive.NewObjectID().Hex(), admin, gin.H{"name": "X"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteCategoryLeavesProducts(t *testing.T) {
	r, s := newTestServer(t)
	admin := adminToken(t, s)
	cat := &models.Category{Name: "Legacy", Slug: "legacy"}
	require.NoError(t, s.CreateCategory(context.Background(), cat))
	p := &models.Product{Name: "Orphan", Slug: "orphan", Price: 1, Stock: 1, Category: cat.ID}
	require.NoError(t, s.CreateProduct(context.Background(), p))

	w := doJSON(t, r, http.MethodDelete, "/api/categories/"+cat.ID.Hex(), admin, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// no cascade: the product keeps its dangling category reference
	stored, err := s.ProductByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, cat.ID, stored.Category)

	w = doJSON(t, r, http.MethodDelete, "/api/categories/"+cat.ID.Hex(), admin, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
