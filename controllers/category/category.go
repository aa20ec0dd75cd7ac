package categoryControllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/abhikadam2003/Ecommerce/models"
	"github.com/abhikadam2003/Ecommerce/store"
)

type CategoryInput struct {
	Name string `json:"name" form:"name"`
}

// GET /api/categories
func GetCategories(s store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		categories, err := s.ListCategories(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch categories"})
			return
		}
		if categories == nil {
			categories = []models.Category{}
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": categories})
	}
}

// GET /api/categories/:id
func GetCategory(s store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Category not found"})
			return
		}

		category, err := s.CategoryByID(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Category not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": category})
	}
}

// POST /api/categories  (admin)
func CreateCategory(s store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CategoryInput
		_ = c.ShouldBind(&input)

		input.Name = strings.TrimSpace(input.Name)
		if input.Name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "name is required"})
			return
		}

		category := &models.Category{
			Name: input.Name,
			Slug: models.Slugify(input.Name),
		}
		if err := s.CreateCategory(c.Request.Context(), category); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create category"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"success": true, "data": category})
	}
}

// PUT /api/categories/:id  (admin)
func UpdateCategory(s store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Category not found"})
			return
		}

		category, err := s.CategoryByID(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Category not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
			return
		}

		var input CategoryInput
		_ = c.ShouldBind(&input)
		input.Name = strings.TrimSpace(input.Name)
		if input.Name == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "name is required"})
			return
		}

		if input.Name != category.Name {
			category.Name = input.Name
			category.Slug = models.Slugify(input.Name)
		}

		if err := s.UpdateCategory(c.Request.Context(), category); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update category"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": category})
	}
}

// DELETE /api/categories/:id  (admin)
//
// Products referencing the category are not touched; there is no
// cascade or reference guard.
func DeleteCategory(s store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Category not found"})
			return
		}

		if err := s.DeleteCategory(c.Request.Context(), id); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Category not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to delete category"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Category deleted"})
	}
}
