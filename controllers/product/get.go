package productControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/abhikadam2003/Ecommerce/store"
)

// GET /api/products/:id
//
// Returns the product with its category expanded by an explicit
// follow-up read.
func GetProduct(s store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := primitive.ObjectIDFromHex(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found"})
			return
		}

		product, err := s.ProductByID(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
			return
		}

		if cat, err := s.CategoryByID(c.Request.Context(), product.Category); err == nil {
			product.CategoryDoc = cat
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "data": product})
	}
}
