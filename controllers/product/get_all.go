package productControllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/abhikadam2003/Ecommerce/models"
	"github.com/abhikadam2003/Ecommerce/store"
	"github.com/abhikadam2003/Ecommerce/utils"
)

// GET /api/products
//
// Filters: case-insensitive search over name/description, exact category
// match, comma-separated sort (default newest-first), page/limit
// pagination clamped by utils.BuildProductQuery.
func GetProducts(s store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := utils.BuildProductQuery(c)

		items, total, err := s.ListProducts(c.Request.Context(), q)
		if err != nil {
			if errors.Is(err, store.ErrInvalidID) {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid category id"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to fetch products"})
			return
		}

		// Expand each product's category in one follow-up read.
		catIDs := make([]primitive.ObjectID, 0, len(items))
		seen := make(map[primitive.ObjectID]bool)
		for _, p := range items {
			if !seen[p.Category] {
				seen[p.Category] = true
				catIDs = append(catIDs, p.Category)
			}
		}
		cats, err := s.CategoriesByIDs(c.Request.Context(), catIDs)
		if err == nil {
			for i := range items {
				if cat, ok := cats[items[i].Category]; ok {
					catCopy := cat
					items[i].CategoryDoc = &catCopy
				}
			}
		}

		if items == nil {
			items = []models.Product{}
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"data":    items,
			"pagination": gin.H{
				"page":  q.Page,
				"limit": q.Limit,
				"total": total,
				"pages": utils.Pages(total, q.Limit),
			},
		})
	}
}
