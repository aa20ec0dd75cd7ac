package cartControllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/abhikadam2003/Ecommerce/middleware"
	"github.com/abhikadam2003/Ecommerce/models"
	"github.com/abhikadam2003/Ecommerce/store"
)

type WishlistInput struct {
	ProductID string `json:"productId" binding:"required"`
}

// expandWishlist resolves the wishlist's product references, keeping the
// list order and dropping since-deleted products.
func expandWishlist(ctx context.Context, s store.Store, ids []primitive.ObjectID) ([]models.Product, error) {
	products, err := s.ProductsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]models.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func respondWishlist(c *gin.Context, s store.Store, ids []primitive.ObjectID) {
	products, err := expandWishlist(c.Request.Context(), s, ids)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": products})
}

// GET /api/cart/wishlist
func GetWishlist(s store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		respondWishlist(c, s, user.Wishlist)
	}
}

// POST /api/cart/wishlist
//
// Toggle: the reference is added when absent and removed when present,
// so applying it twice restores the original membership.
func ToggleWishlist(s store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)

		var input WishlistInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid input: " + err.Error()})
			return
		}
		productID, err := primitive.ObjectIDFromHex(input.ProductID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid product id"})
			return
		}

		wishlist := user.Wishlist[:0:0]
		removed := false
		for _, id := range user.Wishlist {
			if id == productID {
				removed = true
				continue
			}
			wishlist = append(wishlist, id)
		}
		if !removed {
			wishlist = append(wishlist, productID)
		}

		if err := s.SaveWishlist(c.Request.Context(), user.ID, wishlist); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update wishlist"})
			return
		}
		respondWishlist(c, s, wishlist)
	}
}
