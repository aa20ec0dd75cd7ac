package cartControllers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/abhikadam2003/Ecommerce/middleware"
	"github.com/abhikadam2003/Ecommerce/models"
	"github.com/abhikadam2003/Ecommerce/store"
)

// -------- Request Structs --------

type AddToCartInput struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity"`
}

type UpdateCartInput struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity"`
}

// CartProduct is the display expansion of a cart entry's product
// reference.
type CartProduct struct {
	ID           primitive.ObjectID `json:"id"`
	Name         string             `json:"name"`
	Images       []string           `json:"images"`
	Category     primitive.ObjectID `json:"category"`
	CategoryName string             `json:"categoryName,omitempty"`
	Stock        int                `json:"stock"`
	Price        float64            `json:"price"`
}

type CartEntry struct {
	Product       *CartProduct `json:"product"`
	Quantity      int          `json:"quantity"`
	PriceSnapshot float64      `json:"priceSnapshot"`
}

// expandCart resolves each entry's product reference to display fields
// with explicit follow-up reads. Entries whose product has since been
// deleted keep a nil product.
func expandCart(ctx context.Context, s store.Store, cart []models.CartItem) ([]CartEntry, error) {
	ids := make([]primitive.ObjectID, 0, len(cart))
	for _, item := range cart {
		ids = append(ids, item.Product)
	}
	products, err := s.ProductsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	catIDs := make([]primitive.ObjectID, 0, len(products))
	seen := make(map[primitive.ObjectID]bool)
	for _, p := range products {
		if !seen[p.Category] {
			seen[p.Category] = true
			catIDs = append(catIDs, p.Category)
		}
	}
	categories, err := s.CategoriesByIDs(ctx, catIDs)
	if err != nil {
		return nil, err
	}

	entries := make([]CartEntry, 0, len(cart))
	for _, item := range cart {
		entry := CartEntry{Quantity: item.Quantity, PriceSnapshot: item.PriceSnapshot}
		if p, ok := products[item.Product]; ok {
			cp := CartProduct{
				ID:       p.ID,
				Name:     p.Name,
				Images:   p.Images,
				Category: p.Category,
				Stock:    p.Stock,
				Price:    p.Price,
			}
			if cat, ok := categories[p.Category]; ok {
				cp.CategoryName = cat.Name
			}
			entry.Product = &cp
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func respondCart(c *gin.Context, s store.Store, cart []models.CartItem) {
	entries, err := expandCart(c.Request.Context(), s, cart)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": entries})
}

// GET /api/cart
func GetCart(s store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		respondCart(c, s, user.Cart)
	}
}

// POST /api/cart
//
// Adding a product already in the cart increments its quantity; the
// price snapshot stays at the value captured on the first add.
func AddToCart(s store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)

		var input AddToCartInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid input: " + err.Error()})
			return
		}
		if input.Quantity < 1 {
			input.Quantity = 1
		}

		productID, err := primitive.ObjectIDFromHex(input.ProductID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found"})
			return
		}
		product, err := s.ProductByID(c.Request.Context(), productID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
			return
		}

		cart := user.Cart
		found := false
		for i := range cart {
			if cart[i].Product == productID {
				cart[i].Quantity += input.Quantity
				found = true
				break
			}
		}
		if !found {
			cart = append(cart, models.CartItem{
				Product:       productID,
				Quantity:      input.Quantity,
				PriceSnapshot: product.Price,
			})
		}

		if err := s.SaveCart(c.Request.Context(), user.ID, cart); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update cart"})
			return
		}
		respondCart(c, s, cart)
	}
}

// PUT /api/cart
//
// Overwrites an item's quantity; zero or negative removes the item.
func UpdateCartItem(s store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)

		var input UpdateCartInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid input: " + err.Error()})
			return
		}
		productID, err := primitive.ObjectIDFromHex(input.ProductID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Item not found"})
			return
		}

		cart := user.Cart
		idx := -1
		for i := range cart {
			if cart[i].Product == productID {
				idx = i
				break
			}
		}
		if idx < 0 {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Item not found"})
			return
		}

		if input.Quantity < 1 {
			cart = append(cart[:idx], cart[idx+1:]...)
		} else {
			cart[idx].Quantity = input.Quantity
		}

		if err := s.SaveCart(c.Request.Context(), user.ID, cart); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update cart"})
			return
		}
		respondCart(c, s, cart)
	}
}

// DELETE /api/cart/:productId
//
// Idempotent: removing an absent item is a no-op.
func RemoveFromCart(s store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)

		productID, err := primitive.ObjectIDFromHex(c.Param("productId"))
		if err != nil {
			respondCart(c, s, user.Cart)
			return
		}

		cart := user.Cart[:0:0]
		for _, item := range user.Cart {
			if item.Product != productID {
				cart = append(cart, item)
			}
		}

		if err := s.SaveCart(c.Request.Context(), user.ID, cart); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update cart"})
			return
		}
		respondCart(c, s, cart)
	}
}
