package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/abhikadam2003/Ecommerce/config"
	cartControllers "github.com/abhikadam2003/Ecommerce/controllers/cart"
	"github.com/abhikadam2003/Ecommerce/middleware"
	"github.com/abhikadam2003/Ecommerce/store"
)

// SetupCartRoutes registers all "/api/cart/*" endpoints. Everything here
// operates on the authenticated user's own cart and wishlist.
func SetupCartRoutes(api *gin.RouterGroup, s store.Store, cfg *config.Config) {
	cart := api.Group("/cart")
	cart.Use(middleware.Protect(s, cfg.JWTSecret))
	{
		// ──────────────── Shopping Cart ────────────────
		cart.GET("", cartControllers.GetCart(s))                      // GET /api/cart
		cart.POST("", cartControllers.AddToCart(s))                   // POST /api/cart
		cart.PUT("", cartControllers.UpdateCartItem(s))               // PUT /api/cart
		cart.DELETE("/:productId", cartControllers.RemoveFromCart(s)) // DELETE /api/cart/:productId

		// ──────────────── Wishlist ────────────────
		cart.GET("/wishlist", cartControllers.GetWishlist(s))     // GET /api/cart/wishlist
		cart.POST("/wishlist", cartControllers.ToggleWishlist(s)) // POST /api/cart/wishlist
	}
}
