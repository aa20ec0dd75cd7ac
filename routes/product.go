package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/abhikadam2003/Ecommerce/config"
	productControllers "github.com/abhikadam2003/Ecommerce/controllers/product"
	"github.com/abhikadam2003/Ecommerce/middleware"
	"github.com/abhikadam2003/Ecommerce/models"
	"github.com/abhikadam2003/Ecommerce/store"
)

// SetupProductRoutes registers all "/api/products/*" endpoints. Reads are
// public; writes and the export are admin-only.
func SetupProductRoutes(api *gin.RouterGroup, s store.Store, cfg *config.Config) {
	products := api.Group("/products")
	{
		products.GET("", productControllers.GetProducts(s)) // GET /api/products

		admin := products.Group("")
		admin.Use(middleware.Protect(s, cfg.JWTSecret), middleware.Authorize(models.RoleAdmin))
		{
			admin.GET("/export", productControllers.ExportProductsToExcel(s)) // GET /api/products/export
			admin.POST("", productControllers.CreateProduct(s, cfg))          // POST /api/products
			admin.PUT("/:id", productControllers.UpdateProduct(s, cfg))       // PUT /api/products/:id
			admin.DELETE("/:id", productControllers.DeleteProduct(s))         // DELETE /api/products/:id
		}

		products.GET("/:id", productControllers.GetProduct(s)) // GET /api/products/:id
	}
}
