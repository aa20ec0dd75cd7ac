package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/abhikadam2003/Ecommerce/config"
	categoryControllers "github.com/abhikadam2003/Ecommerce/controllers/category"
	"github.com/abhikadam2003/Ecommerce/middleware"
	"github.com/abhikadam2003/Ecommerce/models"
	"github.com/abhikadam2003/Ecommerce/store"
)

// SetupCategoryRoutes registers all "/api/categories/*" endpoints.
func SetupCategoryRoutes(api *gin.RouterGroup, s store.Store, cfg *config.Config) {
	categories := api.Group("/categories")
	{
		categories.GET("", categoryControllers.GetCategories(s))    // GET /api/categories
		categories.GET("/:id", categoryControllers.GetCategory(s))  // GET /api/categories/:id

		admin := categories.Group("")
		admin.Use(middleware.Protect(s, cfg.JWTSecret), middleware.Authorize(models.RoleAdmin))
		{
			admin.POST("", categoryControllers.CreateCategory(s))       // POST /api/categories
			admin.PUT("/:id", categoryControllers.UpdateCategory(s))    // PUT /api/categories/:id
			admin.DELETE("/:id", categoryControllers.DeleteCategory(s)) // DELETE /api/categories/:id
		}
	}
}
