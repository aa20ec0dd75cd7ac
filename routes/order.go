package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/abhikadam2003/Ecommerce/config"
	orderControllers "github.com/abhikadam2003/Ecommerce/controllers/order"
	"github.com/abhikadam2003/Ecommerce/middleware"
	"github.com/abhikadam2003/Ecommerce/models"
	"github.com/abhikadam2003/Ecommerce/services/email"
	"github.com/abhikadam2003/Ecommerce/store"
)

// SetupOrderRoutes registers all "/api/orders/*" endpoints.
func SetupOrderRoutes(api *gin.RouterGroup, s store.Store, mailer *email.Sender, cfg *config.Config, log *logrus.Logger) {
	orders := api.Group("/orders")
	orders.Use(middleware.Protect(s, cfg.JWTSecret))
	{
		orders.POST("", orderControllers.PlaceOrder(s, mailer, log)) // POST /api/orders
		orders.GET("/me", orderControllers.GetMyOrders(s))           // GET /api/orders/me

		admin := orders.Group("")
		admin.Use(middleware.Authorize(models.RoleAdmin))
		{
			admin.GET("", orderControllers.GetAllOrders(s))           // GET /api/orders
			admin.PUT("/:id", orderControllers.UpdateOrderStatus(s))  // PUT /api/orders/:id
		}
	}
}
