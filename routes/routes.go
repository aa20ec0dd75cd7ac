package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/abhikadam2003/Ecommerce/config"
	"github.com/abhikadam2003/Ecommerce/services/email"
	"github.com/abhikadam2003/Ecommerce/store"
)

// SetupRoutes is the single entry-point that wires up every /api route
// group.
func SetupRoutes(r *gin.Engine, s store.Store, mailer *email.Sender, cfg *config.Config, log *logrus.Logger) {
	api := r.Group("/api")

	// Liveness check
	api.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"success": true, "message": "Ok"})
	})

	SetupAuthRoutes(api, s, mailer, cfg)
	SetupProductRoutes(api, s, cfg)
	SetupCategoryRoutes(api, s, cfg)
	SetupCartRoutes(api, s, cfg)
	SetupOrderRoutes(api, s, mailer, cfg, log)
}
