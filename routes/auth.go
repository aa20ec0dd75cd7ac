package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/abhikadam2003/Ecommerce/config"
	authControllers "github.com/abhikadam2003/Ecommerce/controllers/auth"
	"github.com/abhikadam2003/Ecommerce/middleware"
	"github.com/abhikadam2003/Ecommerce/services/email"
	"github.com/abhikadam2003/Ecommerce/store"
)

// SetupAuthRoutes registers all "/api/auth/*" endpoints.
func SetupAuthRoutes(api *gin.RouterGroup, s store.Store, mailer *email.Sender, cfg *config.Config) {
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", authControllers.Register(s, mailer, cfg)) // POST /api/auth/register
		authGroup.POST("/login", authControllers.Login(s, cfg))               // POST /api/auth/login

		authGroup.GET("/me", middleware.Protect(s, cfg.JWTSecret), authControllers.Me())          // GET /api/auth/me
		authGroup.POST("/logout", middleware.Protect(s, cfg.JWTSecret), authControllers.Logout()) // POST /api/auth/logout
	}
}
