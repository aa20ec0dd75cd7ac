package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/abhikadam2003/Ecommerce/config"
	"github.com/abhikadam2003/Ecommerce/middleware"
	"github.com/abhikadam2003/Ecommerce/routes"
	"github.com/abhikadam2003/Ecommerce/services/email"
	"github.com/abhikadam2003/Ecommerce/store"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	log.Info("✅ Starting application...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	s := initStore(cfg, log)
	mailer := email.NewSender(cfg, log)

	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.CustomRecovery(func(c *gin.Context, err interface{}) {
		log.Errorf("panic recovered: %v", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
	}))

	r.Use(middleware.CORS(cfg.ClientURL))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.RateLimit(cfg.RateLimitMax, cfg.RateLimitWindow))

	// Serve uploaded images
	if err := os.MkdirAll(cfg.UploadDir, os.ModePerm); err != nil {
		log.Fatalf("❌ Failed to create uploads dir: %v", err)
	}
	r.Static("/uploads", cfg.UploadDir)

	routes.SetupRoutes(r, s, mailer, cfg, log)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Not found"})
	})

	log.Infof("🚀 Server running on port %s...", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

// initStore connects to MongoDB. MONGODB_URI=memory swaps in the
// in-memory store for a database-free local run.
func initStore(cfg *config.Config, log *logrus.Logger) store.Store {
	if cfg.MongoURI == "memory" {
		log.Warn("Using in-memory store, nothing will be persisted")
		return store.NewMemory()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	db, err := store.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatalf("❌ DB connection failed: %v", err)
	}
	if err := store.EnsureIndexes(ctx, db); err != nil {
		log.Fatalf("❌ Failed to create indexes: %v", err)
	}
	log.Info("✅ Connected to MongoDB")
	return store.NewMongo(db)
}
