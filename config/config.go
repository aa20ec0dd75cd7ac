package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds every environment-driven setting the server and the seed
// utility need. Values come from the process environment, optionally
// preloaded from a .env file.
type Config struct {
	Port      string `envconfig:"PORT" default:"8080"`
	ClientURL string `envconfig:"CLIENT_URL" default:"http://localhost:5173"`

	MongoURI string `envconfig:"MONGODB_URI" default:"mongodb://localhost:27017"`
	MongoDB  string `envconfig:"MONGODB_NAME" default:"ecommerce"`

	JWTSecret  string        `envconfig:"JWT_SECRET" default:"dev-secret-change-me"`
	JWTExpires time.Duration `envconfig:"JWT_EXPIRES_IN" default:"168h"`

	UploadDir string `envconfig:"UPLOAD_DIR" default:"./uploads"`

	RateLimitMax    int64         `envconfig:"RATE_LIMIT_MAX" default:"1000"`
	RateLimitWindow time.Duration `envconfig:"RATE_LIMIT_WINDOW" default:"15m"`

	EmailHost string `envconfig:"EMAIL_HOST"`
	EmailPort int    `envconfig:"EMAIL_PORT" default:"587"`
	EmailUser string `envconfig:"EMAIL_USER"`
	EmailPass string `envconfig:"EMAIL_PASS"`

	AdminEmail    string `envconfig:"ADMIN_EMAIL" default:"admin@example.com"`
	AdminPassword string `envconfig:"ADMIN_PASSWORD" default:"Admin@12345"`
}

// Load reads .env (if present) and the environment into a Config.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
