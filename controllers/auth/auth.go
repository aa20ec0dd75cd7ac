package authControllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/abhikadam2003/Ecommerce/config"
	"github.com/abhikadam2003/Ecommerce/middleware"
	"github.com/abhikadam2003/Ecommerce/models"
	"github.com/abhikadam2003/Ecommerce/services/email"
	"github.com/abhikadam2003/Ecommerce/store"
)

// -------- Request Structs --------

type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignToken issues the session token: HS256, claims {id, role, exp}.
func SignToken(u *models.User, secret string, expires time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"id":   u.ID.Hex(),
		"role": string(u.Role),
		"exp":  time.Now().Add(expires).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func setTokenCookie(c *gin.Context, token string, expires time.Duration) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie("token", token, int(expires.Seconds()), "/", "", false, true)
}

func userPayload(u *models.User) gin.H {
	return gin.H{
		"id":    u.ID,
		"name":  u.Name,
		"email": u.Email,
		"role":  u.Role,
	}
}

// POST /api/auth/register
func Register(s store.Store, mailer *email.Sender, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input RegisterInput
		_ = c.ShouldBindJSON(&input)

		input.Name = strings.TrimSpace(input.Name)
		input.Email = strings.ToLower(strings.TrimSpace(input.Email))
		if input.Name == "" || input.Email == "" || input.Password == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Missing fields"})
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
			return
		}

		user := &models.User{
			Name:     input.Name,
			Email:    input.Email,
			Password: string(hash),
			Role:     models.RoleUser,
		}

		if err := s.CreateUser(c.Request.Context(), user); err != nil {
			if err == store.ErrEmailTaken {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "User with email already exists"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error"})
			return
		}

		token, err := SignToken(user, cfg.JWTSecret, cfg.JWTExpires)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Token generation failed"})
			return
		}
		setTokenCookie(c, token, cfg.JWTExpires)

		// Welcome mail is best-effort; failures never fail registration.
		mailer.SendWelcome(user.Email, user.Name)

		c.JSON(http.StatusCreated, gin.H{"success": true, "data": userPayload(user), "token": token})
	}
}

// POST /api/auth/login
func Login(s store.Store, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input LoginInput
		_ = c.ShouldBindJSON(&input)
		input.Email = strings.ToLower(strings.TrimSpace(input.Email))

		// Unknown email and wrong password answer identically so accounts
		// cannot be enumerated.
		user, err := s.UserByEmail(c.Request.Context(), input.Email)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid credentials"})
			return
		}
		if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(input.Password)) != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid credentials"})
			return
		}

		token, err := SignToken(user, cfg.JWTSecret, cfg.JWTExpires)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Token generation failed"})
			return
		}
		setTokenCookie(c, token, cfg.JWTExpires)

		c.JSON(http.StatusOK, gin.H{"success": true, "data": userPayload(user), "token": token})
	}
}

// GET /api/auth/me
func Me() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c)
		c.JSON(http.StatusOK, gin.H{"success": true, "data": user})
	}
}

// POST /api/auth/logout
//
// Stateless: only the cookie is cleared, an already-issued token stays
// valid until its natural expiry.
func Logout() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie("token", "", -1, "/", "", false, true)
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logged out"})
	}
}
