package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/afandian/folktunefinder-go/internal/config"
	"github.com/afandian/folktunefinder-go/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

const bearerPrefix = "Bearer"

// Claims is the admin JWT's payload: a registered claim set plus the
// admin user's ID and email.
type Claims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// AdminAuth validates a bearer JWT against cfg.AdminJWTSecret and
// attaches the corresponding admin user to the request context. There
// is no cookie fallback and no optional-auth variant: every route
// behind this middleware requires a valid admin token.
func AdminAuth(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		var tokenString string
		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == bearerPrefix {
				tokenString = parts[1]
			}
		}

		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
			c.Abort()
			return
		}

		claims := &Claims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(cfg.AdminJWTSecret), nil
		})
		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			c.Abort()
			return
		}

		var admin models.AdminUser
		if err := db.First(&admin, claims.UserID).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "admin user not found"})
			c.Abort()
			return
		}

		c.Set("admin_user", admin)
		c.Set("admin_user_id", admin.ID)
		c.Next()
	}
}

// GetCurrentAdmin retrieves the authenticated admin user from context.
func GetCurrentAdmin(c *gin.Context) (*models.AdminUser, bool) {
	val, exists := c.Get("admin_user")
	if !exists {
		return nil, false
	}
	admin, ok := val.(models.AdminUser)
	return &admin, ok
}
