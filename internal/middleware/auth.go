package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/hackmatehq/hackmate/pkg/token"
)

const (
	AuthProfileIDKey = "auth_profile_id"
)

func AuthMiddleware(jwtSecret string, db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			return
		}

		bearerToken := strings.Split(authHeader, " ")
		if len(bearerToken) != 2 || strings.ToLower(bearerToken[0]) != "bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid Authorization header format. Expected: Bearer <token>"})
			return
		}

		claims, err := token.ValidateJWT(bearerToken[1], jwtSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token: " + err.Error()})
			return
		}

		var count int64
		if err := db.Table("profiles").Where("id = ? AND deleted_at IS NULL", claims.ProfileID).Count(&count).Error; err != nil || count == 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Profile not found or inactive"})
			return
		}

		c.Set(AuthProfileIDKey, claims.ProfileID)
		c.Next()
	}
}

// GetProfileIDFromContext extracts the authenticated profile id from the context.
func GetProfileIDFromContext(c *gin.Context) (uint, error) {
	profileID, exists := c.Get(AuthProfileIDKey)
	if !exists {
		return 0, errors.New("profile ID not found in context")
	}

	pid, ok := profileID.(uint)
	if !ok {
		return 0, fmt.Errorf("profile ID has unexpected type: %T", profileID)
	}

	return pid, nil
}
