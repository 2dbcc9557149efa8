package middleware

import (
	"errors"
	"net/http"
	"strings"

	"ecolearn-service/internal/auth"

	"github.com/gin-gonic/gin"
)

const (
	authUserKey  = "auth_user_id"
	authEmailKey = "auth_email"
)

// RequireAuth validates the bearer token and stores the user identity on the
// request context.
func RequireAuth(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization format. Use: Bearer <token>"})
			c.Abort()
			return
		}

		claims, err := jwtService.ValidateToken(parts[1])
		if err != nil {
			if errors.Is(err, auth.ErrExpiredToken) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Token has expired"})
			} else {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			}
			c.Abort()
			return
		}

		c.Set(authUserKey, claims.UserID)
		c.Set(authEmailKey, claims.Email)
		c.Next()
	}
}

// GetUserID returns the authenticated user's id set by RequireAuth.
func GetUserID(c *gin.Context) (string, bool) {
	v, ok := c.Get(authUserKey)
	if !ok {
		return "", false
	}
	id, ok := v.(string)
	return id, ok
}
