package middleware

import (
	"context"                      // Context for Redis operations
	"net/http"                     // HTTP status codes
	"strings"                      // String manipulation
	"event_booking/internal/utils" // JWT utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
)

// DenylistKey builds the Redis key holding a revoked token
func DenylistKey(token string) string {
	return "denylist:" + token
}

// JWTAuthMiddleware validates JWT tokens and extracts user information.
// Tokens revoked by logout are tracked in a Redis denylist until they expire.
func JWTAuthMiddleware(secret string, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization") // Get Authorization header
		// Check if the Authorization header is present and properly formatted
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			// If not, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Missing or invalid Authorization header"})
			return
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ") // Extract the token string and parse it
		claims, err := utils.ParseJWT(tokenStr, secret)       // Parse the JWT token
		if err != nil {
			// If parsing fails, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token"})
			return
		}
		// Reject tokens revoked by logout
		if n, err := rdb.Exists(context.Background(), DenylistKey(tokenStr)).Result(); err == nil && n > 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token"})
			return
		}
		c.Set("userID", claims.UserID) // Store userID in context
		c.Set("token", tokenStr)       // Store raw token for logout
		c.Next()                       // Proceed to the next handler
	}
}
