package middlewares

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// IdentityMiddleware reads the user id forwarded by the authenticating
// gateway and sets it in the request context. Requests without a valid id
// are rejected; token validation itself happens upstream.
func IdentityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetHeader("X-User-ID")
		if userID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing X-User-ID header"})
			c.Abort()
			return
		}

		if _, err := primitive.ObjectIDFromHex(userID); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid user id"})
			c.Abort()
			return
		}

		c.Set("userID", userID)
		c.Next()
	}
}
