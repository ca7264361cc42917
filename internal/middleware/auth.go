package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/splitroom/splitroom/internal/auth"
)

const (
	// UserIDKey is the gin context key for the authenticated user ID.
	UserIDKey = "user_id"
	// PhoneNumberKey is the gin context key for the authenticated phone number.
	PhoneNumberKey = "phone_number"
)

// GetUserID extracts the authenticated user ID from the request context.
// Returns empty string if not set.
func GetUserID(c *gin.Context) string {
	userID, _ := c.Get(UserIDKey)
	id, _ := userID.(string)
	return id
}

// RequireAuth validates the bearer token and stores the user identity on
// the request context. Requests without a valid token are rejected with
// 401 before reaching the handler.
func RequireAuth(jwtManager *auth.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": auth.ErrMissingToken.Error()})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": auth.ErrInvalidToken.Error()})
			return
		}

		claims, err := jwtManager.Validate(parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": auth.ErrInvalidToken.Error()})
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(PhoneNumberKey, claims.PhoneNumber)
		c.Next()
	}
}
