package middleware

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware requires a valid bearer token and populates user_id,
// user_email, user_type and user_roles in the request context.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Authorization header required",
			})
			c.Abort()
			return
		}

		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Invalid authorization header format",
			})
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		if !setClaims(c, tokenString) {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "Invalid token",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

// OptionalAuthMiddleware populates the same context keys when a valid
// token is present but lets unauthenticated requests through. Used by the
// report creation route, which accepts anonymous submissions.
func OptionalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			setClaims(c, strings.TrimPrefix(authHeader, "Bearer "))
		}
		c.Next()
	}
}

func setClaims(c *gin.Context, tokenString string) bool {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return false
	}

	if userID, exists := claims["user_id"]; exists {
		if id, ok := userID.(float64); ok {
			c.Set("user_id", uint(id))
		}
	}
	if email, exists := claims["email"]; exists {
		if e, ok := email.(string); ok {
			c.Set("user_email", e)
		}
	}
	if userType, exists := claims["user_type"]; exists {
		if t, ok := userType.(string); ok {
			c.Set("user_type", t)
		}
	}
	if roles, exists := claims["roles"]; exists {
		if list, ok := roles.([]interface{}); ok {
			parsed := make([]string, 0, len(list))
			for _, r := range list {
				if s, ok := r.(string); ok {
					parsed = append(parsed, s)
				}
			}
			c.Set("user_roles", parsed)
		}
	}

	return true
}
