package middleware

import (
	"errors"
	"net/http"
	"strings"

	"authly-be/internal/jwt"

	"github.com/gin-gonic/gin"
)

// SessionTokenKey is the context key under which the raw session token is
// stored for downstream handlers.
const SessionTokenKey = "sessionToken"

// ExtractToken reads the Authorization header. Both "Bearer <token>" and a
// raw token value are accepted, matching what the web client sends.
func ExtractToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	if after, ok := strings.CutPrefix(header, "Bearer "); ok {
		return after
	}
	return header
}

// AuthMiddleware rejects requests without a valid session token and stores
// the raw token for handlers that resolve the profile themselves.
func AuthMiddleware(jwtService *jwt.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := ExtractToken(c)
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "No token provided",
			})
			c.Abort()
			return
		}

		if _, err := jwtService.ValidateToken(tokenString); err != nil {
			message := "Invalid token"
			if errors.Is(err, jwt.ErrTokenExpired) {
				message = "Token expired"
			}
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": message,
			})
			c.Abort()
			return
		}

		c.Set(SessionTokenKey, tokenString)
		c.Next()
	}
}
