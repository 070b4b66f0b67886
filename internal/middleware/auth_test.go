package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"authly-be/internal/jwt"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProtectedRouter(svc *jwt.JWTService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", AuthMiddleware(svc), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"token": c.GetString(SessionTokenKey)})
	})
	return router
}

func get(router *gin.Engine, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	svc := jwt.NewJWTService("secret", time.Hour)
	router := newProtectedRouter(svc)

	tok, err := svc.GenerateToken("u1", "u1@x.com")
	require.NoError(t, err)

	assert.Equal(t, http.StatusUnauthorized, get(router, "").Code)
	assert.Equal(t, http.StatusUnauthorized, get(router, "Bearer garbage").Code)
	assert.Equal(t, http.StatusOK, get(router, "Bearer "+tok).Code)
	assert.Equal(t, http.StatusOK, get(router, tok).Code)
}

func TestAuthMiddleware_ExpiredToken(t *testing.T) {
	issuer := jwt.NewJWTService("secret", -time.Second)
	verifier := jwt.NewJWTService("secret", time.Hour)
	router := newProtectedRouter(verifier)

	tok, err := issuer.GenerateToken("u1", "u1@x.com")
	require.NoError(t, err)

	w := get(router, "Bearer "+tok)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Token expired")
}
