package controllers

import (
	"errors"
	"log"
	"net/http"

	"authly-be/internal/middleware"
	"authly-be/internal/models"
	"authly-be/internal/service"

	"github.com/gin-gonic/gin"
)

// resetAck is returned by ForgotPassword regardless of whether the account
// exists, so the endpoint cannot be used to probe for registered emails.
const resetAck = "If the email exists, a reset link has been sent"

type AuthController struct {
	authService service.AuthService
}

func NewAuthController(authService service.AuthService) *AuthController {
	return &AuthController{
		authService: authService,
	}
}

// handleServiceError translates the service error taxonomy to HTTP statuses:
// 400 for validation/weak-password/duplicate, 401 for credential and token
// failures, 404 for a stale-but-valid session, 500 for infrastructure.
func handleServiceError(c *gin.Context, err error) {
	var validationErr *service.ValidationError
	var weakErr *service.WeakPasswordError

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Message})
	case errors.As(err, &weakErr):
		c.JSON(http.StatusBadRequest, gin.H{
			"error":    "Password too weak",
			"feedback": weakErr.Feedback,
		})
	case errors.Is(err, service.ErrDuplicateAccount):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidOrExpiredToken),
		errors.Is(err, service.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrProfileNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		log.Printf("Internal error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// Signup handles POST /api/signup
func (ac *AuthController) Signup(c *gin.Context) {
	var req models.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	response, err := ac.authService.Signup(&req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, response)
}

// Login handles POST /api/login
func (ac *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	response, err := ac.authService.Login(&req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// ForgotPassword handles POST /api/forgot-password
func (ac *AuthController) ForgotPassword(c *gin.Context) {
	var req models.ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	if err := ac.authService.RequestPasswordReset(&req); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": resetAck})
}

// ResetPassword handles POST /api/reset-password
func (ac *AuthController) ResetPassword(c *gin.Context) {
	var req models.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request body",
			"details": err.Error(),
		})
		return
	}

	if err := ac.authService.CompletePasswordReset(&req); err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Password reset successfully! You can now login with your new password.",
	})
}

// Dashboard handles GET /api/dashboard
func (ac *AuthController) Dashboard(c *gin.Context) {
	profile, err := ac.authService.GetProfile(c.GetString(middleware.SessionTokenKey))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":    profile,
		"message": "Dashboard data retrieved successfully",
	})
}

// CheckAuth handles GET /api/check-auth
func (ac *AuthController) CheckAuth(c *gin.Context) {
	profile, err := ac.authService.GetProfile(c.GetString(middleware.SessionTokenKey))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"authenticated": true,
		"user":          profile,
	})
}

// CheckUsers handles GET /api/check-users. The route is only mounted when
// debug endpoints are explicitly enabled.
func (ac *AuthController) CheckUsers(c *gin.Context) {
	profiles, err := ac.authService.ListAccounts()
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users": profiles,
		"count": len(profiles),
	})
}
