package models

// SignupRequest represents the request body for account creation.
// Username and phone look optional here, but the service enforces the
// configured required-field set on top of the binding tags.
type SignupRequest struct {
	Email    string  `json:"email" binding:"required,email"`
	Password string  `json:"password" binding:"required"`
	Username string  `json:"username"`
	Phone    string  `json:"phone"`
	Gender   *string `json:"gender,omitempty"`
	Height   *string `json:"height,omitempty"`
	Weight   *string `json:"weight,omitempty"`
}

// LoginRequest represents the request body for user login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ForgotPasswordRequest starts the password-reset flow. Phone, when supplied,
// must match the stored number before a token is issued.
type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
	Phone string `json:"phone,omitempty"`
}

// ResetPasswordRequest completes the password-reset flow
type ResetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required"`
}
