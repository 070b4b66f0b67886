package service

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCredentials covers both an unknown email and a wrong
	// password. Callers must never learn which one it was.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrDuplicateAccount is returned when the signup email is taken.
	ErrDuplicateAccount = errors.New("user already exists with this email")
	// ErrInvalidOrExpiredToken covers unknown, superseded, and expired reset
	// tokens alike.
	ErrInvalidOrExpiredToken = errors.New("invalid or expired reset token")
	// ErrUnauthenticated is returned for a missing, malformed, or expired
	// session token.
	ErrUnauthenticated = errors.New("invalid or expired token")
	// ErrProfileNotFound is returned when a valid session token references an
	// account that no longer exists.
	ErrProfileNotFound = errors.New("user not found")
)

// ValidationError reports missing or malformed user input. The message is
// safe to surface verbatim.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func validationErrorf(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// WeakPasswordError carries the failed policy checks so the client can show
// actionable feedback.
type WeakPasswordError struct {
	Feedback []string
}

func (e *WeakPasswordError) Error() string { return "password too weak" }
