package entities

import "time"

// User represents a user account in the database
type User struct {
	ID           string  `json:"id"` // UUID
	Email        string  `json:"email"`
	Username     string  `json:"username"`
	Phone        string  `json:"phone,omitempty"`
	Gender       *string `json:"gender,omitempty"`
	Height       *string `json:"height,omitempty"`
	Weight       *string `json:"weight,omitempty"`
	PasswordHash string  `json:"-"` // Don't expose password hash in JSON

	// At most one active reset token per user. Both fields are nil until a
	// reset is requested and cleared again when the token is consumed.
	ResetToken       *string    `json:"-"`
	ResetTokenExpiry *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
