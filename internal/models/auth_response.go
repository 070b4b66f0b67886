package models

import "time"

// Profile is the sanitized view of a user returned by the API. It never
// carries the password hash or reset-token state.
type Profile struct {
	UserID    string    `json:"user_id"` // UUID
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	Phone     string    `json:"phone,omitempty"`
	Gender    *string   `json:"gender,omitempty"`
	Height    *string   `json:"height,omitempty"`
	Weight    *string   `json:"weight,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthResponse represents the response after successful authentication
type AuthResponse struct {
	Message string  `json:"message"`
	Token   string  `json:"token"` // JWT session token
	User    Profile `json:"user"`
}

// SignupResponse represents the response after account creation. The token
// logs the new user in without a second round trip.
type SignupResponse struct {
	Message string  `json:"message"`
	Token   string  `json:"token,omitempty"`
	User    Profile `json:"user"`
}
