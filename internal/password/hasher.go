package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Hasher performs one-way password hashing and verification. Implementations
// must never log or echo the plaintext password.
type Hasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, hash string) bool
}

type bcryptHasher struct {
	cost int
}

// NewBcryptHasher creates a bcrypt-backed hasher. Costs outside the valid
// bcrypt range fall back to the default cost.
func NewBcryptHasher(cost int) Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &bcryptHasher{cost: cost}
}

// Hash returns a salted bcrypt hash of the plaintext password.
func (h *bcryptHasher) Hash(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// Verify reports whether the plaintext password matches the stored hash.
func (h *bcryptHasher) Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
