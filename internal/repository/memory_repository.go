package repository

import (
	"sync"
	"time"

	"authly-be/internal/entities"

	"github.com/google/uuid"
)

// memoryUserRepository keeps users in a process-local map. It backs local
// development when no DATABASE_URL is configured and the service tests. It
// enforces the same email-uniqueness and single-use reset-token semantics as
// the Postgres repository.
type memoryUserRepository struct {
	mu    sync.RWMutex
	users map[string]*entities.User // keyed by email
}

// NewMemoryUserRepository creates an empty in-memory user repository
func NewMemoryUserRepository() UserRepository {
	return &memoryUserRepository{
		users: make(map[string]*entities.User),
	}
}

func copyUser(u *entities.User) *entities.User {
	clone := *u
	return &clone
}

func (r *memoryUserRepository) Create(user *entities.User) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[user.Email]; exists {
		return nil, ErrDuplicateEmail
	}

	now := time.Now()
	stored := copyUser(user)
	stored.ID = uuid.NewString()
	stored.CreatedAt = now
	stored.UpdatedAt = now
	r.users[stored.Email] = stored

	return copyUser(stored), nil
}

func (r *memoryUserRepository) FindByEmail(email string) (*entities.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, exists := r.users[email]
	if !exists {
		return nil, ErrNotFound
	}
	return copyUser(user), nil
}

func (r *memoryUserRepository) FindByID(id string) (*entities.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, user := range r.users {
		if user.ID == id {
			return copyUser(user), nil
		}
	}
	return nil, ErrNotFound
}

func (r *memoryUserRepository) SetResetToken(email, token string, expiry time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	user, exists := r.users[email]
	if !exists {
		return ErrNotFound
	}

	// Overwrites any previously issued token for this user.
	user.ResetToken = &token
	user.ResetTokenExpiry = &expiry
	user.UpdatedAt = time.Now()

	return nil
}

func (r *memoryUserRepository) ConsumeResetToken(resetToken, newPasswordHash string, now time.Time) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, user := range r.users {
		if user.ResetToken == nil || *user.ResetToken != resetToken {
			continue
		}
		if user.ResetTokenExpiry == nil || !user.ResetTokenExpiry.After(now) {
			return nil, ErrNotFound
		}

		user.PasswordHash = newPasswordHash
		user.ResetToken = nil
		user.ResetTokenExpiry = nil
		user.UpdatedAt = time.Now()

		return copyUser(user), nil
	}

	return nil, ErrNotFound
}

func (r *memoryUserRepository) ListAll() ([]*entities.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]*entities.User, 0, len(r.users))
	for _, user := range r.users {
		users = append(users, copyUser(user))
	}
	return users, nil
}
