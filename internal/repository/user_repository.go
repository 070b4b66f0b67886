package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"authly-be/internal/entities"

	"github.com/lib/pq"
)

var (
	// ErrNotFound is returned when no user matches the lookup.
	ErrNotFound = errors.New("user not found")
	// ErrDuplicateEmail is returned when an insert collides with the unique
	// email index. The index, not the service-level check, is what makes
	// concurrent duplicate signups safe.
	ErrDuplicateEmail = errors.New("user with this email already exists")
)

// UserRepository defines the interface for user database operations
type UserRepository interface {
	Create(user *entities.User) (*entities.User, error)
	FindByEmail(email string) (*entities.User, error)
	FindByID(id string) (*entities.User, error)
	// SetResetToken stores a reset token and its expiry on the user,
	// overwriting any previously active token.
	SetResetToken(email, token string, expiry time.Time) error
	// ConsumeResetToken atomically sets the new password hash and clears the
	// reset token for the user holding a matching, unexpired token. Returns
	// ErrNotFound if the token is unknown, superseded, or expired.
	ConsumeResetToken(resetToken, newPasswordHash string, now time.Time) (*entities.User, error)
	ListAll() ([]*entities.User, error)
}

const userColumns = `id, email, username, phone, gender, height, weight, password_hash, reset_password_token, reset_password_expires, created_at, updated_at`

type userRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new Postgres-backed user repository
func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

func scanUser(row *sql.Row) (*entities.User, error) {
	var user entities.User
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Username,
		&user.Phone,
		&user.Gender,
		&user.Height,
		&user.Weight,
		&user.PasswordHash,
		&user.ResetToken,
		&user.ResetTokenExpiry,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Create inserts a new user into the database
func (r *userRepository) Create(user *entities.User) (*entities.User, error) {
	query := `
		INSERT INTO users (email, username, phone, gender, height, weight, password_hash)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + userColumns

	created, err := scanUser(r.db.QueryRow(query,
		user.Email,
		user.Username,
		user.Phone,
		user.Gender,
		user.Height,
		user.Weight,
		user.PasswordHash,
	))

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return nil, ErrDuplicateEmail
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return created, nil
}

// FindByEmail finds a user by email
func (r *userRepository) FindByEmail(email string) (*entities.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	user, err := scanUser(r.db.QueryRow(query, email))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}

// FindByID finds a user by ID (UUID)
func (r *userRepository) FindByID(id string) (*entities.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`

	user, err := scanUser(r.db.QueryRow(query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}

// SetResetToken stores a reset token on the user record
func (r *userRepository) SetResetToken(email, token string, expiry time.Time) error {
	query := `
		UPDATE users
		SET reset_password_token = $1, reset_password_expires = $2, updated_at = NOW()
		WHERE email = $3
	`

	result, err := r.db.Exec(query, token, expiry, email)
	if err != nil {
		return fmt.Errorf("failed to set reset token: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to set reset token: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

// ConsumeResetToken updates the password and clears the token in one statement
// so that a token can never be used twice.
func (r *userRepository) ConsumeResetToken(resetToken, newPasswordHash string, now time.Time) (*entities.User, error) {
	query := `
		UPDATE users
		SET password_hash = $1, reset_password_token = NULL, reset_password_expires = NULL, updated_at = NOW()
		WHERE reset_password_token = $2 AND reset_password_expires > $3
		RETURNING ` + userColumns

	user, err := scanUser(r.db.QueryRow(query, newPasswordHash, resetToken, now))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to consume reset token: %w", err)
	}

	return user, nil
}

// ListAll returns every user record
func (r *userRepository) ListAll() ([]*entities.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []*entities.User
	for rows.Next() {
		var user entities.User
		err := rows.Scan(
			&user.ID,
			&user.Email,
			&user.Username,
			&user.Phone,
			&user.Gender,
			&user.Height,
			&user.Weight,
			&user.PasswordHash,
			&user.ResetToken,
			&user.ResetTokenExpiry,
			&user.CreatedAt,
			&user.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, &user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return users, nil
}
