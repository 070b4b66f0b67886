package repository

import (
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userRows = []string{
	"id", "email", "username", "phone", "gender", "height", "weight",
	"password_hash", "reset_password_token", "reset_password_expires",
	"created_at", "updated_at",
}

func newMockRepo(t *testing.T) (UserRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewUserRepository(db), mock
}

func sampleRow() *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows(userRows).AddRow(
		"11111111-1111-1111-1111-111111111111", "a@x.com", "a", "+15551234567",
		nil, nil, nil, "$2a$10$hash", nil, nil, now, now,
	)
}

func TestPostgresRepository_Create(t *testing.T) {
	t.Parallel()

	repo, mock := newMockRepo(t)
	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs("a@x.com", "tester", "+15551234567", nil, nil, nil, "$2a$04$fakehash").
		WillReturnRows(sampleRow())

	created, err := repo.Create(newTestUser("a@x.com"))
	require.NoError(t, err)
	assert.Equal(t, "11111111-1111-1111-1111-111111111111", created.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_CreateDuplicate(t *testing.T) {
	t.Parallel()

	repo, mock := newMockRepo(t)
	mock.ExpectQuery(`INSERT INTO users`).
		WillReturnError(&pq.Error{Code: "23505", Constraint: "idx_users_email"})

	_, err := repo.Create(newTestUser("a@x.com"))
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestPostgresRepository_FindByEmailNotFound(t *testing.T) {
	t.Parallel()

	repo, mock := newMockRepo(t)
	mock.ExpectQuery(`SELECT .+ FROM users WHERE email`).
		WithArgs("nobody@x.com").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByEmail("nobody@x.com")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPostgresRepository_FindByEmail(t *testing.T) {
	t.Parallel()

	repo, mock := newMockRepo(t)
	mock.ExpectQuery(`SELECT .+ FROM users WHERE email`).
		WithArgs("a@x.com").
		WillReturnRows(sampleRow())

	user, err := repo.FindByEmail("a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", user.Email)
	assert.Nil(t, user.ResetToken)
}

func TestPostgresRepository_SetResetToken(t *testing.T) {
	t.Parallel()

	repo, mock := newMockRepo(t)
	expiry := time.Now().Add(time.Hour)
	mock.ExpectExec(`UPDATE users`).
		WithArgs("tok", expiry, "a@x.com").
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.SetResetToken("a@x.com", "tok", expiry))
}

func TestPostgresRepository_SetResetTokenUnknownUser(t *testing.T) {
	t.Parallel()

	repo, mock := newMockRepo(t)
	expiry := time.Now().Add(time.Hour)
	mock.ExpectExec(`UPDATE users`).
		WithArgs("tok", expiry, "nobody@x.com").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, repo.SetResetToken("nobody@x.com", "tok", expiry), ErrNotFound)
}

func TestPostgresRepository_ConsumeResetTokenMiss(t *testing.T) {
	t.Parallel()

	repo, mock := newMockRepo(t)
	mock.ExpectQuery(`UPDATE users`).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.ConsumeResetToken("tok", "newhash", time.Now())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPostgresRepository_ConsumeResetToken(t *testing.T) {
	t.Parallel()

	repo, mock := newMockRepo(t)
	now := time.Now()
	mock.ExpectQuery(`UPDATE users`).
		WithArgs("newhash", "tok", now).
		WillReturnRows(sampleRow())

	user, err := repo.ConsumeResetToken("tok", "newhash", now)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", user.Email)
}
