package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "dashboard/internal/errors"
	"dashboard/internal/testutil"
)

// Unit Tests

func TestFindByEmail_Found(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{"id", "name", "email", "password"}).
		AddRow("usr-1", "User", "user@nextmail.com", "$2a$10$hash")
	mock.ExpectQuery(`SELECT id, name, email, password FROM users WHERE email = \?`).
		WithArgs("user@nextmail.com").
		WillReturnRows(rows)

	u, err := NewMySQLUserRepository(db).FindByEmail(context.Background(), "user@nextmail.com")

	require.NoError(t, err)
	assert.Equal(t, "usr-1", u.ID)
	assert.Equal(t, "$2a$10$hash", u.PasswordHash)
}

func TestFindByEmail_NoRowsIsNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, name, email, password FROM users`).WillReturnError(sql.ErrNoRows)

	_, err = NewMySQLUserRepository(db).FindByEmail(context.Background(), "nobody@nextmail.com")

	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok)
}

func TestFindByEmail_QueryError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	dbErr := errors.New("i/o timeout")
	mock.ExpectQuery(`SELECT id, name, email, password FROM users`).WillReturnError(dbErr)

	_, err = NewMySQLUserRepository(db).FindByEmail(context.Background(), "user@nextmail.com")

	assert.ErrorIs(t, err, dbErr)
	_, ok := apperrors.IsNotFoundError(err)
	assert.False(t, ok)
}

// Integration Tests

func TestUserRepository_FindByEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	_, err := db.Exec(`INSERT INTO users (id, name, email, password) VALUES ('usr-1', 'User', 'user@nextmail.com', 'hash')`)
	require.NoError(t, err)

	repo := NewMySQLUserRepository(db)

	u, err := repo.FindByEmail(context.Background(), "user@nextmail.com")
	require.NoError(t, err)
	assert.Equal(t, "User", u.Name)

	_, err = repo.FindByEmail(context.Background(), "other@nextmail.com")
	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok)
}
