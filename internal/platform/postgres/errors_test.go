package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/quill-api/internal/store"
)

func TestMapError(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		assert.NoError(t, MapError(nil, entityUser, "find"))
	})

	t.Run("no rows becomes the entity sentinel", func(t *testing.T) {
		assert.Same(t, store.ErrUserNotFound, MapError(sql.ErrNoRows, entityUser, "find"))
		assert.Same(t, store.ErrPostNotFound, MapError(sql.ErrNoRows, entityPost, "find"))
		assert.Same(t, store.ErrNotFound, MapError(sql.ErrNoRows, "widget", "find"))
	})

	tests := []struct {
		name        string
		err         error
		wantMessage string
	}{
		{
			name:        "unique violation on another constraint",
			err:         &pgconn.PgError{Code: uniqueViolationCode, ConstraintName: "users_pkey"},
			wantMessage: "unique constraint violation (users_pkey)",
		},
		{
			name:        "not null violation",
			err:         &pgconn.PgError{Code: notNullViolationCode, ColumnName: "nickname"},
			wantMessage: "not null violation (nickname)",
		},
		{
			name:        "other pg error",
			err:         &pgconn.PgError{Code: "42P01"},
			wantMessage: "database error (code 42P01)",
		},
		{
			name:        "cancelled",
			err:         fmt.Errorf("query: %w", context.Canceled),
			wantMessage: "operation cancelled",
		},
		{
			name:        "deadline",
			err:         context.DeadlineExceeded,
			wantMessage: "operation timed out",
		},
		{
			name:        "generic",
			err:         errors.New("connection reset by peer"),
			wantMessage: "query failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := MapError(tt.err, entityUser, "save")

			var storeErr *store.StoreError
			require.True(t, errors.As(err, &storeErr))
			assert.Equal(t, entityUser, storeErr.Entity)
			assert.Equal(t, "save", storeErr.Operation)
			assert.Equal(t, tt.wantMessage, storeErr.Message)
			assert.True(t, errors.Is(err, tt.err))
			assert.False(t, store.IsDuplicateError(err))
			assert.False(t, store.IsNotFoundError(err))
		})
	}
}

func TestIsConstraintViolation(t *testing.T) {
	nickname := &pgconn.PgError{Code: uniqueViolationCode, ConstraintName: NicknameConstraint}
	pkey := &pgconn.PgError{Code: uniqueViolationCode, ConstraintName: "users_pkey"}

	assert.True(t, IsConstraintViolation(nickname, NicknameConstraint))
	assert.True(t, IsConstraintViolation(fmt.Errorf("exec: %w", nickname), NicknameConstraint))
	assert.False(t, IsConstraintViolation(pkey, NicknameConstraint))
	assert.False(t, IsConstraintViolation(errors.New("23505"), NicknameConstraint))

	assert.True(t, IsUniqueViolation(pkey))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: notNullViolationCode}))
}

func TestMapUniqueViolation(t *testing.T) {
	conflict := &store.NicknameExistsError{Nickname: "elliot"}

	err := MapUniqueViolation(
		&pgconn.PgError{Code: uniqueViolationCode, ConstraintName: NicknameConstraint},
		entityUser, "save", NicknameConstraint, conflict)
	assert.Same(t, conflict, err)

	err = MapUniqueViolation(
		&pgconn.PgError{Code: uniqueViolationCode, ConstraintName: "users_pkey"},
		entityUser, "save", NicknameConstraint, conflict)
	assert.True(t, store.IsStoreError(err))
	assert.False(t, store.IsDuplicateError(err))
}
