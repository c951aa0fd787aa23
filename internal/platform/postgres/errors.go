package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/phrazzld/quill-api/internal/store"
)

// PostgreSQL error codes
const (
	// uniqueViolationCode is the PostgreSQL error code for unique constraint violations
	uniqueViolationCode = "23505"

	// notNullViolationCode is the PostgreSQL error code for not null violations
	notNullViolationCode = "23502"
)

// NicknameConstraint is the unique constraint on users.nickname.
const NicknameConstraint = "users_nickname_unique"

// backend labels spans and metrics.
const backend = "postgres"

// Entity names used in errors, logs and metric labels.
const (
	entityUser = "user"
	entityPost = "post"
)

// MapError maps a database error from the given entity operation into the
// store taxonomy. sql.ErrNoRows becomes the entity's not-found sentinel,
// returned verbatim. Everything else becomes a *store.StoreError that keeps
// the cause; unique violations are NOT mapped here because only the caller
// knows which constraint carries domain meaning.
func MapError(err error, entity, operation string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return notFoundFor(entity)
	}

	return store.NewStoreError(entity, operation, describe(err), err)
}

func notFoundFor(entity string) error {
	switch entity {
	case entityUser:
		return store.ErrUserNotFound
	case entityPost:
		return store.ErrPostNotFound
	default:
		return store.ErrNotFound
	}
}

func describe(err error) string {
	var pgErr *pgconn.PgError
	switch {
	case errors.Is(err, context.Canceled):
		return "operation cancelled"
	case errors.Is(err, context.DeadlineExceeded):
		return "operation timed out"
	case errors.As(err, &pgErr):
		switch pgErr.Code {
		case uniqueViolationCode:
			return fmt.Sprintf("unique constraint violation (%s)", pgErr.ConstraintName)
		case notNullViolationCode:
			return fmt.Sprintf("not null violation (%s)", pgErr.ColumnName)
		default:
			return fmt.Sprintf("database error (code %s)", pgErr.Code)
		}
	default:
		return "query failed"
	}
}

// IsUniqueViolation checks if the given error is a PostgreSQL unique constraint violation.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

// IsConstraintViolation reports whether err is a unique violation of the
// named constraint.
func IsConstraintViolation(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) &&
		pgErr.Code == uniqueViolationCode &&
		pgErr.ConstraintName == constraintName
}

// MapUniqueViolation returns specificError when err violates constraintName,
// and MapError's result otherwise.
func MapUniqueViolation(
	err error,
	entity string,
	operation string,
	constraintName string,
	specificError error,
) error {
	if IsConstraintViolation(err, constraintName) {
		return specificError
	}
	return MapError(err, entity, operation)
}
