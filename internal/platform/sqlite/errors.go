package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"github.com/phrazzld/quill-api/internal/store"
)

const backend = "sqlite"

const (
	entityUser = "user"
	entityPost = "post"
)

// nicknameColumn is how SQLite names the unique nickname column in
// constraint failure messages.
const nicknameColumn = "users.nickname"

func isUniqueViolation(err error) bool {
	var sqliteErr *msqlite.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	code := sqliteErr.Code()
	return code == sqlite3lib.SQLITE_CONSTRAINT || code == sqlite3lib.SQLITE_CONSTRAINT_UNIQUE
}

func isNicknameConflict(err error) bool {
	return isUniqueViolation(err) && strings.Contains(err.Error(), nicknameColumn)
}

// mapError maps a driver error into the store taxonomy. See
// postgres.MapError for the same rules.
func mapError(err error, entity, operation string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		switch entity {
		case entityUser:
			return store.ErrUserNotFound
		case entityPost:
			return store.ErrPostNotFound
		default:
			return store.ErrNotFound
		}
	}

	return store.NewStoreError(entity, operation, describe(err), err)
}

func describe(err error) string {
	var sqliteErr *msqlite.Error
	switch {
	case errors.Is(err, context.Canceled):
		return "operation cancelled"
	case errors.Is(err, context.DeadlineExceeded):
		return "operation timed out"
	case errors.As(err, &sqliteErr):
		return fmt.Sprintf("sqlite error (code %d)", sqliteErr.Code())
	default:
		return "query failed"
	}
}
