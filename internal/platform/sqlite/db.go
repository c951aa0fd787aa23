package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/pressly/goose/v3"
	// Registers the "sqlite" database/sql driver.
	_ "modernc.org/sqlite"

	"github.com/phrazzld/quill-api/internal/platform/migrate"
)

// DriverName is the database/sql driver registered by modernc.org/sqlite.
const DriverName = "sqlite"

const pragmas = "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)"

//go:embed migrations/*.sql
var embeddedMigrations embed.FS

// Open opens the database file at path and verifies it with a ping.
//
// path must be a plain file path. In-memory databases are rejected because
// stores take a fresh connection per call and each would see its own empty
// database. Query parameters are rejected because Open appends its own.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	if err := checkPath(path); err != nil {
		return nil, err
	}

	db, err := sql.Open(DriverName, filepath.Clean(path)+pragmas)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	return db, nil
}

// Migrations returns the embedded migration files rooted at the directory.
func Migrations() fs.FS {
	sub, err := fs.Sub(embeddedMigrations, "migrations")
	if err != nil {
		panic(err)
	}
	return sub
}

// Migrate applies all pending schema migrations.
func Migrate(ctx context.Context, db *sql.DB, log *slog.Logger) error {
	return migrate.Up(ctx, goose.DialectSQLite3, db, Migrations(), log)
}

func checkPath(path string) error {
	switch {
	case strings.TrimSpace(path) == "":
		return fmt.Errorf("storage path is required")
	case path == ":memory:" || strings.HasPrefix(path, "file:") || strings.Contains(path, "mode=memory"):
		return fmt.Errorf("storage path %q: in-memory and URI databases are not supported, use a file path", path)
	case strings.Contains(path, "?"):
		return fmt.Errorf("storage path %q: query parameters are not supported", path)
	}
	return nil
}
