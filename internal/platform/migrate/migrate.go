// Package migrate applies embedded goose migrations to a SQL backend.
package migrate

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"log/slog"
	"time"

	"github.com/pressly/goose/v3"

	"github.com/phrazzld/quill-api/internal/redact"
)

// slogGooseLogger adapts goose's Logger to slog.
type slogGooseLogger struct {
	log *slog.Logger
}

// Printf forwards goose progress messages at Info.
func (l *slogGooseLogger) Printf(format string, v ...any) {
	l.log.Info(fmt.Sprintf(format, v...))
}

// Fatalf logs at Error. It does NOT call os.Exit; failures come back as errors.
func (l *slogGooseLogger) Fatalf(format string, v ...any) {
	l.log.Error(fmt.Sprintf(format, v...))
}

// Up applies every pending migration found at the root of fsys.
func Up(ctx context.Context, dialect goose.Dialect, db *sql.DB, fsys fs.FS, log *slog.Logger) error {
	if log == nil {
		log = slog.Default()
	}
	log = log.With(slog.String("component", "migrations"), slog.String("dialect", string(dialect)))

	provider, err := goose.NewProvider(dialect, db, fsys,
		goose.WithLogger(&slogGooseLogger{log: log}),
	)
	if err != nil {
		return fmt.Errorf("failed to create migration provider: %w", err)
	}

	startTime := time.Now()
	results, err := provider.Up(ctx)
	if err != nil {
		log.Error("migration failed",
			redact.ErrorAttr(err),
			slog.Int("applied", len(results)))
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	for _, result := range results {
		log.Info("applied migration",
			slog.Int64("version", result.Source.Version),
			slog.String("path", result.Source.Path),
			slog.Int64("duration_ms", result.Duration.Milliseconds()))
	}

	log.Info("migrations up to date",
		slog.Int("applied", len(results)),
		slog.Int64("duration_ms", time.Since(startTime).Milliseconds()))
	return nil
}

// Version reports the current schema version recorded by goose.
func Version(ctx context.Context, dialect goose.Dialect, db *sql.DB, fsys fs.FS) (int64, error) {
	provider, err := goose.NewProvider(dialect, db, fsys)
	if err != nil {
		return 0, fmt.Errorf("failed to create migration provider: %w", err)
	}
	return provider.GetDBVersion(ctx)
}
