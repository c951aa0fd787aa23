// Package backend opens the persistence backend selected by configuration
// and returns the user and post stores built on it.
package backend

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/quill-api/internal/config"
	"github.com/phrazzld/quill-api/internal/platform/memory"
	"github.com/phrazzld/quill-api/internal/platform/postgres"
	"github.com/phrazzld/quill-api/internal/platform/sqlite"
	"github.com/phrazzld/quill-api/internal/store"
)

// Backend bundles the stores of one persistence backend.
// DB is nil for the in-memory driver.
type Backend struct {
	Driver string
	DB     *sql.DB
	Users  store.UserStore
	Posts  store.PostStore
}

// Close releases the underlying connection pool, if any.
func (b *Backend) Close() error {
	if b == nil || b.DB == nil {
		return nil
	}
	return b.DB.Close()
}

// Open connects to the configured driver, applies pool settings and, when
// cfg.Migrate is set, runs the embedded migrations before returning.
func Open(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*Backend, error) {
	if logger == nil {
		logger = slog.Default()
	}

	switch cfg.Driver {
	case config.DriverMemory:
		logger.Info("using in-memory store")
		return &Backend{
			Driver: cfg.Driver,
			Users:  memory.NewUserStore(logger),
			Posts:  memory.NewPostStore(logger),
		}, nil

	case config.DriverPostgres:
		db, err := postgres.Open(ctx, cfg.URL)
		if err != nil {
			return nil, err
		}
		configurePool(db, cfg)
		if cfg.Migrate {
			if err := postgres.Migrate(ctx, db, logger); err != nil {
				_ = db.Close()
				return nil, err
			}
		}
		logger.Info("database connection established", "driver", cfg.Driver)
		return &Backend{
			Driver: cfg.Driver,
			DB:     db,
			Users:  postgres.NewPostgresUserStore(db, logger),
			Posts:  postgres.NewPostgresPostStore(db, logger),
		}, nil

	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.URL)
		if err != nil {
			return nil, err
		}
		configurePool(db, cfg)
		if cfg.Migrate {
			if err := sqlite.Migrate(ctx, db, logger); err != nil {
				_ = db.Close()
				return nil, err
			}
		}
		logger.Info("database connection established", "driver", cfg.Driver)
		return &Backend{
			Driver: cfg.Driver,
			DB:     db,
			Users:  sqlite.NewUserStore(db, logger),
			Posts:  sqlite.NewPostStore(db, logger),
		}, nil

	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

func configurePool(db *sql.DB, cfg config.DatabaseConfig) {
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
}
