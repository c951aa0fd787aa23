package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/graphql-go/graphql"
	"github.com/phrazzld/quill-api/internal/config"
	"github.com/phrazzld/quill-api/internal/container"
	"github.com/phrazzld/quill-api/internal/graph"
	"github.com/phrazzld/quill-api/internal/platform/backend"
	"github.com/phrazzld/quill-api/internal/platform/logger"
	"github.com/phrazzld/quill-api/internal/platform/metrics"
	"github.com/phrazzld/quill-api/internal/platform/otel"
	"github.com/phrazzld/quill-api/internal/redact"
)

const poolMetricsInterval = 15 * time.Second

// application holds the shared dependencies of the server so they can be
// released together on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	logCloser     io.Closer
	shutdownTrace func(context.Context) error
	stopPool      context.CancelFunc

	backend   *backend.Backend
	container *container.Container
	schema    graphql.Schema
}

// newApplication loads configuration and builds every component in
// dependency order. Anything acquired before a failure is released.
func newApplication(ctx context.Context, configPath string, migrateOnly bool) (app *application, err error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if migrateOnly {
		if cfg.Database.Driver == config.DriverMemory {
			return nil, fmt.Errorf("-migrate requires a sql database driver, got %q", cfg.Database.Driver)
		}
		cfg.Database.Migrate = true
	}

	log, closer, err := logger.Setup(logger.LoggerConfig{
		Level:      cfg.Server.LogLevel,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
		Compress:   cfg.Log.Compress,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	app = &application{
		config:        cfg,
		logger:        log,
		logCloser:     closer,
		shutdownTrace: func(context.Context) error { return nil },
		stopPool:      func() {},
	}
	defer func() {
		if err != nil {
			app.cleanup()
			app = nil
		}
	}()

	log.Info("server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"driver", cfg.Database.Driver,
		"tracing", cfg.Telemetry.OTLPEndpoint != "")

	app.shutdownTrace, err = otel.Setup(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.OTLPEndpoint)
	if err != nil {
		return app, fmt.Errorf("failed to set up tracing: %w", err)
	}

	app.backend, err = backend.Open(ctx, cfg.Database, log)
	if err != nil {
		return app, fmt.Errorf("failed to open database: %w", err)
	}
	if app.backend.DB != nil {
		poolCtx, stop := context.WithCancel(context.Background())
		app.stopPool = stop
		metrics.StartPoolMetrics(poolCtx, app.backend.DB, poolMetricsInterval)
	}

	app.container = container.Wire(app.backend.Users, app.backend.Posts, log)
	container.ProvideSingleton(app.container, graph.NewSchema)
	app.schema, err = container.Resolve[graphql.Schema](app.container)
	if err != nil {
		return app, fmt.Errorf("failed to build graphql schema: %w", err)
	}

	return app, nil
}

// cleanup releases resources in reverse order of acquisition.
func (app *application) cleanup() {
	app.stopPool()

	if err := app.backend.Close(); err != nil {
		app.logger.Error("failed to close database", redact.ErrorAttr(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := app.shutdownTrace(ctx); err != nil {
		app.logger.Error("failed to flush traces", redact.ErrorAttr(err))
	}

	if err := app.logCloser.Close(); err != nil {
		app.logger.Error("failed to close log file", redact.ErrorAttr(err))
	}
}
