// Package main implements the entry point for the Quill API server, which
// exposes users and posts over GraphQL.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file (default: ./config.yaml if present)")
	migrateOnly := flag.Bool("migrate", false, "apply database migrations and exit")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *configPath, *migrateOnly); err != nil {
		log.Printf("quill-api: %v", err)
		os.Exit(1)
	}
}

// run wires the application and serves until ctx is cancelled. With
// migrateOnly it applies migrations and returns without serving.
func run(ctx context.Context, configPath string, migrateOnly bool) error {
	app, err := newApplication(ctx, configPath, migrateOnly)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	defer app.cleanup()

	if migrateOnly {
		app.logger.Info("migrations applied", "driver", app.backend.Driver)
		return nil
	}

	return app.serve(ctx)
}
