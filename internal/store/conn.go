package store

import (
	"context"
	"log/slog"

	"github.com/phrazzld/quill-api/internal/platform/logger"
	"github.com/phrazzld/quill-api/internal/redact"
)

// ConnFn is a function that executes on a single acquired connection.
type ConnFn func(ctx context.Context, q DBTX) error

// RunWithConn acquires a dedicated connection from db, runs fn on it and
// releases the connection on every exit path, panics included.
//
// A failure to acquire the connection is returned as a *StoreError for the
// given entity and operation. Errors returned by fn are passed through
// unchanged so stores keep control over their error taxonomy.
func RunWithConn(ctx context.Context, db DB, entity, operation string, fn ConnFn) error {
	log := logger.FromContext(ctx)

	conn, err := db.Conn(ctx)
	if err != nil {
		log.Error("failed to acquire connection",
			slog.String("entity", entity),
			slog.String("operation", operation),
			redact.ErrorAttr(err))
		return NewStoreError(entity, operation, "failed to acquire connection", err)
	}

	defer func() {
		if closeErr := conn.Close(); closeErr != nil {
			log.Warn("failed to release connection",
				slog.String("entity", entity),
				slog.String("operation", operation),
				redact.ErrorAttr(closeErr))
		}
	}()

	if err := fn(ctx, conn); err != nil {
		return err
	}
	return nil
}
