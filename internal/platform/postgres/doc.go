// Package postgres provides the PostgreSQL implementations of the store
// interfaces defined in internal/store, using pgx through database/sql.
// Every operation acquires its own connection from the pool, maps driver
// errors into the store error taxonomy and records a span and metrics.
//
// Schema changes ship as embedded goose migrations applied by Migrate.
package postgres
