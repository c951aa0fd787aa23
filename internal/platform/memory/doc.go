// Package memory provides map-backed implementations of the store
// interfaces. They are safe for concurrent use and keep the same error
// taxonomy as the SQL backends, which makes them suitable for tests and
// for running the server without a database.
package memory
