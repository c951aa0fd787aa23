// Package sqlite provides SQLite implementations of the store interfaces,
// backed by the pure-Go modernc.org/sqlite driver. It suits local
// development and single-node deployments.
package sqlite
