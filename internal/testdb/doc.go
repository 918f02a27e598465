// Package testdb provides helpers for integration tests that need a real
// PostgreSQL database. Tests call GetTestDBWithT, which skips when no
// database URL is configured and otherwise returns a connection with the
// embedded migrations applied.
package testdb
