// Package store defines the persistence contract for memos.
// Business rules depend only on these interfaces and error values, never on
// a specific database; implementations live under internal/platform.
package store
