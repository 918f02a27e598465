// Package postgres provides the PostgreSQL implementation of store.MemoStore.
// It handles query execution, row locking for read-modify-write updates,
// and mapping between memo entities and database records. The schema is
// managed by the goose migrations embedded in the migrations subpackage.
package postgres
