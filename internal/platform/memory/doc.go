// Package memory provides an in-process implementation of store.MemoStore.
// It backs the server when no database URL is configured and serves as
// the reference store in service and API tests.
package memory
