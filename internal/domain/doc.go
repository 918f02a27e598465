// Package domain contains the memo entity, its invariants, the list query
// value objects, and the error taxonomy shared by every layer above it.
// It has no knowledge of HTTP, SQL, or any other delivery mechanism.
package domain
