package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/memos-api/internal/domain"
)

// MemoMutator transforms the current state of a memo into its next state.
// It runs inside the store's atomic read-modify-write; returning an error
// aborts the update and leaves the stored record unchanged.
type MemoMutator func(current *domain.Memo) (*domain.Memo, error)

// QueryOptions is a validated list request as seen by a store.
type QueryOptions struct {
	// Completed filters by completion state when non-nil.
	Completed *bool
	SortBy    domain.SortField
	Order     domain.SortOrder
	Limit     int
	Offset    int
}

// MemoStore defines the interface for memo data persistence.
// Implementations never share memory with callers: memos passed in and
// returned are copies.
type MemoStore interface {
	// Insert saves a new memo and returns the stored record.
	Insert(ctx context.Context, memo *domain.Memo) (*domain.Memo, error)

	// FindByID retrieves a memo by its unique ID.
	// Returns ErrMemoNotFound if the memo does not exist.
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Memo, error)

	// UpdateIfExists atomically loads the memo, applies fn and writes the
	// result. Returns ErrMemoNotFound if the memo does not exist. An error
	// from fn is returned unchanged and nothing is written.
	UpdateIfExists(ctx context.Context, id uuid.UUID, fn MemoMutator) (*domain.Memo, error)

	// DeleteIfExists removes the memo and reports whether it existed.
	DeleteIfExists(ctx context.Context, id uuid.UUID) (bool, error)

	// Query returns one page of memos matching opts, ordered by
	// opts.SortBy/opts.Order with ties broken by id ascending, and the
	// number of memos matching the filter before paging.
	Query(ctx context.Context, opts QueryOptions) ([]*domain.Memo, int64, error)

	// Ping reports whether the store is reachable.
	Ping(ctx context.Context) error
}
