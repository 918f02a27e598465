package memory

import (
	"bytes"
	"cmp"
	"context"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/memos-api/internal/domain"
	"github.com/phrazzld/memos-api/internal/platform/logger"
	"github.com/phrazzld/memos-api/internal/store"
)

// MemoStore keeps memos in a map guarded by a read-write lock. Every memo
// crossing the boundary is copied, so callers never alias stored state.
type MemoStore struct {
	mu     sync.RWMutex
	memos  map[uuid.UUID]*domain.Memo
	logger *slog.Logger
}

// Compile-time check to ensure MemoStore implements store.MemoStore
var _ store.MemoStore = (*MemoStore)(nil)

// NewMemoStore creates an empty in-memory memo store.
// If logger is nil, a default logger will be used.
func NewMemoStore(logger *slog.Logger) *MemoStore {
	if logger == nil {
		logger = slog.Default()
	}

	return &MemoStore{
		memos:  make(map[uuid.UUID]*domain.Memo),
		logger: logger.With(slog.String("component", "memory_memo_store")),
	}
}

// Insert implements store.MemoStore.
func (s *MemoStore) Insert(ctx context.Context, memo *domain.Memo) (*domain.Memo, error) {
	if err := ctx.Err(); err != nil {
		return nil, store.NewStoreError("memo", "insert", "context done", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.memos[memo.ID]; exists {
		return nil, store.NewStoreError("memo", "insert", "id already in use", store.ErrDuplicate)
	}

	s.memos[memo.ID] = memo.Clone()

	logger.FromContextOrDefault(ctx, s.logger).Debug("memo inserted",
		slog.String("memo_id", memo.ID.String()))

	return memo.Clone(), nil
}

// FindByID implements store.MemoStore.
func (s *MemoStore) FindByID(ctx context.Context, id uuid.UUID) (*domain.Memo, error) {
	if err := ctx.Err(); err != nil {
		return nil, store.NewStoreError("memo", "find", "context done", err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	memo, ok := s.memos[id]
	if !ok {
		return nil, store.ErrMemoNotFound
	}

	return memo.Clone(), nil
}

// UpdateIfExists implements store.MemoStore. The write lock is held for the
// whole read-modify-write, so concurrent updates to the same memo serialize.
func (s *MemoStore) UpdateIfExists(
	ctx context.Context,
	id uuid.UUID,
	fn store.MemoMutator,
) (*domain.Memo, error) {
	if err := ctx.Err(); err != nil {
		return nil, store.NewStoreError("memo", "update", "context done", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.memos[id]
	if !ok {
		return nil, store.ErrMemoNotFound
	}

	next, err := fn(current.Clone())
	if err != nil {
		return nil, err
	}

	next = next.Clone()
	next.ID = id
	s.memos[id] = next

	logger.FromContextOrDefault(ctx, s.logger).Debug("memo updated",
		slog.String("memo_id", id.String()))

	return next.Clone(), nil
}

// DeleteIfExists implements store.MemoStore.
func (s *MemoStore) DeleteIfExists(ctx context.Context, id uuid.UUID) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, store.NewStoreError("memo", "delete", "context done", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.memos[id]; !ok {
		return false, nil
	}
	delete(s.memos, id)

	return true, nil
}

// Query implements store.MemoStore.
func (s *MemoStore) Query(ctx context.Context, opts store.QueryOptions) ([]*domain.Memo, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, store.NewStoreError("memo", "query", "context done", err)
	}

	s.mu.RLock()
	matched := make([]*domain.Memo, 0, len(s.memos))
	for _, m := range s.memos {
		if opts.Completed != nil && m.Completed != *opts.Completed {
			continue
		}
		matched = append(matched, m.Clone())
	}
	s.mu.RUnlock()

	total := int64(len(matched))

	slices.SortFunc(matched, compareBy(opts.SortBy, opts.Order))

	if opts.Offset >= len(matched) {
		return []*domain.Memo{}, total, nil
	}
	end := len(matched)
	if opts.Limit > 0 && opts.Offset+opts.Limit < end {
		end = opts.Offset + opts.Limit
	}

	return matched[opts.Offset:end], total, nil
}

// Ping implements store.MemoStore; the in-memory store is always reachable.
func (s *MemoStore) Ping(ctx context.Context) error {
	return ctx.Err()
}

// Len returns the number of stored memos.
func (s *MemoStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.memos)
}

// compareBy orders memos by field in the given direction, breaking ties by
// id ascending regardless of direction. Titles compare bytewise, matching
// the "C" collation used by the PostgreSQL store.
func compareBy(field domain.SortField, order domain.SortOrder) func(a, b *domain.Memo) int {
	return func(a, b *domain.Memo) int {
		var c int
		switch field {
		case domain.SortByUpdatedAt:
			c = a.UpdatedAt.Compare(b.UpdatedAt)
		case domain.SortByDueAt:
			c = a.DueAt.Compare(b.DueAt)
		case domain.SortByTitle:
			c = strings.Compare(a.Title, b.Title)
		default:
			c = a.CreatedAt.Compare(b.CreatedAt)
		}

		if order == domain.OrderDesc {
			c = -c
		}

		return cmp.Or(c, bytes.Compare(a.ID[:], b.ID[:]))
	}
}
