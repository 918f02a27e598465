package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/memos-api/internal/domain"
	"github.com/phrazzld/memos-api/internal/platform/logger"
	"github.com/phrazzld/memos-api/internal/store"
)

// MemoService provides the memo operations exposed to callers.
// Every error it returns is nil or classifiable with domain.KindOf.
type MemoService interface {
	// List returns one page of memos and the filtered total.
	List(ctx context.Context, q domain.ListQuery) (*domain.MemoPage, error)

	// Get retrieves a memo by its ID.
	Get(ctx context.Context, id uuid.UUID) (*domain.Memo, error)

	// Create stores a new, incomplete memo.
	Create(ctx context.Context, in domain.MemoInput) (*domain.Memo, error)

	// Replace overwrites every mutable field of an existing memo.
	Replace(ctx context.Context, id uuid.UUID, in domain.MemoInput) (*domain.Memo, error)

	// Patch merges the fields present in p into an existing memo.
	Patch(ctx context.Context, id uuid.UUID, p domain.MemoPatch) (*domain.Memo, error)

	// Delete removes a memo.
	Delete(ctx context.Context, id uuid.UUID) error

	// ToggleComplete flips a memo's completion flag.
	ToggleComplete(ctx context.Context, id uuid.UUID) (*domain.Memo, error)
}

// Clock returns the current time.
type Clock func() time.Time

// Option configures a MemoService.
type Option func(*memoServiceImpl)

// WithClock replaces the wall clock used for timestamps.
func WithClock(clock Clock) Option {
	return func(s *memoServiceImpl) {
		if clock != nil {
			s.clock = clock
		}
	}
}

// WithMaxListLimit sets the largest page size List accepts.
func WithMaxListLimit(n int) Option {
	return func(s *memoServiceImpl) {
		if n > 0 {
			s.maxListLimit = n
		}
	}
}

// memoServiceImpl implements the MemoService interface
type memoServiceImpl struct {
	store        store.MemoStore
	logger       *slog.Logger
	clock        Clock
	maxListLimit int
}

// NewMemoService creates a new MemoService.
// It returns an error if the store is nil.
func NewMemoService(memoStore store.MemoStore, logger *slog.Logger, opts ...Option) (MemoService, error) {
	if memoStore == nil {
		return nil, ErrNilStore
	}

	if logger == nil {
		logger = slog.Default()
	}

	s := &memoServiceImpl{
		store:        memoStore,
		logger:       logger.With(slog.String("component", "memo_service")),
		clock:        time.Now,
		maxListLimit: domain.MaxListLimit,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// now reads the clock at storage precision.
func (s *memoServiceImpl) now() time.Time {
	return s.clock().UTC().Truncate(time.Microsecond)
}

// List implements MemoService.
func (s *memoServiceImpl) List(ctx context.Context, q domain.ListQuery) (*domain.MemoPage, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := q.Validate(s.maxListLimit); err != nil {
		return nil, err
	}

	memos, total, err := s.store.Query(ctx, buildQueryOptions(q))
	if err != nil {
		log.Error("failed to query memos",
			slog.String("error", err.Error()),
			slog.String("sort_by", string(q.SortBy)),
			slog.String("order", string(q.Order)))
		return nil, mapStoreError(opList, err)
	}

	page, err := buildPage(q, memos, total)
	if err != nil {
		log.Error("store returned an inconsistent page",
			slog.String("error", err.Error()),
			slog.Int("limit", q.Limit),
			slog.Int("offset", q.Offset))
		return nil, err
	}

	log.Debug("listed memos",
		slog.Int("count", len(page.Memos)),
		slog.Int64("total", page.Total))

	return page, nil
}

// Get implements MemoService.
func (s *memoServiceImpl) Get(ctx context.Context, id uuid.UUID) (*domain.Memo, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	memo, err := s.store.FindByID(ctx, id)
	if err != nil {
		s.logFailure(log, "failed to retrieve memo", id, err)
		return nil, mapStoreError(opGet, err)
	}

	return memo, nil
}

// Create implements MemoService.
func (s *memoServiceImpl) Create(ctx context.Context, in domain.MemoInput) (*domain.Memo, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := in.Validate(); err != nil {
		return nil, err
	}

	memo, err := createMemo(in, s.now())
	if err != nil {
		return nil, err
	}

	stored, err := s.store.Insert(ctx, memo)
	if err != nil {
		log.Error("failed to insert memo",
			slog.String("error", err.Error()),
			slog.String("memo_id", memo.ID.String()))
		return nil, mapStoreError(opCreate, err)
	}

	log.Info("memo created", slog.String("memo_id", stored.ID.String()))
	return stored, nil
}

// Replace implements MemoService.
func (s *memoServiceImpl) Replace(ctx context.Context, id uuid.UUID, in domain.MemoInput) (*domain.Memo, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	return s.update(ctx, opUpdate, id, func(m *domain.Memo) (*domain.Memo, error) {
		return applyReplace(m, in, s.now())
	})
}

// Patch implements MemoService.
func (s *memoServiceImpl) Patch(ctx context.Context, id uuid.UUID, p domain.MemoPatch) (*domain.Memo, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	return s.update(ctx, opPatch, id, func(m *domain.Memo) (*domain.Memo, error) {
		return applyPatch(m, p, s.now())
	})
}

// ToggleComplete implements MemoService.
func (s *memoServiceImpl) ToggleComplete(ctx context.Context, id uuid.UUID) (*domain.Memo, error) {
	return s.update(ctx, opToggle, id, func(m *domain.Memo) (*domain.Memo, error) {
		return applyToggle(m, s.now())
	})
}

// Delete implements MemoService.
func (s *memoServiceImpl) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	deleted, err := s.store.DeleteIfExists(ctx, id)
	if err != nil {
		s.logFailure(log, "failed to delete memo", id, err)
		return mapStoreError(opDelete, err)
	}
	if !deleted {
		log.Debug("memo to delete not found", slog.String("memo_id", id.String()))
		return domain.NotFoundError(opDelete)
	}

	log.Info("memo deleted", slog.String("memo_id", id.String()))
	return nil
}

// update runs fn as one atomic read-modify-write of memo id.
func (s *memoServiceImpl) update(
	ctx context.Context,
	op string,
	id uuid.UUID,
	fn store.MemoMutator,
) (*domain.Memo, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	memo, err := s.store.UpdateIfExists(ctx, id, fn)
	if err != nil {
		s.logFailure(log, "failed to update memo", id, err, slog.String("operation", op))
		return nil, mapStoreError(op, err)
	}

	log.Info("memo updated",
		slog.String("memo_id", id.String()),
		slog.String("operation", op))
	return memo, nil
}

// logFailure logs at a level matching the failure: expected outcomes such
// as a missing memo or rejected input are not errors.
func (s *memoServiceImpl) logFailure(log *slog.Logger, msg string, id uuid.UUID, err error, attrs ...any) {
	args := append([]any{
		slog.String("error", err.Error()),
		slog.String("memo_id", id.String()),
	}, attrs...)

	switch domain.KindOf(mapStoreError("", err)) {
	case domain.KindNotFound, domain.KindValidation:
		log.Debug(msg, args...)
	default:
		log.Error(msg, args...)
	}
}
