package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/memos-api/internal/domain"
	"github.com/phrazzld/memos-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// MockMemoStore mocks the store.MemoStore interface
type MockMemoStore struct {
	mock.Mock
}

var _ store.MemoStore = (*MockMemoStore)(nil)

func (m *MockMemoStore) Insert(ctx context.Context, memo *domain.Memo) (*domain.Memo, error) {
	args := m.Called(ctx, memo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Memo), args.Error(1)
}

func (m *MockMemoStore) FindByID(ctx context.Context, id uuid.UUID) (*domain.Memo, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Memo), args.Error(1)
}

func (m *MockMemoStore) UpdateIfExists(
	ctx context.Context,
	id uuid.UUID,
	fn store.MemoMutator,
) (*domain.Memo, error) {
	args := m.Called(ctx, id, fn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Memo), args.Error(1)
}

func (m *MockMemoStore) DeleteIfExists(ctx context.Context, id uuid.UUID) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockMemoStore) Query(ctx context.Context, opts store.QueryOptions) ([]*domain.Memo, int64, error) {
	args := m.Called(ctx, opts)
	memos, _ := args.Get(0).([]*domain.Memo)
	return memos, args.Get(1).(int64), args.Error(2)
}

func (m *MockMemoStore) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// stepClock returns start, start+step, start+2*step, ... on successive calls.
type stepClock struct {
	mu   sync.Mutex
	next time.Time
	step time.Duration
}

func newStepClock(start time.Time, step time.Duration) *stepClock {
	return &stepClock{next: start, step: step}
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.next
	c.next = c.next.Add(c.step)
	return t
}
