package api

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/memos-api/internal/domain"
	"github.com/phrazzld/memos-api/internal/service"
	"github.com/stretchr/testify/mock"
)

// MockMemoService mocks the service.MemoService interface
type MockMemoService struct {
	mock.Mock
}

var _ service.MemoService = (*MockMemoService)(nil)

func (m *MockMemoService) List(ctx context.Context, q domain.ListQuery) (*domain.MemoPage, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.MemoPage), args.Error(1)
}

func (m *MockMemoService) Get(ctx context.Context, id uuid.UUID) (*domain.Memo, error) {
	return m.memoResult(m.Called(ctx, id))
}

func (m *MockMemoService) Create(ctx context.Context, in domain.MemoInput) (*domain.Memo, error) {
	return m.memoResult(m.Called(ctx, in))
}

func (m *MockMemoService) Replace(ctx context.Context, id uuid.UUID, in domain.MemoInput) (*domain.Memo, error) {
	return m.memoResult(m.Called(ctx, id, in))
}

func (m *MockMemoService) Patch(ctx context.Context, id uuid.UUID, p domain.MemoPatch) (*domain.Memo, error) {
	return m.memoResult(m.Called(ctx, id, p))
}

func (m *MockMemoService) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockMemoService) ToggleComplete(ctx context.Context, id uuid.UUID) (*domain.Memo, error) {
	return m.memoResult(m.Called(ctx, id))
}

func (m *MockMemoService) memoResult(args mock.Arguments) (*domain.Memo, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Memo), args.Error(1)
}

// stubPinger is a Pinger returning a fixed error.
type stubPinger struct {
	err error
}

func (p stubPinger) Ping(context.Context) error { return p.err }
