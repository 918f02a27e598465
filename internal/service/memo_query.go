package service

import (
	"github.com/phrazzld/memos-api/internal/domain"
	"github.com/phrazzld/memos-api/internal/store"
)

// buildQueryOptions converts a validated list query into the store's
// query shape.
func buildQueryOptions(q domain.ListQuery) store.QueryOptions {
	opts := store.QueryOptions{
		SortBy: q.SortBy,
		Order:  q.Order,
		Limit:  q.Limit,
		Offset: q.Offset,
	}
	if q.Completed != nil {
		completed := *q.Completed
		opts.Completed = &completed
	}
	return opts
}

// buildPage assembles the result of a list query. It rejects store output
// that contradicts the request, which would indicate a broken store.
func buildPage(q domain.ListQuery, memos []*domain.Memo, total int64) (*domain.MemoPage, error) {
	if len(memos) > q.Limit {
		return nil, domain.InternalError(opList, "store returned more memos than requested", nil)
	}
	if total < int64(q.Offset+len(memos)) {
		return nil, domain.InternalError(opList, "store total is smaller than the returned page", nil)
	}

	for _, m := range memos {
		if q.Completed != nil && m.Completed != *q.Completed {
			return nil, domain.InternalError(opList, "store ignored the completed filter", nil)
		}
	}

	if memos == nil {
		memos = []*domain.Memo{}
	}

	return &domain.MemoPage{
		Memos:  memos,
		Total:  total,
		Limit:  q.Limit,
		Offset: q.Offset,
	}, nil
}
