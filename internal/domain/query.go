package domain

// SortField is a column a memo list may be ordered by.
type SortField string

// Allowed sort fields
const (
	SortByCreatedAt SortField = "created_at"
	SortByUpdatedAt SortField = "updated_at"
	SortByDueAt     SortField = "due_at"
	SortByTitle     SortField = "title"
)

// SortOrder is the direction of a list ordering.
type SortOrder string

// Allowed sort orders
const (
	OrderAsc  SortOrder = "asc"
	OrderDesc SortOrder = "desc"
)

// Defaults applied when a list query omits a parameter.
const (
	DefaultListLimit = 10
	MaxListLimit     = 100
	DefaultSortField = SortByCreatedAt
	DefaultSortOrder = OrderDesc
)

// IsValid reports whether f is on the allow-list.
func (f SortField) IsValid() bool {
	switch f {
	case SortByCreatedAt, SortByUpdatedAt, SortByDueAt, SortByTitle:
		return true
	default:
		return false
	}
}

// IsValid reports whether o is asc or desc.
func (o SortOrder) IsValid() bool {
	return o == OrderAsc || o == OrderDesc
}

// ListQuery is a validated list request.
type ListQuery struct {
	Limit     int
	Offset    int
	Completed *bool
	SortBy    SortField
	Order     SortOrder
}

// DefaultListQuery returns the query used when no parameters are given.
func DefaultListQuery() ListQuery {
	return ListQuery{
		Limit:  DefaultListLimit,
		Offset: 0,
		SortBy: DefaultSortField,
		Order:  DefaultSortOrder,
	}
}

// Validate checks the query against the allowed domains. maxLimit is the
// upper bound for Limit.
func (q ListQuery) Validate(maxLimit int) error {
	verr := &ValidationError{}

	if q.Limit < 1 || q.Limit > maxLimit {
		verr.Add("limit", "must be between 1 and the maximum page size")
	}
	if q.Offset < 0 {
		verr.Add("offset", "must be non-negative")
	}
	if !q.SortBy.IsValid() {
		verr.Add("sort_by", "must be one of created_at, updated_at, due_at, title")
	}
	if !q.Order.IsValid() {
		verr.Add("order", "must be asc or desc")
	}

	return verr.OrNil()
}

// MemoPage is one page of a list result plus pagination metadata.
type MemoPage struct {
	Memos  []*Memo
	Total  int64
	Limit  int
	Offset int
}
