package validation

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/phrazzld/memos-api/internal/domain"
)

// ListLimits bounds the page size of a list query.
type ListLimits struct {
	Default int
	Max     int
}

// DefaultListLimits returns the built-in page size bounds.
func DefaultListLimits() ListLimits {
	return ListLimits{Default: domain.DefaultListLimit, Max: domain.MaxListLimit}
}

// ParseListQuery validates list query parameters. Absent parameters take
// their defaults; present parameters outside their domain are rejected,
// never clamped. Unrecognized keys are ignored.
func ParseListQuery(values url.Values, limits ListLimits) (domain.ListQuery, error) {
	if limits.Max < 1 {
		limits = DefaultListLimits()
	}
	if limits.Default < 1 || limits.Default > limits.Max {
		limits.Default = limits.Max
	}

	q := domain.DefaultListQuery()
	q.Limit = limits.Default
	verr := &domain.ValidationError{}

	if raw, ok := lookup(values, "limit"); ok {
		n, err := strconv.Atoi(raw)
		switch {
		case err != nil:
			verr.Add("limit", "must be an integer")
		case n < 1 || n > limits.Max:
			verr.Add("limit", fmt.Sprintf("must be between 1 and %d", limits.Max))
		default:
			q.Limit = n
		}
	}

	if raw, ok := lookup(values, "offset"); ok {
		n, err := strconv.Atoi(raw)
		switch {
		case err != nil:
			verr.Add("offset", "must be an integer")
		case n < 0:
			verr.Add("offset", "must be non-negative")
		default:
			q.Offset = n
		}
	}

	if raw, ok := lookup(values, "completed"); ok {
		switch raw {
		case "true":
			v := true
			q.Completed = &v
		case "false":
			v := false
			q.Completed = &v
		default:
			verr.Add("completed", "must be true or false")
		}
	}

	if raw, ok := lookup(values, "sort_by"); ok {
		field := domain.SortField(raw)
		if field.IsValid() {
			q.SortBy = field
		} else {
			verr.Add("sort_by", "must be one of created_at, updated_at, due_at, title")
		}
	}

	if raw, ok := lookup(values, "order"); ok {
		order := domain.SortOrder(raw)
		if order.IsValid() {
			q.Order = order
		} else {
			verr.Add("order", "must be asc or desc")
		}
	}

	if err := verr.OrNil(); err != nil {
		return domain.ListQuery{}, err
	}
	return q, nil
}

// lookup returns the first value of key and whether the key was present.
func lookup(values url.Values, key string) (string, bool) {
	vs, ok := values[key]
	if !ok || len(vs) == 0 {
		return "", false
	}
	return vs[0], true
}
