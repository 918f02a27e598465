package validation_test

import (
	"net/url"
	"testing"

	"github.com/phrazzld/memos-api/internal/domain"
	"github.com/phrazzld/memos-api/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseListQuery_Defaults(t *testing.T) {
	t.Parallel()

	q, err := validation.ParseListQuery(url.Values{}, validation.DefaultListLimits())
	require.NoError(t, err)

	assert.Equal(t, domain.ListQuery{
		Limit:  10,
		Offset: 0,
		SortBy: domain.SortByCreatedAt,
		Order:  domain.OrderDesc,
	}, q)
}

func TestParseListQuery_AllParameters(t *testing.T) {
	t.Parallel()

	values := url.Values{
		"limit":     {"2"},
		"offset":    {"4"},
		"completed": {"false"},
		"sort_by":   {"due_at"},
		"order":     {"asc"},
		"unknown":   {"ignored"},
	}

	q, err := validation.ParseListQuery(values, validation.DefaultListLimits())
	require.NoError(t, err)

	assert.Equal(t, 2, q.Limit)
	assert.Equal(t, 4, q.Offset)
	require.NotNil(t, q.Completed)
	assert.False(t, *q.Completed)
	assert.Equal(t, domain.SortByDueAt, q.SortBy)
	assert.Equal(t, domain.OrderAsc, q.Order)
}

func TestParseListQuery_CustomLimits(t *testing.T) {
	t.Parallel()

	limits := validation.ListLimits{Default: 25, Max: 50}

	q, err := validation.ParseListQuery(url.Values{}, limits)
	require.NoError(t, err)
	assert.Equal(t, 25, q.Limit)

	q, err = validation.ParseListQuery(url.Values{"limit": {"50"}}, limits)
	require.NoError(t, err)
	assert.Equal(t, 50, q.Limit)

	_, err = validation.ParseListQuery(url.Values{"limit": {"51"}}, limits)
	assert.Equal(t, []string{"limit"}, fieldNames(t, err))
}

func TestParseListQuery_RejectsWithoutClamping(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"zero limit", "limit=0", []string{"limit"}},
		{"negative limit", "limit=-1", []string{"limit"}},
		{"limit above maximum", "limit=101", []string{"limit"}},
		{"non-numeric limit", "limit=ten", []string{"limit"}},
		{"empty limit", "limit=", []string{"limit"}},
		{"negative offset", "offset=-5", []string{"offset"}},
		{"fractional offset", "offset=1.5", []string{"offset"}},
		{"completed not boolean", "completed=yes", []string{"completed"}},
		{"completed numeric", "completed=1", []string{"completed"}},
		{"unknown sort field", "sort_by=priority", []string{"sort_by"}},
		{"sort field wrong case", "sort_by=DUE_AT", []string{"sort_by"}},
		{"unknown order", "order=up", []string{"order"}},
		{
			"every violation reported",
			"limit=1000&offset=-1&completed=maybe&sort_by=id&order=random",
			[]string{"limit", "offset", "completed", "sort_by", "order"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			values, err := url.ParseQuery(tc.query)
			require.NoError(t, err)

			_, err = validation.ParseListQuery(values, validation.DefaultListLimits())
			assert.ElementsMatch(t, tc.want, fieldNames(t, err))
		})
	}
}

func TestParseListQuery_AllSortFields(t *testing.T) {
	t.Parallel()

	for _, field := range []string{"created_at", "updated_at", "due_at", "title"} {
		q, err := validation.ParseListQuery(url.Values{"sort_by": {field}}, validation.DefaultListLimits())
		require.NoError(t, err, field)
		assert.Equal(t, domain.SortField(field), q.SortBy)
	}
}
