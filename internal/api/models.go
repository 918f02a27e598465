package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/memos-api/internal/domain"
)

// MemoResponse is the wire representation of a memo. Description is null
// when absent and "" when empty.
type MemoResponse struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	DueAt       time.Time `json:"due_at"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ListResponse is one page of memos with pagination metadata.
type ListResponse struct {
	Data   []MemoResponse `json:"data"`
	Total  int64          `json:"total"`
	Limit  int            `json:"limit"`
	Offset int            `json:"offset"`
}

// HealthResponse is returned by the health and readiness endpoints.
type HealthResponse struct {
	Status string `json:"status"`
}

// memoToResponse converts a domain.Memo to a MemoResponse
func memoToResponse(memo *domain.Memo) MemoResponse {
	return MemoResponse{
		ID:          memo.ID,
		Title:       memo.Title,
		Description: domain.CloneString(memo.Description),
		DueAt:       memo.DueAt,
		Completed:   memo.Completed,
		CreatedAt:   memo.CreatedAt,
		UpdatedAt:   memo.UpdatedAt,
	}
}

// pageToResponse converts a domain.MemoPage to a ListResponse. Data is
// never null.
func pageToResponse(page *domain.MemoPage) ListResponse {
	data := make([]MemoResponse, 0, len(page.Memos))
	for _, memo := range page.Memos {
		data = append(data, memoToResponse(memo))
	}

	return ListResponse{
		Data:   data,
		Total:  page.Total,
		Limit:  page.Limit,
		Offset: page.Offset,
	}
}
