package api

import (
	"net/http"

	"github.com/phrazzld/memos-api/internal/api/shared"
)

// NotFound answers requests that match no route.
func NotFound(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithError(w, r, shared.ErrorResponse{
		Error:   "NotFound",
		Message: "route not found",
		Status:  http.StatusNotFound,
	})
}

// MethodNotAllowed answers requests whose path exists under another method.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithError(w, r, shared.ErrorResponse{
		Error:   "MethodNotAllowed",
		Message: "method not allowed",
		Status:  http.StatusMethodNotAllowed,
	})
}

// RateLimited answers requests rejected by the rate limiter.
func RateLimited(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithErrorAndLog(w, r, shared.ErrorResponse{
		Error:   "RateLimited",
		Message: "too many requests",
		Status:  http.StatusTooManyRequests,
	}, nil)
}
