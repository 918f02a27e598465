package api

import (
	"net/http"

	"github.com/phrazzld/memos-api/internal/api/shared"
	"github.com/phrazzld/memos-api/internal/domain"
)

// StatusForKind maps an error kind to its HTTP status code.
func StatusForKind(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindValidation:
		return http.StatusBadRequest
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindStore:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a client-facing message for err that never
// includes store or driver details.
func GetSafeErrorMessage(err error) string {
	switch domain.KindOf(err) {
	case domain.KindValidation:
		return "request validation failed"
	case domain.KindNotFound:
		return "memo not found"
	case domain.KindStore:
		return "storage is temporarily unavailable"
	default:
		return "an unexpected error occurred"
	}
}

// NewErrorResponse builds the response body for err.
func NewErrorResponse(err error) shared.ErrorResponse {
	kind := domain.KindOf(err)
	if kind == 0 {
		kind = domain.KindInternal
	}

	return shared.ErrorResponse{
		Error:   kind.String(),
		Message: GetSafeErrorMessage(err),
		Status:  StatusForKind(kind),
		Fields:  domain.ValidationFields(err),
	}
}

// HandleAPIError writes the error response for err and logs the full,
// redacted error.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error) {
	shared.RespondWithErrorAndLog(w, r, NewErrorResponse(err), err)
}
