package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/memos-api/internal/api/shared"
	"github.com/phrazzld/memos-api/internal/platform/logger"
	"github.com/phrazzld/memos-api/internal/service"
	"github.com/phrazzld/memos-api/internal/validation"
)

// MemoHandler handles memo-related HTTP requests
type MemoHandler struct {
	memoService service.MemoService
	limits      validation.ListLimits
	logger      *slog.Logger
}

// NewMemoHandler creates a new MemoHandler. Zero limits select the
// defaults. If logger is nil, a default logger will be used.
func NewMemoHandler(memoService service.MemoService, limits validation.ListLimits, logger *slog.Logger) *MemoHandler {
	if limits.Max < 1 {
		limits = validation.DefaultListLimits()
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &MemoHandler{
		memoService: memoService,
		limits:      limits,
		logger:      logger.With(slog.String("component", "memo_handler")),
	}
}

// Routes registers the memo endpoints on r.
func (h *MemoHandler) Routes(r chi.Router) {
	r.Get("/", h.ListMemos)
	r.Post("/", h.CreateMemo)
	r.Route("/{id}", func(r chi.Router) {
		r.Get("/", h.GetMemo)
		r.Put("/", h.ReplaceMemo)
		r.Patch("/", h.PatchMemo)
		r.Delete("/", h.DeleteMemo)
		r.Patch("/complete", h.ToggleComplete)
	})
}

// ListMemos handles GET /api/v1/memos requests
func (h *MemoHandler) ListMemos(w http.ResponseWriter, r *http.Request) {
	q, err := validation.ParseListQuery(r.URL.Query(), h.limits)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	page, err := h.memoService.List(r.Context(), q)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, pageToResponse(page))
}

// GetMemo handles GET /api/v1/memos/{id} requests
func (h *MemoHandler) GetMemo(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	memo, err := h.memoService.Get(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, memoToResponse(memo))
}

// CreateMemo handles POST /api/v1/memos requests
func (h *MemoHandler) CreateMemo(w http.ResponseWriter, r *http.Request) {
	var req validation.CreateMemoRequest
	fieldErrs, err := decodeBody(r, &req)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	input, err := validation.ValidateCreate(req)
	if err := withFieldErrors(fieldErrs, err); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	memo, err := h.memoService.Create(r.Context(), input)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	logger.FromContextOrDefault(r.Context(), h.logger).Debug("memo created via API",
		slog.String("memo_id", memo.ID.String()))

	w.Header().Set("Location", "/api/v1/memos/"+memo.ID.String())
	shared.RespondWithJSON(w, r, http.StatusCreated, memoToResponse(memo))
}

// ReplaceMemo handles PUT /api/v1/memos/{id} requests
func (h *MemoHandler) ReplaceMemo(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	var req validation.ReplaceMemoRequest
	fieldErrs, err := decodeBody(r, &req)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	input, err := validation.ValidateReplace(req)
	if err := withFieldErrors(fieldErrs, err); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	memo, err := h.memoService.Replace(r.Context(), id, input)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, memoToResponse(memo))
}

// PatchMemo handles PATCH /api/v1/memos/{id} requests
func (h *MemoHandler) PatchMemo(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	var req validation.PatchMemoRequest
	fieldErrs, err := decodeBody(r, &req)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	patch, err := validation.ValidatePatch(req)
	if err := withFieldErrors(fieldErrs, err); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	memo, err := h.memoService.Patch(r.Context(), id, patch)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, memoToResponse(memo))
}

// DeleteMemo handles DELETE /api/v1/memos/{id} requests
func (h *MemoHandler) DeleteMemo(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	if err := h.memoService.Delete(r.Context(), id); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ToggleComplete handles PATCH /api/v1/memos/{id}/complete requests
func (h *MemoHandler) ToggleComplete(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	memo, err := h.memoService.ToggleComplete(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, memoToResponse(memo))
}
