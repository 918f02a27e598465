package validation

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/memos-api/internal/domain"
)

// validate is the shared validator instance; it caches struct metadata
// and is safe for concurrent use.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// Report violations under their JSON names.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	return v
}

// CreateMemoRequest is the wire payload of a create.
type CreateMemoRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	DueAt       string  `json:"due_at"`
}

// ReplaceMemoRequest is the wire payload of a full replace. An omitted
// completed flag means false.
type ReplaceMemoRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	DueAt       string  `json:"due_at"`
	Completed   *bool   `json:"completed"`
}

// PatchMemoRequest is the wire payload of a partial update. Each field
// records whether its key was absent, null, or carried a value.
type PatchMemoRequest struct {
	Title       domain.Field[string] `json:"title"`
	Description domain.Field[string] `json:"description"`
	DueAt       domain.Field[string] `json:"due_at"`
	Completed   domain.Field[bool]   `json:"completed"`
}

// memoForm is the normalized shape checked by struct tags. Its tags are
// the only statement of the field rules; patches are checked through it
// too. validator counts string length in characters, not bytes.
type memoForm struct {
	Title       string  `json:"title"       validate:"required,max=200"`
	Description *string `json:"description" validate:"omitnil,max=1000"`
	DueAt       string  `json:"due_at"      validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
}

// ValidateCreate normalizes a create payload.
func ValidateCreate(req CreateMemoRequest) (domain.MemoInput, error) {
	return validateForm(req.Title, req.Description, req.DueAt, false)
}

// ValidateReplace normalizes a full replace payload.
func ValidateReplace(req ReplaceMemoRequest) (domain.MemoInput, error) {
	completed := req.Completed != nil && *req.Completed
	return validateForm(req.Title, req.Description, req.DueAt, completed)
}

func validateForm(title string, description *string, dueAt string, completed bool) (domain.MemoInput, error) {
	form := memoForm{
		Title:       strings.TrimSpace(title),
		Description: description,
		DueAt:       strings.TrimSpace(dueAt),
	}

	verr := &domain.ValidationError{}
	checkForm(verr, form)
	if verr.HasErrors() {
		return domain.MemoInput{}, verr
	}

	form.Description = sanitizeOptional(form.Description)
	checkForm(verr, form, "description")
	if verr.HasErrors() {
		return domain.MemoInput{}, verr
	}

	due, err := parseDueAt(form.DueAt)
	if err != nil {
		return domain.MemoInput{}, domain.NewValidationError("due_at", reasonFor("datetime", ""))
	}

	return domain.MemoInput{
		Title:       form.Title,
		Description: form.Description,
		DueAt:       due,
		Completed:   completed,
	}, nil
}

// ValidatePatch normalizes a partial update. Only fields present in the
// payload are checked. Title, due_at and completed cannot be cleared;
// an explicit null description clears it.
func ValidatePatch(req PatchMemoRequest) (domain.MemoPatch, error) {
	verr := &domain.ValidationError{}
	var (
		form    memoForm
		present []string
	)

	switch {
	case req.Title.IsNull():
		verr.Add("title", "cannot be null")
	case req.Title.IsSet():
		raw, _ := req.Title.Value()
		form.Title = strings.TrimSpace(raw)
		present = append(present, "title")
	}

	if raw, ok := req.Description.Value(); ok {
		form.Description = &raw
		present = append(present, "description")
	}

	switch {
	case req.DueAt.IsNull():
		verr.Add("due_at", "cannot be null")
	case req.DueAt.IsSet():
		raw, _ := req.DueAt.Value()
		form.DueAt = strings.TrimSpace(raw)
		present = append(present, "due_at")
	}

	if req.Completed.IsNull() {
		verr.Add("completed", "cannot be null")
	}

	if len(present) > 0 {
		checkForm(verr, form, present...)
	}
	if form.Description != nil && !verr.HasErrors() {
		form.Description = sanitizeOptional(form.Description)
		checkForm(verr, form, "description")
	}
	if err := verr.OrNil(); err != nil {
		return domain.MemoPatch{}, err
	}

	var patch domain.MemoPatch
	if req.Title.IsSet() {
		patch.Title = domain.Set(form.Title)
	}
	if req.Description.IsNull() {
		patch.Description = domain.Null[string]()
	} else if form.Description != nil {
		patch.Description = domain.Set(*form.Description)
	}
	if req.DueAt.IsSet() {
		due, err := parseDueAt(form.DueAt)
		if err != nil {
			return domain.MemoPatch{}, domain.NewValidationError("due_at", reasonFor("datetime", ""))
		}
		patch.DueAt = domain.Set(due)
	}
	if completed, ok := req.Completed.Value(); ok {
		patch.Completed = domain.Set(completed)
	}

	return patch, nil
}

// checkForm validates form against its struct tags and records the
// violations of the named fields, or of every field when none are named.
func checkForm(verr *domain.ValidationError, form memoForm, fields ...string) {
	err := validate.Struct(form)
	if err == nil {
		return
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		verr.Add("body", "is invalid")
		return
	}

	for _, fe := range fieldErrs {
		if len(fields) > 0 && !slices.Contains(fields, fe.Field()) {
			continue
		}
		verr.Add(fe.Field(), reasonFor(fe.Tag(), fe.Param()))
	}
}

// reasonFor maps a validator tag to a client-facing reason.
func reasonFor(tag, param string) string {
	switch tag {
	case "required":
		return "is required"
	case "max":
		return fmt.Sprintf("must be at most %s characters", param)
	case "datetime":
		return "must be an RFC 3339 timestamp with offset"
	default:
		return "is invalid"
	}
}

// parseDueAt parses an RFC 3339 timestamp, keeping its offset. Precision
// beyond microseconds is dropped to match storage resolution.
func parseDueAt(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return t.Truncate(time.Microsecond), nil
}

func sanitizeOptional(s *string) *string {
	if s == nil {
		return nil
	}
	v := SanitizeDescription(*s)
	return &v
}
