package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/phrazzld/memos-api/internal/api/shared"
	"github.com/phrazzld/memos-api/internal/domain"
)

// getPathUUID extracts a UUID from the URL path parameters. A missing or
// malformed value is a validation error on paramName.
func getPathUUID(r *http.Request, paramName string) (uuid.UUID, error) {
	pathParam := chi.URLParam(r, paramName)
	if pathParam == "" {
		return uuid.Nil, domain.NewValidationError(paramName, "is required")
	}

	id, err := uuid.Parse(pathParam)
	if err != nil {
		return uuid.Nil, domain.NewValidationError(paramName, "must be a valid UUID")
	}

	return id, nil
}

// decodeBody decodes a JSON object body into the struct pointed to by v,
// one field at a time. Failures that make the whole body unusable are
// returned as err. A value of the wrong type is recorded in fieldErrs and
// leaves its field at the zero value, so the remaining fields can still be
// validated.
func decodeBody(r *http.Request, v any) (fieldErrs *domain.ValidationError, err error) {
	var raw map[string]json.RawMessage
	if err := shared.DecodeJSON(r, &raw); err != nil {
		var typeErr *json.UnmarshalTypeError
		switch {
		case errors.Is(err, shared.ErrEmptyBody):
			return nil, domain.NewValidationError("body", "is required")
		case errors.Is(err, shared.ErrBodyTooLarge):
			return nil, domain.NewValidationError("body", "is too large")
		case errors.As(err, &typeErr):
			return nil, domain.NewValidationError("body", "must be a JSON object")
		default:
			return nil, domain.NewValidationError("body", "must be valid JSON")
		}
	}

	fieldErrs = &domain.ValidationError{}
	target := reflect.ValueOf(v).Elem()
	for i := 0; i < target.NumField(); i++ {
		name, _, _ := strings.Cut(target.Type().Field(i).Tag.Get("json"), ",")
		value, ok := raw[name]
		if name == "" || name == "-" || !ok {
			continue
		}

		field := target.Field(i)
		if err := json.Unmarshal(value, field.Addr().Interface()); err != nil {
			field.SetZero()
			fieldErrs.Add(name, "has the wrong type")
		}
	}

	return fieldErrs, nil
}

// withFieldErrors merges decode-time field errors into the result of a
// validation step. A field already reported as the wrong type is not
// reported again by validation of its zero value.
func withFieldErrors(fieldErrs *domain.ValidationError, err error) error {
	if !fieldErrs.HasErrors() {
		return err
	}

	merged := &domain.ValidationError{}
	merged.Fields = append(merged.Fields, fieldErrs.Fields...)

	reported := make(map[string]bool, len(fieldErrs.Fields))
	for _, fe := range fieldErrs.Fields {
		reported[fe.Field] = true
	}
	for _, fe := range domain.ValidationFields(err) {
		if !reported[fe.Field] {
			merged.Add(fe.Field, fe.Reason)
		}
	}

	return merged
}
