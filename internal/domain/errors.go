package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies every failure the memo resource can report.
// The set is closed: callers may switch over it exhaustively.
type ErrorKind int

// Possible error kinds
const (
	// KindValidation means the input was rejected before reaching the store.
	KindValidation ErrorKind = iota + 1
	// KindNotFound means the operation targeted an id with no record.
	KindNotFound
	// KindStore means the persistence layer failed.
	KindStore
	// KindInternal means an invariant was violated after the fact.
	KindInternal
)

// String returns the externally visible name of the kind.
func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "ValidationError"
	case KindNotFound:
		return "NotFound"
	case KindStore:
		return "StoreError"
	case KindInternal:
		return "InternalError"
	default:
		return "Unknown"
	}
}

// Sentinel errors, one per kind, for use with errors.Is.
var (
	// ErrValidation is matched by every *ValidationError.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound is returned when no memo exists for the requested id.
	ErrNotFound = errors.New("memo not found")

	// ErrStore is wrapped around persistence failures.
	ErrStore = errors.New("store failure")

	// ErrInternal is wrapped around invariant violations detected post-hoc.
	ErrInternal = errors.New("internal error")
)

// FieldError describes a single violated field.
type FieldError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// ValidationError carries every field-level violation found in one input.
type ValidationError struct {
	Fields []FieldError
}

// NewValidationError creates a ValidationError with a single violation.
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Reason: reason}}}
}

// Add appends a violation.
func (e *ValidationError) Add(field, reason string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Reason: reason})
}

// HasErrors reports whether any violation was recorded.
func (e *ValidationError) HasErrors() bool {
	return e != nil && len(e.Fields) > 0
}

// OrNil returns e as an error if it holds violations, nil otherwise.
// It avoids the typed-nil interface trap at call sites.
func (e *ValidationError) OrNil() error {
	if !e.HasErrors() {
		return nil
	}
	return e
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Reason)
	}
	return fmt.Sprintf("%s: %s", ErrValidation.Error(), strings.Join(parts, "; "))
}

// Is makes errors.Is(err, ErrValidation) succeed.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Error is the resource-level error returned by the memo service. It
// records the failing operation and never exposes store details in Message.
type Error struct {
	Kind    ErrorKind
	Op      string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the sentinel for the error's kind.
func (e *Error) Is(target error) bool {
	switch e.Kind {
	case KindNotFound:
		return target == ErrNotFound
	case KindStore:
		return target == ErrStore
	case KindInternal:
		return target == ErrInternal
	case KindValidation:
		return target == ErrValidation
	}
	return false
}

// NotFoundError returns a KindNotFound error for op.
func NotFoundError(op string) *Error {
	return &Error{Kind: KindNotFound, Op: op, Message: "memo not found"}
}

// StoreError wraps a persistence failure for op.
func StoreError(op string, err error) *Error {
	return &Error{Kind: KindStore, Op: op, Message: "storage unavailable", Err: err}
}

// InternalError wraps an invariant violation for op.
func InternalError(op, message string, err error) *Error {
	return &Error{Kind: KindInternal, Op: op, Message: message, Err: err}
}

// KindOf reports the kind of err. Errors outside the taxonomy are
// treated as KindInternal; a nil error has kind 0.
func KindOf(err error) ErrorKind {
	if err == nil {
		return 0
	}

	var ve *ValidationError
	if errors.As(err, &ve) {
		return KindValidation
	}

	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}

	return KindInternal
}

// ValidationFields extracts the field violations from err, if any.
func ValidationFields(err error) []FieldError {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Fields
	}
	return nil
}
