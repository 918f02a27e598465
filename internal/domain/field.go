package domain

import (
	"bytes"
	"encoding/json"
)

// FieldState is the discriminant of a Field.
type FieldState uint8

// Possible field states
const (
	// FieldUnset means the key was absent from the payload.
	FieldUnset FieldState = iota
	// FieldNull means the key was present with an explicit null.
	FieldNull
	// FieldSet means the key was present with a value.
	FieldSet
)

// Field is a tagged optional value that keeps "absent", "null" and
// "set" apart. The zero value is Unset, so a struct field of this type
// that is never touched by the JSON decoder stays Unset.
type Field[T any] struct {
	state FieldState
	value T
}

// Unset returns an absent field.
func Unset[T any]() Field[T] {
	return Field[T]{}
}

// Null returns an explicitly cleared field.
func Null[T any]() Field[T] {
	return Field[T]{state: FieldNull}
}

// Set returns a field holding v.
func Set[T any](v T) Field[T] {
	return Field[T]{state: FieldSet, value: v}
}

// State returns the discriminant.
func (f Field[T]) State() FieldState {
	return f.state
}

// IsUnset reports whether the field was absent.
func (f Field[T]) IsUnset() bool {
	return f.state == FieldUnset
}

// IsNull reports whether the field was explicitly null.
func (f Field[T]) IsNull() bool {
	return f.state == FieldNull
}

// IsSet reports whether the field holds a value.
func (f Field[T]) IsSet() bool {
	return f.state == FieldSet
}

// Value returns the held value and whether the field is Set.
func (f Field[T]) Value() (T, bool) {
	return f.value, f.state == FieldSet
}

// UnmarshalJSON is only invoked by encoding/json when the key is
// present, which is what lets an omitted key remain Unset.
func (f *Field[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		var zero T
		f.state = FieldNull
		f.value = zero
		return nil
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	f.state = FieldSet
	f.value = v
	return nil
}

// MarshalJSON writes null for Unset and Null fields.
func (f Field[T]) MarshalJSON() ([]byte, error) {
	if f.state != FieldSet {
		return []byte("null"), nil
	}
	return json.Marshal(f.value)
}
