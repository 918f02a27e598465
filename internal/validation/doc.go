// Package validation turns untrusted memo payloads and list query strings
// into normalized domain values, or rejects them with a
// *domain.ValidationError naming every violated field.
//
// Nothing in this package touches storage; every function is a pure
// transformation of its input.
package validation
