// errors.go defines sentinel errors for validation failures.
//
// Separated to centralise error definitions. These errors are used with
// errors.Is() for type-safe error checking. Each error represents a
// distinct validation failure category.
//
// Design: Sentinel errors (not error types) because validation failures
// don't carry additional context beyond the category. Detailed messages
// are provided by wrapping these with fmt.Errorf in the validation
// functions.

package validate

import "errors"

var (
	ErrSelfLink    = errors.New("self-referential link")
	ErrEmptyName   = errors.New("empty name")
	ErrEmptyText   = errors.New("empty text")
	ErrInvalidPage = errors.New("invalid page number")
	ErrInvalidRoot = errors.New("invalid scan root")
)
