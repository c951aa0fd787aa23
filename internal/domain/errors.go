package domain

import (
	"errors"
	"fmt"
)

// Common domain errors used across the application.
var (
	// ErrInvalidID is returned when an ID is malformed or invalid.
	// All *ParseError values match it with errors.Is.
	ErrInvalidID = errors.New("invalid ID")

	// errIDGrouping is the cause recorded when the input is not in the
	// 8-4-4-4-12 hyphenated form.
	errIDGrouping = errors.New("expected 36 characters in 8-4-4-4-12 hyphenated form")
)

// ParseError is returned by ParseID when the text is not a well-formed
// canonical ID. It only reports syntax; a well-formed ID that is not of the
// random variant parses successfully.
type ParseError struct {
	Input string // The rejected text
	Err   error  // Underlying cause
}

// Error implements the error interface for ParseError.
func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid ID %q: %v", e.Input, e.Err)
}

// Unwrap returns the underlying cause.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrInvalidID, so callers can branch on the
// sentinel without knowing the concrete type.
func (e *ParseError) Is(target error) bool {
	return target == ErrInvalidID
}
