package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the store.
	// This is a generic version of the entity-specific not found errors
	// (ErrUserNotFound, ErrPostNotFound).
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would create a duplicate
	// of a unique entity (e.g., a user with the same nickname).
	ErrDuplicate = errors.New("entity already exists")

	// Entity-specific "not found" errors

	// ErrUserNotFound indicates that the requested user does not exist in the store.
	ErrUserNotFound = fmt.Errorf("%w: user", ErrNotFound)

	// ErrPostNotFound indicates that the requested post does not exist in the store.
	ErrPostNotFound = fmt.Errorf("%w: post", ErrNotFound)

	// Entity-specific "duplicate" errors

	// ErrNicknameExists matches every *NicknameExistsError.
	ErrNicknameExists = fmt.Errorf("%w: nickname", ErrDuplicate)
)

// NicknameExistsError is returned by UserStore.Save when the nickname is
// already taken. It carries the conflicting nickname so callers can report
// it without parsing the message.
type NicknameExistsError struct {
	Nickname string
}

// Error implements the error interface for NicknameExistsError.
func (e *NicknameExistsError) Error() string {
	return fmt.Sprintf("nickname %q already exists", e.Nickname)
}

// Unwrap returns ErrNicknameExists, which in turn wraps ErrDuplicate.
func (e *NicknameExistsError) Unwrap() error {
	return ErrNicknameExists
}

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError checks if the error is any kind of "duplicate" error.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}

// AsNicknameExists extracts a *NicknameExistsError from err's chain.
func AsNicknameExists(err error) (*NicknameExistsError, bool) {
	var conflict *NicknameExistsError
	if errors.As(err, &conflict) {
		return conflict, true
	}
	return nil, false
}

// IsStoreError reports whether err is an opaque infrastructure failure.
func IsStoreError(err error) bool {
	var storeErr *StoreError
	return errors.As(err, &storeErr)
}

// StoreError is the opaque failure returned for anything that is not an
// expected domain outcome: connection acquisition, query execution, row
// scanning, cancellation. It preserves the original error.
type StoreError struct {
	Entity    string // The entity type (e.g., "user", "post")
	Operation string // The operation that failed (e.g., "find", "save")
	Message   string // Error message
	Err       error  // Original error
}

// Error implements the error interface for StoreError.
func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf(
			"%s operation on %s failed: %s: %v",
			e.Operation,
			e.Entity,
			e.Message,
			e.Err,
		)
	}
	return fmt.Sprintf("%s operation on %s failed: %s", e.Operation, e.Entity, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError with the given entity, operation, message, and wrapped error.
func NewStoreError(entity, operation, message string, err error) *StoreError {
	return &StoreError{
		Entity:    entity,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
