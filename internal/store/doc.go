// Package store defines interfaces for data persistence operations.
// These interfaces abstract the underlying data storage mechanism from
// the application's core logic, allowing business rules to remain
// independent of specific database technologies or persistence details.
//
// Store errors fall into two families. Expected domain outcomes are
// sentinels or typed errors callers branch on with errors.Is / errors.As:
// ErrUserNotFound, ErrPostNotFound and *NicknameExistsError. Everything
// else is an opaque *StoreError that keeps the original cause for
// diagnostics. Implementations never fold one family into the other.
package store
