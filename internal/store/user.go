package store

import (
	"context"

	"github.com/phrazzld/quill-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Find retrieves a user by its ID.
	// Returns ErrUserNotFound if no user has that ID.
	// Any other failure is returned as a *StoreError.
	Find(ctx context.Context, id domain.ID) (*domain.User, error)

	// FindByNickname retrieves a user by nickname (exact match).
	// Returns ErrUserNotFound if no user has that nickname.
	// Any other failure is returned as a *StoreError.
	FindByNickname(ctx context.Context, nickname string) (*domain.User, error)

	// Save inserts a new user. It never overwrites an existing row.
	// Returns *NicknameExistsError if the nickname is already taken.
	// Any other failure is returned as a *StoreError.
	Save(ctx context.Context, user *domain.User) error
}
