package store

import (
	"context"

	"github.com/phrazzld/quill-api/internal/domain"
)

// PostStore defines the interface for post data persistence.
type PostStore interface {
	// Find retrieves a post by its ID.
	// Returns ErrPostNotFound if no post has that ID.
	// Any other failure is returned as a *StoreError.
	Find(ctx context.Context, id domain.ID) (*domain.Post, error)

	// Save inserts a new post. Every failure is returned as a *StoreError.
	Save(ctx context.Context, post *domain.Post) error
}
