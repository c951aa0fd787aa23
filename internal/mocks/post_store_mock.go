package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/phrazzld/quill-api/internal/domain"
	"github.com/phrazzld/quill-api/internal/store"
)

// PostStore is a mock of store.PostStore for use with testify/mock
type PostStore struct {
	mock.Mock
}

var _ store.PostStore = (*PostStore)(nil)

// Find is a mock implementation of store.PostStore.Find
func (m *PostStore) Find(ctx context.Context, id domain.ID) (*domain.Post, error) {
	args := m.Called(ctx, id)
	if post, ok := args.Get(0).(*domain.Post); ok {
		return post, args.Error(1)
	}
	return nil, args.Error(1)
}

// Save is a mock implementation of store.PostStore.Save
func (m *PostStore) Save(ctx context.Context, post *domain.Post) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}
