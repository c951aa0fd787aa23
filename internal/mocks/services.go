package mocks

import (
	"context"

	"github.com/phrazzld/quill-api/internal/domain"
	"github.com/phrazzld/quill-api/internal/service"
)

var (
	_ service.UserService = (*MockUserService)(nil)
	_ service.PostService = (*MockPostService)(nil)
)

// MockUserService implements service.UserService for testing
type MockUserService struct {
	CreateUserFn func(ctx context.Context, nickname string) (*domain.User, error)

	// Calls records every nickname passed to CreateUser.
	Calls []string
}

// CreateUser records the call and delegates to CreateUserFn.
// Without CreateUserFn it returns a fresh user.
func (m *MockUserService) CreateUser(ctx context.Context, nickname string) (*domain.User, error) {
	m.Calls = append(m.Calls, nickname)
	if m.CreateUserFn != nil {
		return m.CreateUserFn(ctx, nickname)
	}
	return domain.NewUser(nickname), nil
}

// MockPostService implements service.PostService for testing
type MockPostService struct {
	CreatePostFn func(ctx context.Context, content string) (*domain.Post, error)

	Calls []string
}

// CreatePost records the call and delegates to CreatePostFn.
func (m *MockPostService) CreatePost(ctx context.Context, content string) (*domain.Post, error) {
	m.Calls = append(m.Calls, content)
	if m.CreatePostFn != nil {
		return m.CreatePostFn(ctx, content)
	}
	return domain.NewPost(content), nil
}
