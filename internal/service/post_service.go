package service

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"

	"github.com/phrazzld/quill-api/internal/domain"
	"github.com/phrazzld/quill-api/internal/platform/logger"
	"github.com/phrazzld/quill-api/internal/redact"
	"github.com/phrazzld/quill-api/internal/store"
)

// PostService provides the post use cases
type PostService interface {
	// CreatePost builds a new post with the given content and saves it.
	// On failure it returns a nil post and the store's error unchanged.
	CreatePost(ctx context.Context, content string) (*domain.Post, error)
}

// PostServiceImpl implements the PostService interface
type PostServiceImpl struct {
	postStore store.PostStore
	logger    *slog.Logger
}

// NewPostService creates a new PostService
func NewPostService(postStore store.PostStore, logger *slog.Logger) PostService {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostServiceImpl{
		postStore: postStore,
		logger:    logger.With("component", "post_service"),
	}
}

// CreatePost creates and saves a new post
func (s *PostServiceImpl) CreatePost(ctx context.Context, content string) (*domain.Post, error) {
	ctx, span := tracer().Start(ctx, "Create a post")
	defer span.End()

	post := domain.NewPost(content)
	span.SetAttributes(attribute.String("post.id", post.ID().String()))

	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.postStore.Save(ctx, post); err != nil {
		log.Error("failed to save post",
			redact.ErrorAttr(err),
			"post_id", post.ID().String())
		recordFailure(span, err)
		return nil, err
	}

	log.Info("post created",
		"post_id", post.ID().String(),
		"content_length", len(content))
	return post, nil
}
