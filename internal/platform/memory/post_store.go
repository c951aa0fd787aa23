package memory

import (
	"context"
	"log/slog"
	"sync"

	"github.com/phrazzld/quill-api/internal/domain"
	"github.com/phrazzld/quill-api/internal/platform/instrument"
	"github.com/phrazzld/quill-api/internal/platform/logger"
	"github.com/phrazzld/quill-api/internal/store"
)

// PostStore is an in-memory store.PostStore.
type PostStore struct {
	mu     sync.RWMutex
	byID   map[domain.ID]*domain.Post
	logger *slog.Logger
}

// NewPostStore returns an empty PostStore.
func NewPostStore(logger *slog.Logger) *PostStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostStore{
		byID:   make(map[domain.ID]*domain.Post),
		logger: logger.With(slog.String("component", "post_store"), slog.String("backend", backend)),
	}
}

var _ store.PostStore = (*PostStore)(nil)

// Find implements store.PostStore.Find
func (s *PostStore) Find(ctx context.Context, id domain.ID) (post *domain.Post, err error) {
	ctx, op := instrument.StartStoreOp(ctx, backend, entityPost, "find")
	defer func() { op.End(err) }()

	if err := ctx.Err(); err != nil {
		return nil, store.NewStoreError(entityPost, "find", "operation cancelled", err)
	}

	s.mu.RLock()
	post, ok := s.byID[id]
	s.mu.RUnlock()

	if !ok {
		logger.FromContextOrDefault(ctx, s.logger).Debug("post not found", slog.String("post_id", id.String()))
		return nil, store.ErrPostNotFound
	}
	return post, nil
}

// Save implements store.PostStore.Save
func (s *PostStore) Save(ctx context.Context, post *domain.Post) (err error) {
	ctx, op := instrument.StartStoreOp(ctx, backend, entityPost, "save")
	defer func() { op.End(err) }()

	if err := ctx.Err(); err != nil {
		return store.NewStoreError(entityPost, "save", "operation cancelled", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byID[post.ID()]; exists {
		return store.NewStoreError(entityPost, "save", "primary key collision", nil)
	}
	s.byID[post.ID()] = post
	return nil
}
