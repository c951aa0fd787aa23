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

const (
	backend    = "memory"
	entityUser = "user"
	entityPost = "post"
)

// UserStore is an in-memory store.UserStore.
type UserStore struct {
	mu         sync.RWMutex
	byID       map[domain.ID]*domain.User
	byNickname map[string]domain.ID
	logger     *slog.Logger
}

// NewUserStore returns an empty UserStore.
func NewUserStore(logger *slog.Logger) *UserStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserStore{
		byID:       make(map[domain.ID]*domain.User),
		byNickname: make(map[string]domain.ID),
		logger:     logger.With(slog.String("component", "user_store"), slog.String("backend", backend)),
	}
}

var _ store.UserStore = (*UserStore)(nil)

// Find implements store.UserStore.Find
func (s *UserStore) Find(ctx context.Context, id domain.ID) (user *domain.User, err error) {
	ctx, op := instrument.StartStoreOp(ctx, backend, entityUser, "find")
	defer func() { op.End(err) }()

	if err := ctx.Err(); err != nil {
		return nil, store.NewStoreError(entityUser, "find", "operation cancelled", err)
	}

	s.mu.RLock()
	user, ok := s.byID[id]
	s.mu.RUnlock()

	if !ok {
		logger.FromContextOrDefault(ctx, s.logger).Debug("user not found", slog.String("user_id", id.String()))
		return nil, store.ErrUserNotFound
	}
	return user, nil
}

// FindByNickname implements store.UserStore.FindByNickname
func (s *UserStore) FindByNickname(ctx context.Context, nickname string) (user *domain.User, err error) {
	ctx, op := instrument.StartStoreOp(ctx, backend, entityUser, "find_by_nickname")
	defer func() { op.End(err) }()

	if err := ctx.Err(); err != nil {
		return nil, store.NewStoreError(entityUser, "find_by_nickname", "operation cancelled", err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byNickname[nickname]
	if !ok {
		logger.FromContextOrDefault(ctx, s.logger).Debug("user not found", slog.String("nickname", nickname))
		return nil, store.ErrUserNotFound
	}
	return s.byID[id], nil
}

// Save implements store.UserStore.Save
// The nickname check and the insert happen under one write lock.
func (s *UserStore) Save(ctx context.Context, user *domain.User) (err error) {
	ctx, op := instrument.StartStoreOp(ctx, backend, entityUser, "save")
	defer func() { op.End(err) }()

	if err := ctx.Err(); err != nil {
		return store.NewStoreError(entityUser, "save", "operation cancelled", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.byNickname[user.Nickname()]; taken {
		logger.FromContextOrDefault(ctx, s.logger).Debug("nickname already taken",
			slog.String("nickname", user.Nickname()))
		return &store.NicknameExistsError{Nickname: user.Nickname()}
	}
	if _, exists := s.byID[user.ID()]; exists {
		return store.NewStoreError(entityUser, "save", "primary key collision", nil)
	}

	s.byID[user.ID()] = user
	s.byNickname[user.Nickname()] = user.ID()
	return nil
}
