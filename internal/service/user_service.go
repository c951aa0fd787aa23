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

// UserService provides the user use cases
type UserService interface {
	// CreateUser builds a new user with the given nickname and saves it.
	// On failure it returns a nil user and the store's error unchanged,
	// e.g. *store.NicknameExistsError when the nickname is taken.
	CreateUser(ctx context.Context, nickname string) (*domain.User, error)
}

// UserServiceImpl implements the UserService interface
type UserServiceImpl struct {
	userStore store.UserStore
	logger    *slog.Logger
}

// NewUserService creates a new UserService
func NewUserService(userStore store.UserStore, logger *slog.Logger) UserService {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserServiceImpl{
		userStore: userStore,
		logger:    logger.With("component", "user_service"),
	}
}

// CreateUser creates and saves a new user
func (s *UserServiceImpl) CreateUser(ctx context.Context, nickname string) (*domain.User, error) {
	ctx, span := tracer().Start(ctx, "Create a user")
	defer span.End()

	user := domain.NewUser(nickname)
	span.SetAttributes(attribute.String("user.id", user.ID().String()))

	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.userStore.Save(ctx, user); err != nil {
		if store.IsDuplicateError(err) {
			log.Debug("attempted to create user with existing nickname",
				"nickname", nickname)
		} else {
			log.Error("failed to save user",
				redact.ErrorAttr(err),
				"user_id", user.ID().String())
		}
		recordFailure(span, err)
		return nil, err
	}

	log.Info("user created",
		"user_id", user.ID().String(),
		"nickname", nickname)
	return user, nil
}
