package sqlite

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/google/uuid"

	"github.com/phrazzld/quill-api/internal/domain"
	"github.com/phrazzld/quill-api/internal/platform/instrument"
	"github.com/phrazzld/quill-api/internal/platform/logger"
	"github.com/phrazzld/quill-api/internal/redact"
	"github.com/phrazzld/quill-api/internal/store"
)

const (
	selectUserByIDQuery       = `SELECT id, nickname FROM users WHERE id = ?`
	selectUserByNicknameQuery = `SELECT id, nickname FROM users WHERE nickname = ?`
	insertUserQuery           = `INSERT INTO users (id, nickname) VALUES (?, ?)`
)

// UserStore implements store.UserStore on SQLite.
type UserStore struct {
	db     store.DB
	logger *slog.Logger
}

// NewUserStore creates a SQLite UserStore. If logger is nil, slog.Default is used.
func NewUserStore(db store.DB, logger *slog.Logger) *UserStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &UserStore{
		db:     db,
		logger: logger.With(slog.String("component", "user_store"), slog.String("backend", backend)),
	}
}

var _ store.UserStore = (*UserStore)(nil)

// Find implements store.UserStore.Find
func (s *UserStore) Find(ctx context.Context, id domain.ID) (user *domain.User, err error) {
	ctx, op := instrument.StartStoreOp(ctx, backend, entityUser, "find")
	defer func() { op.End(err) }()

	err = store.RunWithConn(ctx, s.db, entityUser, "find", func(ctx context.Context, q store.DBTX) error {
		var scanErr error
		user, scanErr = scanUser(q.QueryRowContext(ctx, selectUserByIDQuery, id))
		return mapError(scanErr, entityUser, "find")
	})
	if err != nil {
		s.logFindError(ctx, err, slog.String("user_id", id.String()))
		return nil, err
	}
	return user, nil
}

// FindByNickname implements store.UserStore.FindByNickname
func (s *UserStore) FindByNickname(ctx context.Context, nickname string) (user *domain.User, err error) {
	ctx, op := instrument.StartStoreOp(ctx, backend, entityUser, "find_by_nickname")
	defer func() { op.End(err) }()

	err = store.RunWithConn(ctx, s.db, entityUser, "find_by_nickname", func(ctx context.Context, q store.DBTX) error {
		var scanErr error
		user, scanErr = scanUser(q.QueryRowContext(ctx, selectUserByNicknameQuery, nickname))
		return mapError(scanErr, entityUser, "find_by_nickname")
	})
	if err != nil {
		s.logFindError(ctx, err, slog.String("nickname", nickname))
		return nil, err
	}
	return user, nil
}

// Save implements store.UserStore.Save
func (s *UserStore) Save(ctx context.Context, user *domain.User) (err error) {
	ctx, op := instrument.StartStoreOp(ctx, backend, entityUser, "save")
	defer func() { op.End(err) }()

	log := logger.FromContextOrDefault(ctx, s.logger)

	err = store.RunWithConn(ctx, s.db, entityUser, "save", func(ctx context.Context, q store.DBTX) error {
		_, execErr := q.ExecContext(ctx, insertUserQuery, user.ID(), user.Nickname())
		if isNicknameConflict(execErr) {
			return &store.NicknameExistsError{Nickname: user.Nickname()}
		}
		return mapError(execErr, entityUser, "save")
	})
	if err != nil {
		if store.IsDuplicateError(err) {
			log.Debug("nickname already taken", slog.String("nickname", user.Nickname()))
		} else {
			log.Error("failed to save user",
				redact.ErrorAttr(err),
				slog.String("user_id", user.ID().String()))
		}
		return err
	}
	return nil
}

func (s *UserStore) logFindError(ctx context.Context, err error, attr slog.Attr) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	if store.IsNotFoundError(err) {
		log.Debug("user not found", attr)
		return
	}
	log.Error("failed to retrieve user", redact.ErrorAttr(err), attr)
}

func scanUser(row *sql.Row) (*domain.User, error) {
	var (
		id       uuid.UUID
		nickname string
	)
	if err := row.Scan(&id, &nickname); err != nil {
		return nil, err
	}
	return domain.RehydrateUser(domain.IDFromRaw(id), nickname), nil
}
