package postgres

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
	selectUserByIDQuery       = `SELECT id, nickname FROM users WHERE id = $1`
	selectUserByNicknameQuery = `SELECT id, nickname FROM users WHERE nickname = $1`
	insertUserQuery           = `INSERT INTO users (id, nickname) VALUES ($1, $2)`
)

// PostgresUserStore implements the store.UserStore interface
// using a PostgreSQL database as the storage backend.
type PostgresUserStore struct {
	db     store.DB
	logger *slog.Logger
}

// NewPostgresUserStore creates a new PostgreSQL implementation of the UserStore interface.
// The pool behind db is owned by the caller. If logger is nil, a default logger will be used.
func NewPostgresUserStore(db store.DB, logger *slog.Logger) *PostgresUserStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresUserStore{
		db:     db,
		logger: logger.With(slog.String("component", "user_store")),
	}
}

// Ensure PostgresUserStore implements store.UserStore interface
var _ store.UserStore = (*PostgresUserStore)(nil)

// Find implements store.UserStore.Find
func (s *PostgresUserStore) Find(ctx context.Context, id domain.ID) (user *domain.User, err error) {
	ctx, op := instrument.StartStoreOp(ctx, backend, entityUser, "find")
	defer func() { op.End(err) }()

	log := logger.FromContextOrDefault(ctx, s.logger)
	log.Debug("retrieving user by ID", slog.String("user_id", id.String()))

	err = store.RunWithConn(ctx, s.db, entityUser, "find", func(ctx context.Context, q store.DBTX) error {
		var scanErr error
		user, scanErr = scanUser(q.QueryRowContext(ctx, selectUserByIDQuery, id))
		return MapError(scanErr, entityUser, "find")
	})
	if err != nil {
		logFindError(log, err, slog.String("user_id", id.String()))
		return nil, err
	}
	return user, nil
}

// FindByNickname implements store.UserStore.FindByNickname
func (s *PostgresUserStore) FindByNickname(ctx context.Context, nickname string) (user *domain.User, err error) {
	ctx, op := instrument.StartStoreOp(ctx, backend, entityUser, "find_by_nickname")
	defer func() { op.End(err) }()

	log := logger.FromContextOrDefault(ctx, s.logger)
	log.Debug("retrieving user by nickname", slog.String("nickname", nickname))

	err = store.RunWithConn(ctx, s.db, entityUser, "find_by_nickname", func(ctx context.Context, q store.DBTX) error {
		var scanErr error
		user, scanErr = scanUser(q.QueryRowContext(ctx, selectUserByNicknameQuery, nickname))
		return MapError(scanErr, entityUser, "find_by_nickname")
	})
	if err != nil {
		logFindError(log, err, slog.String("nickname", nickname))
		return nil, err
	}
	return user, nil
}

// Save implements store.UserStore.Save
// A violation of NicknameConstraint is reported as *store.NicknameExistsError.
func (s *PostgresUserStore) Save(ctx context.Context, user *domain.User) (err error) {
	ctx, op := instrument.StartStoreOp(ctx, backend, entityUser, "save")
	defer func() { op.End(err) }()

	log := logger.FromContextOrDefault(ctx, s.logger)

	err = store.RunWithConn(ctx, s.db, entityUser, "save", func(ctx context.Context, q store.DBTX) error {
		_, execErr := q.ExecContext(ctx, insertUserQuery, user.ID(), user.Nickname())
		if execErr == nil {
			return nil
		}
		return MapUniqueViolation(execErr, entityUser, "save", NicknameConstraint,
			&store.NicknameExistsError{Nickname: user.Nickname()})
	})
	if err != nil {
		switch {
		case store.IsDuplicateError(err):
			log.Debug("nickname already taken", slog.String("nickname", user.Nickname()))
		case IsUniqueViolation(err):
			log.Error("unique violation outside the nickname constraint",
				redact.ErrorAttr(err),
				slog.String("user_id", user.ID().String()))
		default:
			log.Error("failed to save user",
				redact.ErrorAttr(err),
				slog.String("user_id", user.ID().String()))
		}
		return err
	}

	log.Debug("user saved", slog.String("user_id", user.ID().String()))
	return nil
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

func logFindError(log *slog.Logger, err error, attr slog.Attr) {
	if store.IsNotFoundError(err) {
		log.Debug("entity not found", attr)
		return
	}
	log.Error("failed to retrieve entity",
		redact.ErrorAttr(err),
		attr)
}
