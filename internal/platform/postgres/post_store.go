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
	selectPostByIDQuery = `SELECT id, content FROM posts WHERE id = $1`
	insertPostQuery     = `INSERT INTO posts (id, content) VALUES ($1, $2)`
)

// PostgresPostStore implements the store.PostStore interface
// using a PostgreSQL database as the storage backend.
type PostgresPostStore struct {
	db     store.DB
	logger *slog.Logger
}

// NewPostgresPostStore creates a new PostgreSQL implementation of the PostStore interface.
func NewPostgresPostStore(db store.DB, logger *slog.Logger) *PostgresPostStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresPostStore{
		db:     db,
		logger: logger.With(slog.String("component", "post_store")),
	}
}

var _ store.PostStore = (*PostgresPostStore)(nil)

// Find implements store.PostStore.Find
func (s *PostgresPostStore) Find(ctx context.Context, id domain.ID) (post *domain.Post, err error) {
	ctx, op := instrument.StartStoreOp(ctx, backend, entityPost, "find")
	defer func() { op.End(err) }()

	log := logger.FromContextOrDefault(ctx, s.logger)

	err = store.RunWithConn(ctx, s.db, entityPost, "find", func(ctx context.Context, q store.DBTX) error {
		var scanErr error
		post, scanErr = scanPost(q.QueryRowContext(ctx, selectPostByIDQuery, id))
		return MapError(scanErr, entityPost, "find")
	})
	if err != nil {
		logFindError(log, err, slog.String("post_id", id.String()))
		return nil, err
	}
	return post, nil
}

// Save implements store.PostStore.Save
// Posts have no uniqueness rule besides the id, so every failure is opaque.
func (s *PostgresPostStore) Save(ctx context.Context, post *domain.Post) (err error) {
	ctx, op := instrument.StartStoreOp(ctx, backend, entityPost, "save")
	defer func() { op.End(err) }()

	log := logger.FromContextOrDefault(ctx, s.logger)

	err = store.RunWithConn(ctx, s.db, entityPost, "save", func(ctx context.Context, q store.DBTX) error {
		_, execErr := q.ExecContext(ctx, insertPostQuery, post.ID(), post.Content())
		return MapError(execErr, entityPost, "save")
	})
	if err != nil {
		log.Error("failed to save post",
			redact.ErrorAttr(err),
			slog.String("post_id", post.ID().String()))
		return err
	}

	log.Debug("post saved", slog.String("post_id", post.ID().String()))
	return nil
}

func scanPost(row *sql.Row) (*domain.Post, error) {
	var (
		id      uuid.UUID
		content string
	)
	if err := row.Scan(&id, &content); err != nil {
		return nil, err
	}
	return domain.RehydratePost(domain.IDFromRaw(id), content), nil
}
