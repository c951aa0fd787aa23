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
	selectPostByIDQuery = `SELECT id, content FROM posts WHERE id = ?`
	insertPostQuery     = `INSERT INTO posts (id, content) VALUES (?, ?)`
)

// PostStore implements store.PostStore on SQLite.
type PostStore struct {
	db     store.DB
	logger *slog.Logger
}

// NewPostStore creates a SQLite PostStore.
func NewPostStore(db store.DB, logger *slog.Logger) *PostStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PostStore{
		db:     db,
		logger: logger.With(slog.String("component", "post_store"), slog.String("backend", backend)),
	}
}

var _ store.PostStore = (*PostStore)(nil)

// Find implements store.PostStore.Find
func (s *PostStore) Find(ctx context.Context, id domain.ID) (post *domain.Post, err error) {
	ctx, op := instrument.StartStoreOp(ctx, backend, entityPost, "find")
	defer func() { op.End(err) }()

	err = store.RunWithConn(ctx, s.db, entityPost, "find", func(ctx context.Context, q store.DBTX) error {
		var scanErr error
		post, scanErr = scanPost(q.QueryRowContext(ctx, selectPostByIDQuery, id))
		return mapError(scanErr, entityPost, "find")
	})
	if err != nil {
		log := logger.FromContextOrDefault(ctx, s.logger)
		if store.IsNotFoundError(err) {
			log.Debug("post not found", slog.String("post_id", id.String()))
		} else {
			log.Error("failed to retrieve post",
				redact.ErrorAttr(err),
				slog.String("post_id", id.String()))
		}
		return nil, err
	}
	return post, nil
}

// Save implements store.PostStore.Save
func (s *PostStore) Save(ctx context.Context, post *domain.Post) (err error) {
	ctx, op := instrument.StartStoreOp(ctx, backend, entityPost, "save")
	defer func() { op.End(err) }()

	err = store.RunWithConn(ctx, s.db, entityPost, "save", func(ctx context.Context, q store.DBTX) error {
		_, execErr := q.ExecContext(ctx, insertPostQuery, post.ID(), post.Content())
		return mapError(execErr, entityPost, "save")
	})
	if err != nil {
		logger.FromContextOrDefault(ctx, s.logger).Error("failed to save post",
			redact.ErrorAttr(err),
			slog.String("post_id", post.ID().String()))
		return err
	}
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
