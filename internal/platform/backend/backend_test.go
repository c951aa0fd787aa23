package backend_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/phrazzld/quill-api/internal/config"
	"github.com/phrazzld/quill-api/internal/domain"
	"github.com/phrazzld/quill-api/internal/platform/backend"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenMemory(t *testing.T) {
	b, err := backend.Open(context.Background(), config.DatabaseConfig{Driver: config.DriverMemory}, nil)
	require.NoError(t, err)
	assert.Nil(t, b.DB)
	assert.NoError(t, b.Close())

	ctx := context.Background()
	user := domain.NewUser("memory-user")
	require.NoError(t, b.Users.Save(ctx, user))
	found, err := b.Users.Find(ctx, user.ID())
	require.NoError(t, err)
	assert.Equal(t, user.Nickname(), found.Nickname())
}

func TestOpenSQLiteWithMigrations(t *testing.T) {
	ctx := context.Background()
	b, err := backend.Open(ctx, config.DatabaseConfig{
		Driver:       config.DriverSQLite,
		URL:          filepath.Join(t.TempDir(), "quill.db"),
		MaxOpenConns: 4,
		Migrate:      true,
	}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = b.Close() })

	require.NotNil(t, b.DB)
	assert.Equal(t, 4, b.DB.Stats().MaxOpenConnections)

	post := domain.NewPost("hello")
	require.NoError(t, b.Posts.Save(ctx, post))
	found, err := b.Posts.Find(ctx, post.ID())
	require.NoError(t, err)
	assert.Equal(t, "hello", found.Content())
}

func TestOpenUnsupportedDriver(t *testing.T) {
	_, err := backend.Open(context.Background(), config.DatabaseConfig{Driver: "mysql"}, nil)
	assert.ErrorContains(t, err, "unsupported database driver")
}

func TestOpenSQLiteRequiresPath(t *testing.T) {
	_, err := backend.Open(context.Background(), config.DatabaseConfig{Driver: config.DriverSQLite}, nil)
	assert.Error(t, err)
}
