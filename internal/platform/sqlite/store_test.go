package sqlite

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/quill-api/internal/domain"
	"github.com/phrazzld/quill-api/internal/store"
	"github.com/phrazzld/quill-api/internal/store/storetest"
)

// openTestDB opens a migrated database file in a temp dir. A file is used
// instead of ":memory:" because every store call takes its own connection.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()

	db, err := Open(ctx, filepath.Join(t.TempDir(), "quill.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, Migrate(ctx, db, nil))
	return db
}

func TestUserStore_Contract(t *testing.T) {
	storetest.RunUserStoreTests(t, NewUserStore(openTestDB(t), nil))
}

func TestPostStore_Contract(t *testing.T) {
	storetest.RunPostStoreTests(t, NewPostStore(openTestDB(t), nil))
}

func TestUserStore_ScenarioCreateThenFind(t *testing.T) {
	ctx := context.Background()
	users := NewUserStore(openTestDB(t), nil)

	user := domain.NewUser("elliot")
	require.NoError(t, users.Save(ctx, user))

	found, err := users.FindByNickname(ctx, "elliot")
	require.NoError(t, err)
	assert.Equal(t, user.ID().String(), found.ID().String())
}

func TestUserStore_PrimaryKeyCollisionIsOpaque(t *testing.T) {
	ctx := context.Background()
	users := NewUserStore(openTestDB(t), nil)

	first := domain.NewUser("elliot")
	require.NoError(t, users.Save(ctx, first))

	err := users.Save(ctx, domain.RehydrateUser(first.ID(), "darlene"))
	require.Error(t, err)
	assert.True(t, store.IsStoreError(err))
	assert.False(t, store.IsDuplicateError(err))
}

func TestStores_ClosedDatabase(t *testing.T) {
	db := openTestDB(t)
	users := NewUserStore(db, nil)
	posts := NewPostStore(db, nil)
	require.NoError(t, db.Close())

	_, err := users.Find(context.Background(), domain.NewID())
	assert.True(t, store.IsStoreError(err))
	assert.False(t, store.IsNotFoundError(err))

	err = posts.Save(context.Background(), domain.NewPost("hello"))
	assert.True(t, store.IsStoreError(err))
}

func TestStores_MissingSchema(t *testing.T) {
	db, err := Open(context.Background(), filepath.Join(t.TempDir(), "empty.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = NewPostStore(db, nil).Find(context.Background(), domain.NewID())
	assert.True(t, store.IsStoreError(err), "missing table must not read as not found")
}

func TestOpen_RejectsUnsupportedPaths(t *testing.T) {
	cases := map[string]string{
		"empty":            "  ",
		"memory":           ":memory:",
		"uri memory":       "file::memory:?cache=shared",
		"uri file":         "file:quill.db",
		"query parameters": filepath.Join(t.TempDir(), "quill.db") + "?_pragma=foreign_keys(0)",
	}
	for name, path := range cases {
		t.Run(name, func(t *testing.T) {
			db, err := Open(context.Background(), path)
			assert.Error(t, err)
			assert.Nil(t, db)
		})
	}
}
