// Package storetest provides the behavioural checks every store.UserStore
// and store.PostStore implementation must pass. Backend packages call the
// Run functions from their own tests.
package storetest

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/quill-api/internal/domain"
	"github.com/phrazzld/quill-api/internal/store"
)

// UniqueNickname returns a nickname that will not collide with rows left
// behind by earlier runs against a shared database.
func UniqueNickname(prefix string) string {
	return prefix + "-" + uuid.NewString()[:8]
}

// RunUserStoreTests exercises the UserStore contract against users.
func RunUserStoreTests(t *testing.T, users store.UserStore) {
	t.Helper()
	ctx := context.Background()

	t.Run("Save then Find returns the same user", func(t *testing.T) {
		user := domain.NewUser(UniqueNickname("elliot"))
		require.NoError(t, users.Save(ctx, user))

		found, err := users.Find(ctx, user.ID())
		require.NoError(t, err)
		assert.Equal(t, user.ID(), found.ID())
		assert.Equal(t, user.Nickname(), found.Nickname())
	})

	t.Run("Save then FindByNickname returns the same user", func(t *testing.T) {
		user := domain.NewUser(UniqueNickname("elliot"))
		require.NoError(t, users.Save(ctx, user))

		found, err := users.FindByNickname(ctx, user.Nickname())
		require.NoError(t, err)
		assert.Equal(t, user.ID(), found.ID())
		assert.True(t, found.ID().Valid())
	})

	t.Run("Find on a missing id is not found", func(t *testing.T) {
		found, err := users.Find(ctx, domain.NewID())
		assert.Nil(t, found)
		assert.ErrorIs(t, err, store.ErrUserNotFound)
		assert.True(t, store.IsNotFoundError(err))
		assert.False(t, store.IsStoreError(err))
	})

	t.Run("FindByNickname on a missing nickname is not found", func(t *testing.T) {
		found, err := users.FindByNickname(ctx, UniqueNickname("nobody"))
		assert.Nil(t, found)
		assert.ErrorIs(t, err, store.ErrUserNotFound)
		assert.False(t, store.IsStoreError(err))
	})

	t.Run("nickname lookup is an exact match", func(t *testing.T) {
		nickname := UniqueNickname("Mixed")
		require.NoError(t, users.Save(ctx, domain.NewUser(nickname)))

		_, err := users.FindByNickname(ctx, nickname[:len(nickname)-1])
		assert.ErrorIs(t, err, store.ErrUserNotFound)
	})

	t.Run("duplicate nickname is a named conflict", func(t *testing.T) {
		nickname := UniqueNickname("taken")
		first := domain.NewUser(nickname)
		require.NoError(t, users.Save(ctx, first))

		err := users.Save(ctx, domain.NewUser(nickname))
		require.Error(t, err)

		conflict, ok := store.AsNicknameExists(err)
		require.True(t, ok, "expected *NicknameExistsError, got %T: %v", err, err)
		assert.Equal(t, nickname, conflict.Nickname)
		assert.True(t, errors.Is(err, store.ErrNicknameExists))
		assert.False(t, store.IsStoreError(err))

		// The original row is untouched.
		found, err := users.FindByNickname(ctx, nickname)
		require.NoError(t, err)
		assert.Equal(t, first.ID(), found.ID())
	})

	t.Run("same nickname with a different id does not overwrite", func(t *testing.T) {
		nickname := UniqueNickname("keep")
		original := domain.NewUser(nickname)
		require.NoError(t, users.Save(ctx, original))

		_ = users.Save(ctx, domain.NewUser(nickname))

		found, err := users.Find(ctx, original.ID())
		require.NoError(t, err)
		assert.Equal(t, nickname, found.Nickname())
	})
}

// RunPostStoreTests exercises the PostStore contract against posts.
func RunPostStoreTests(t *testing.T, posts store.PostStore) {
	t.Helper()
	ctx := context.Background()

	t.Run("Save then Find returns the same post", func(t *testing.T) {
		post := domain.NewPost("hello world")
		require.NoError(t, posts.Save(ctx, post))

		found, err := posts.Find(ctx, post.ID())
		require.NoError(t, err)
		assert.Equal(t, post.ID(), found.ID())
		assert.Equal(t, "hello world", found.Content())
	})

	t.Run("empty content is stored as is", func(t *testing.T) {
		post := domain.NewPost("")
		require.NoError(t, posts.Save(ctx, post))

		found, err := posts.Find(ctx, post.ID())
		require.NoError(t, err)
		assert.Equal(t, "", found.Content())
	})

	t.Run("duplicate content is allowed", func(t *testing.T) {
		require.NoError(t, posts.Save(ctx, domain.NewPost("same")))
		require.NoError(t, posts.Save(ctx, domain.NewPost("same")))
	})

	t.Run("Find on a missing id is not found", func(t *testing.T) {
		found, err := posts.Find(ctx, domain.NewID())
		assert.Nil(t, found)
		assert.ErrorIs(t, err, store.ErrPostNotFound)
		assert.False(t, store.IsStoreError(err))
	})

	t.Run("raw ids from storage are not revalidated", func(t *testing.T) {
		// Version 1 id; the store must still round-trip it.
		raw, err := uuid.NewUUID()
		require.NoError(t, err)
		post := domain.RehydratePost(domain.IDFromRaw(raw), "legacy")
		require.NoError(t, posts.Save(ctx, post))

		found, err := posts.Find(ctx, post.ID())
		require.NoError(t, err)
		assert.Equal(t, post.ID(), found.ID())
		assert.False(t, found.ID().Valid())
	})
}
