package credentials

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MubeenKhalid10/SwiftCare/internal/testutil"
)

func newTestFileStore(t *testing.T) (*FileStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "credentials.json")
	return NewFileStore(path), path
}

func TestFileStore(t *testing.T) {
	t.Run("missing file reads as empty", func(t *testing.T) {
		store, _ := newTestFileStore(t)

		assert.Empty(t, store.AccessToken())
		_, ok := store.User()
		assert.False(t, ok)
	})

	t.Run("survives a new store instance", func(t *testing.T) {
		store, path := newTestFileStore(t)
		user := testutil.TestUser()

		store.SetAccessToken("T1")
		store.SetUser(user)

		reopened := NewFileStore(path)
		assert.Equal(t, "T1", reopened.AccessToken())
		got, ok := reopened.User()
		require.True(t, ok)
		assert.Equal(t, user, got)
	})

	t.Run("corrupt file degrades to signed out", func(t *testing.T) {
		store, path := newTestFileStore(t)
		require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

		assert.Empty(t, store.AccessToken())
		_, ok := store.User()
		assert.False(t, ok)
	})

	t.Run("clear is idempotent and does not create the file", func(t *testing.T) {
		store, path := newTestFileStore(t)

		store.ClearAccessToken()
		store.ClearUser()
		store.ClearAccessToken()

		_, err := os.Stat(path)
		assert.True(t, os.IsNotExist(err), "clearing an empty store should not write a file")
	})

	t.Run("clearing the token keeps the user on disk", func(t *testing.T) {
		store, path := newTestFileStore(t)
		store.SetAccessToken("T1")
		store.SetUser(testutil.TestUser())

		store.ClearAccessToken()

		reopened := NewFileStore(path)
		assert.Empty(t, reopened.AccessToken())
		_, ok := reopened.User()
		assert.True(t, ok)
	})

	t.Run("file is written with owner-only permissions", func(t *testing.T) {
		store, path := newTestFileStore(t)
		store.SetAccessToken("T1")

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	})
}
