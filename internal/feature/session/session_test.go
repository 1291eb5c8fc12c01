package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")

	store, err := NewTokenStore(path)
	require.NoError(t, err)
	assert.Empty(t, store.Token())

	require.NoError(t, store.Save("abc123"))
	assert.Equal(t, "abc123", store.Token())

	// A fresh store picks the token up from disk.
	reopened, err := NewTokenStore(path)
	require.NoError(t, err)
	assert.Equal(t, "abc123", reopened.Token())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestTokenStoreTrimsWhitespace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	require.NoError(t, os.WriteFile(path, []byte("abc123\n"), 0o600))

	store, err := NewTokenStore(path)
	require.NoError(t, err)
	assert.Equal(t, "abc123", store.Token())
}

func TestTokenStoreClearRemovesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	store, err := NewTokenStore(path)
	require.NoError(t, err)
	require.NoError(t, store.Save("abc123"))

	require.NoError(t, store.Clear())
	assert.Empty(t, store.Token())
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	// Clearing an already-clear store is fine.
	require.NoError(t, store.Clear())
}

func TestTokenStoreWithoutPersistence(t *testing.T) {
	store, err := NewTokenStore("")
	require.NoError(t, err)
	require.NoError(t, store.Save("ephemeral"))
	assert.Equal(t, "ephemeral", store.Token())
	require.NoError(t, store.Clear())
	assert.Empty(t, store.Token())
}
