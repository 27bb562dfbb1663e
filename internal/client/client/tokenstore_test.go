package client

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "token")
	s := NewTokenStore(path)

	_, err := s.Load()
	assert.ErrorIs(t, err, ErrNoToken)

	require.NoError(t, s.Save("abc"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	tok, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, "abc", tok)

	require.NoError(t, s.Save("def"))
	tok, err = s.Load()
	require.NoError(t, err)
	assert.Equal(t, "def", tok)

	require.NoError(t, s.Clear())
	require.NoError(t, s.Clear())
	_, err = s.Load()
	assert.ErrorIs(t, err, ErrNoToken)
}

func TestTokenStore_TightensExistingMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0o644))

	require.NoError(t, NewTokenStore(path).Save("new"))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestTokenStore_BlankFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	require.NoError(t, os.WriteFile(path, []byte("  \n"), 0o600))

	_, err := NewTokenStore(path).Load()
	assert.ErrorIs(t, err, ErrNoToken)
}
