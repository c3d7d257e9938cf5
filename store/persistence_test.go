package store

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStorage(t *testing.T) {
	fs := afero.NewMemMapFs()
	storage := NewFileStorage(fs, "/home/user/.cinemaxx/state")

	_, ok, err := storage.Read("favorites")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, storage.Write("favorites", []byte(`[]`)))

	data, ok, err := storage.Read("favorites")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `[]`, string(data))

	exists, err := afero.Exists(fs, "/home/user/.cinemaxx/state/favorites.json.tmp")
	require.NoError(t, err)
	assert.False(t, exists, "temporary file should be renamed away")

	require.NoError(t, storage.Write("favorites", []byte(`[{"id":1}]`)))
	data, _, err = storage.Read("favorites")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":1}]`, string(data))

	require.NoError(t, storage.Delete("favorites"))
	_, ok, err = storage.Read("favorites")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, storage.Delete("favorites"), "deleting a missing key is not an error")
}

func TestFileStorage_InvalidKey(t *testing.T) {
	storage := NewFileStorage(afero.NewMemMapFs(), "/state")

	for _, key := range []string{"", "..", "../etc/passwd", `a\b`} {
		_, _, err := storage.Read(key)
		assert.ErrorIs(t, err, ErrInvalidKey, key)
		assert.ErrorIs(t, storage.Write(key, nil), ErrInvalidKey, key)
		assert.ErrorIs(t, storage.Delete(key), ErrInvalidKey, key)
	}
}
