package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewArtifactStoreCreatesDirectory(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "nested", "audio")

	s, err := NewArtifactStore(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, s.Dir())
	assert.DirExists(t, dir)
}

func TestNewArtifactStoreRejectsEmptyDir(t *testing.T) {
	t.Parallel()

	s, err := NewArtifactStore("")
	assert.Error(t, err)
	assert.Nil(t, s)
}

func TestSaveAndExists(t *testing.T) {
	t.Parallel()

	s, err := NewArtifactStore(t.TempDir())
	require.NoError(t, err)

	id := uuid.New()
	assert.False(t, s.Exists(id))

	path, err := s.Save(id, []byte("wav bytes"))
	require.NoError(t, err)
	assert.Equal(t, s.Path(id), path)
	assert.True(t, s.Exists(id))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("wav bytes"), data)
}

func TestPathIsKeyedByTaskID(t *testing.T) {
	t.Parallel()

	s, err := NewArtifactStore(t.TempDir())
	require.NoError(t, err)

	a, b := uuid.New(), uuid.New()
	assert.NotEqual(t, s.Path(a), s.Path(b))
	assert.Equal(t, a.String()+".wav", filepath.Base(s.Path(a)))
}

func TestRemoveIsIdempotent(t *testing.T) {
	t.Parallel()

	s, err := NewArtifactStore(t.TempDir())
	require.NoError(t, err)

	id := uuid.New()
	_, err = s.Save(id, []byte("wav bytes"))
	require.NoError(t, err)

	require.NoError(t, s.Remove(id))
	assert.False(t, s.Exists(id))

	// Removing an artifact that is already gone is silently ignored.
	assert.NoError(t, s.Remove(id))
	assert.NoError(t, s.Remove(uuid.New()))
}
