package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// ArtifactStore persists generated audio artifacts as standalone files under
// a dedicated directory, one WAV file per task identifier. It holds no state
// beyond the directory path and is safe for concurrent use; distinct task IDs
// never collide on the same file.
type ArtifactStore struct {
	dir string
}

// NewArtifactStore creates the artifact directory if needed and returns a
// store rooted there.
func NewArtifactStore(dir string) (*ArtifactStore, error) {
	if dir == "" {
		return nil, errors.New("artifact directory cannot be empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create artifact directory: %w", err)
	}
	return &ArtifactStore{dir: dir}, nil
}

// Dir returns the root directory of the store.
func (s *ArtifactStore) Dir() string {
	return s.dir
}

// Save writes the artifact for the given task and returns its path.
func (s *ArtifactStore) Save(id uuid.UUID, data []byte) (string, error) {
	path := s.Path(id)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write artifact: %w", err)
	}
	return path, nil
}

// Path returns the location the artifact for the given task would occupy,
// whether or not it exists yet.
func (s *ArtifactStore) Path(id uuid.UUID) string {
	return filepath.Join(s.dir, id.String()+".wav")
}

// Exists reports whether the artifact for the given task is present on disk.
func (s *ArtifactStore) Exists(id uuid.UUID) bool {
	_, err := os.Stat(s.Path(id))
	return err == nil
}

// Remove deletes the artifact for the given task. Removing an artifact that
// is already gone is not an error, so cleanup sweeps stay idempotent.
func (s *ArtifactStore) Remove(id uuid.UUID) error {
	err := os.Remove(s.Path(id))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove artifact: %w", err)
	}
	return nil
}
