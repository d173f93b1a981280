package card

import (
	"fmt"
	"os"
	"path/filepath"
)

// OutputDir returns the artifact directory for a site root.
func OutputDir(siteRoot string) string {
	return filepath.Join(siteRoot, OutputSubdir)
}

// Store is the filesystem-as-cache contract: an artifact's presence on
// disk is the only record that generation happened. There is no
// manifest and no database behind it, so anything that deletes a file
// from the directory schedules a regeneration, and nothing else does.
type Store struct {
	dir string
}

// NewStore creates a store rooted at the artifact output directory.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the artifact output directory.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the artifact path for a key.
func (s *Store) Path(key string) string {
	return filepath.Join(s.dir, key+Ext)
}

// EnsureDir creates the output directory if it is missing.
func (s *Store) EnsureDir() error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	return nil
}

// Exists reports whether an artifact is already on disk.
func (s *Store) Exists(key string) bool {
	_, err := os.Stat(s.Path(key))
	return err == nil
}

// Create claims a key by creating an empty artifact file, failing with
// os.IsExist when the file is already there. The exclusive create makes
// claiming atomic across processes, which a stat-then-touch sequence
// is not.
func (s *Store) Create(key string) error {
	f, err := os.OpenFile(s.Path(key), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return err
	}
	return f.Close()
}

// Remove deletes an artifact so the next run regenerates it. Removing a
// missing artifact is not an error.
func (s *Store) Remove(key string) error {
	if err := os.Remove(s.Path(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove artifact: %w", err)
	}
	return nil
}
