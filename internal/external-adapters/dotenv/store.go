// Package dotenv reads and writes the .env credentials file.
package dotenv

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/ochairo/ocrboot/internal/domain/entities"
)

// Store persists an EnvRecord at a fixed path
type Store struct {
	path string
}

// NewStore creates a store for the given .env path
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the file location
func (s *Store) Path() string {
	return s.path
}

// Exists reports whether the file is present
func (s *Store) Exists() bool {
	info, err := os.Stat(s.path)
	return err == nil && !info.IsDir()
}

// Write truncates the file and writes one KEY=value line per entry, in order.
// godotenv.Marshal is not used because it quotes values and sorts keys.
func (s *Store) Write(rec entities.EnvRecord) error {
	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	//nolint:gosec // G306: file holds API keys, owner-only permissions
	if err := os.WriteFile(s.path, []byte(rec.String()), 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", s.path, err)
	}
	return nil
}

// Read parses the file into a key/value map
func (s *Store) Read() (map[string]string, error) {
	values, err := godotenv.Read(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", entities.ErrConfigurationMissing, s.path)
		}
		return nil, fmt.Errorf("failed to read %s: %w", s.path, err)
	}
	return values, nil
}
