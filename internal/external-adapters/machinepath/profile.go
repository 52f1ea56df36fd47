// Package machinepath persists PATH additions beyond the current process.
package machinepath

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const managedMarker = "# added by ocrboot"

// ProfileStore keeps PATH additions as export lines in a shell profile file.
// ReadPath reports the login PATH the store was created with followed by
// every directory the profile already adds.
type ProfileStore struct {
	profile  string
	basePath string
}

// NewProfileStore creates a store backed by the given profile file
func NewProfileStore(profile, basePath string) *ProfileStore {
	return &ProfileStore{profile: profile, basePath: basePath}
}

// Separator returns the Unix list separator
func (s *ProfileStore) Separator() string {
	return ":"
}

// ReadPath returns the effective persisted PATH
func (s *ProfileStore) ReadPath() (string, error) {
	dirs, err := s.managedDirs()
	if err != nil {
		return "", err
	}

	parts := make([]string, 0, len(dirs)+1)
	if s.basePath != "" {
		parts = append(parts, s.basePath)
	}
	parts = append(parts, dirs...)
	return strings.Join(parts, s.Separator()), nil
}

// AppendDir appends an export line for dir to the profile
func (s *ProfileStore) AppendDir(dir string) error {
	if strings.ContainsAny(dir, "\"\n`$") {
		return fmt.Errorf("refusing to write unsafe directory %q to %s", dir, s.profile)
	}

	if err := os.MkdirAll(filepath.Dir(s.profile), 0o750); err != nil {
		return fmt.Errorf("failed to create profile directory: %w", err)
	}

	//nolint:gosec // G302/G304: user's own shell profile
	f, err := os.OpenFile(s.profile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", s.profile, err)
	}
	defer func() { _ = f.Close() }()

	line := fmt.Sprintf("export PATH=\"$PATH:%s\" %s\n", dir, managedMarker)
	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("failed to append to %s: %w", s.profile, err)
	}
	return nil
}

func (s *ProfileStore) managedDirs() ([]string, error) {
	//nolint:gosec // G304: profile path comes from configuration
	data, err := os.ReadFile(s.profile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", s.profile, err)
	}

	var dirs []string
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasSuffix(line, managedMarker) {
			continue
		}
		line = strings.TrimSpace(strings.TrimSuffix(line, managedMarker))
		line = strings.TrimPrefix(line, `export PATH="$PATH:`)
		line = strings.TrimSuffix(line, `"`)
		if line != "" {
			dirs = append(dirs, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", s.profile, err)
	}
	return dirs, nil
}
