package gateways

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// PathFinder resolves descriptor paths that may contain glob patterns,
// e.g. an extracted archive whose top-level directory carries a build number
type PathFinder struct{}

// NewPathFinder creates a new path finder
func NewPathFinder() *PathFinder {
	return &PathFinder{}
}

// IsPattern reports whether path contains glob metacharacters
func (f *PathFinder) IsPattern(path string) bool {
	return strings.ContainsAny(path, "*?[")
}

// Resolve returns the path itself when it is not a pattern, otherwise the
// lexically last match (newest version for versioned directory names)
func (f *PathFinder) Resolve(pattern string) (string, error) {
	if !f.IsPattern(pattern) {
		return pattern, nil
	}

	matches, err := filepath.Glob(pattern)
	if err != nil {
		return "", fmt.Errorf("failed to glob pattern %s: %w", pattern, err)
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("no match for %s", pattern)
	}

	sort.Strings(matches)
	return matches[len(matches)-1], nil
}
