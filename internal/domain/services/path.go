package services

import "strings"

// PathContains reports whether dir already appears in the PATH value.
// This is a plain substring check, matching how installers traditionally test it.
func PathContains(current, dir string) bool {
	if dir == "" {
		return true
	}
	return strings.Contains(current, dir)
}

// AppendPath appends dir to a PATH value unless it is already contained.
// The second result reports whether the value changed.
func AppendPath(current, dir, sep string) (string, bool) {
	if PathContains(current, dir) {
		return current, false
	}
	if current == "" {
		return dir, true
	}
	if strings.HasSuffix(current, sep) {
		return current + dir, true
	}
	return current + sep + dir, true
}

// PrependPath puts dir first in a PATH value, dropping an exact duplicate entry
func PrependPath(current, dir, sep string) string {
	if current == "" {
		return dir
	}
	parts := strings.Split(current, sep)
	out := make([]string, 0, len(parts)+1)
	out = append(out, dir)
	for _, p := range parts {
		if p == dir || p == "" {
			continue
		}
		out = append(out, p)
	}
	return strings.Join(out, sep)
}
