// Package entities defines core domain models and data structures.
package entities

// Artifact represents a downloaded installation artifact
type Artifact struct {
	Name    string
	Version string
	URL     string
	Path    string
	Type    string // "archive", "installer"
}
