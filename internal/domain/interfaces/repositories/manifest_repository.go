// Package repositories defines interfaces for data access layers.
package repositories

import (
	"context"

	"github.com/ochairo/ocrboot/internal/domain/entities"
)

// ManifestRepository defines the interface for accessing dependency descriptors
type ManifestRepository interface {
	// GetManifest loads the whole manifest
	GetManifest(ctx context.Context) (*entities.Manifest, error)

	// GetDescriptors returns the ordered descriptors for a platform
	GetDescriptors(ctx context.Context, platform string) ([]entities.Descriptor, error)
}
