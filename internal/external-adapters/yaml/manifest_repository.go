package yaml

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"sort"

	"github.com/ochairo/ocrboot/internal/domain/entities"
)

//go:embed default_manifest.yml
var defaultManifest []byte

// DefaultManifest returns the manifest compiled into the binary
func DefaultManifest() []byte {
	return defaultManifest
}

// ManifestRepository implements repositories.ManifestRepository using a YAML file.
// An empty path selects the embedded default manifest.
type ManifestRepository struct {
	manifestPath string
	parser       *ManifestParser
}

// NewManifestRepository creates a new YAML-based manifest repository
func NewManifestRepository(manifestPath string) *ManifestRepository {
	return &ManifestRepository{
		manifestPath: manifestPath,
		parser:       NewManifestParser(),
	}
}

// GetManifest loads and validates the manifest
func (r *ManifestRepository) GetManifest(_ context.Context) (*entities.Manifest, error) {
	if r.manifestPath == "" {
		return r.parser.Parse(defaultManifest)
	}

	if _, err := os.Stat(r.manifestPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("manifest not found: %s", r.manifestPath)
	}
	return r.parser.ParseFile(r.manifestPath)
}

// GetDescriptors returns the ordered descriptors for a platform
func (r *ManifestRepository) GetDescriptors(ctx context.Context, platform string) ([]entities.Descriptor, error) {
	m, err := r.GetManifest(ctx)
	if err != nil {
		return nil, err
	}

	descs, ok := m.Platforms[platform]
	if !ok {
		supported := make([]string, 0, len(m.Platforms))
		for p := range m.Platforms {
			supported = append(supported, p)
		}
		sort.Strings(supported)
		return nil, fmt.Errorf("platform %s not supported (manifest has %v)", platform, supported)
	}
	return descs, nil
}
