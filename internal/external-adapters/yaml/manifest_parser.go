// Package yaml provides YAML-based dependency manifest parsing and repository implementations.
package yaml

import (
	"fmt"
	"os"

	"github.com/ochairo/ocrboot/internal/domain/entities"
	"gopkg.in/yaml.v3"
)

// yamlManifest represents the raw YAML structure
type yamlManifest struct {
	Name      string                      `yaml:"name"`
	Platforms map[string][]yamlDescriptor `yaml:"platforms"`
}

type yamlDescriptor struct {
	Name          string      `yaml:"name"`
	Version       string      `yaml:"version"`
	Description   string      `yaml:"description"`
	Detect        yamlDetect  `yaml:"detect"`
	Install       yamlInstall `yaml:"install"`
	PathDir       string      `yaml:"path_dir"`
	Smoke         yamlSmoke   `yaml:"smoke"`
	RequiresAdmin bool        `yaml:"requires_admin"`
}

type yamlDetect struct {
	Path    string `yaml:"path"`
	Command string `yaml:"command"`
}

type yamlInstall struct {
	Method         string   `yaml:"method"`
	URL            string   `yaml:"url"`
	SHA256         string   `yaml:"sha256"`
	SignatureURL   string   `yaml:"signature_url"`
	GPGKeysURL     string   `yaml:"gpg_keys_url"`
	GPGKeyFile     string   `yaml:"gpg_key_file"`
	Destination    string   `yaml:"destination"`
	StripRoot      bool     `yaml:"strip_root"`
	Command        []string `yaml:"command"`
	Script         string   `yaml:"script"`
	Args           []string `yaml:"args"`
	TimeoutMinutes int      `yaml:"timeout_minutes"`
	Stamp          string   `yaml:"stamp"`
}

type yamlSmoke struct {
	Command string   `yaml:"command"`
	Args    []string `yaml:"args"`
	Expect  string   `yaml:"expect"`
}

// ManifestParser parses YAML dependency manifests
type ManifestParser struct{}

// NewManifestParser creates a new YAML parser
func NewManifestParser() *ManifestParser {
	return &ManifestParser{}
}

// ParseFile parses a YAML manifest file into a Manifest entity
func (p *ManifestParser) ParseFile(filePath string) (*entities.Manifest, error) {
	//nolint:gosec // G304: filePath is the configured manifest path
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filePath, err)
	}

	return p.Parse(data)
}

// Parse parses YAML bytes into a Manifest entity
func (p *ManifestParser) Parse(data []byte) (*entities.Manifest, error) {
	var ym yamlManifest
	if err := yaml.Unmarshal(data, &ym); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if len(ym.Platforms) == 0 {
		return nil, fmt.Errorf("manifest must define at least one platform")
	}

	m := &entities.Manifest{
		Name:      ym.Name,
		Platforms: make(map[string][]entities.Descriptor, len(ym.Platforms)),
	}
	for platform, descs := range ym.Platforms {
		seen := make(map[string]bool, len(descs))
		converted := make([]entities.Descriptor, 0, len(descs))
		for i, yd := range descs {
			d := convertDescriptor(yd)
			if err := validateDescriptor(d); err != nil {
				return nil, fmt.Errorf("%s[%d]: %w", platform, i, err)
			}
			if seen[d.Name] {
				return nil, fmt.Errorf("%s: duplicate dependency %s", platform, d.Name)
			}
			seen[d.Name] = true
			converted = append(converted, d)
		}
		m.Platforms[platform] = converted
	}

	return m, nil
}

func convertDescriptor(yd yamlDescriptor) entities.Descriptor {
	return entities.Descriptor{
		Name:        yd.Name,
		Version:     yd.Version,
		Description: yd.Description,
		Detect: entities.DetectConfig{
			Path:    yd.Detect.Path,
			Command: yd.Detect.Command,
		},
		Install: entities.InstallConfig{
			Method:       yd.Install.Method,
			URL:          yd.Install.URL,
			SHA256:       yd.Install.SHA256,
			SignatureURL: yd.Install.SignatureURL,
			GPGKeysURL:   yd.Install.GPGKeysURL,
			GPGKeyFile:   yd.Install.GPGKeyFile,
			Destination:  yd.Install.Destination,
			StripRoot:    yd.Install.StripRoot,
			Command:      yd.Install.Command,
			Script:       yd.Install.Script,
			Args:         yd.Install.Args,
			TimeoutMins:  yd.Install.TimeoutMinutes,
			Stamp:        yd.Install.Stamp,
		},
		PathDir: yd.PathDir,
		Smoke: entities.SmokeTest{
			Command: yd.Smoke.Command,
			Args:    yd.Smoke.Args,
			Expect:  yd.Smoke.Expect,
		},
		RequiresAdmin: yd.RequiresAdmin,
	}
}

func validateDescriptor(d entities.Descriptor) error {
	if d.Name == "" {
		return fmt.Errorf("dependency must have a name")
	}

	switch d.Install.Method {
	case entities.InstallArchive:
		if d.Install.URL == "" || d.Install.Destination == "" {
			return fmt.Errorf("%s: archive install needs url and destination", d.Name)
		}
	case entities.InstallInstaller:
		if d.Install.URL == "" {
			return fmt.Errorf("%s: installer install needs url", d.Name)
		}
	case entities.InstallCommand:
		if len(d.Install.Command) == 0 {
			return fmt.Errorf("%s: command install needs command", d.Name)
		}
	case entities.InstallScript:
		if d.Install.Script == "" {
			return fmt.Errorf("%s: script install needs script", d.Name)
		}
	default:
		return fmt.Errorf("%s: unknown install method %q", d.Name, d.Install.Method)
	}

	if d.Install.SignatureURL != "" && d.Install.GPGKeysURL == "" && d.Install.GPGKeyFile == "" {
		return fmt.Errorf("%s: signature_url requires gpg_keys_url or gpg_key_file", d.Name)
	}
	if !d.Smoke.IsZero() && d.Smoke.Expect == "" {
		return fmt.Errorf("%s: smoke test needs an expected output", d.Name)
	}
	if !d.Detect.HasPredicate() {
		return fmt.Errorf("%s: dependency needs a detect path or command", d.Name)
	}

	return nil
}
