package yaml

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestManifestRepository_Default(t *testing.T) {
	repo := NewManifestRepository("")

	descs, err := repo.GetDescriptors(context.Background(), "windows-amd64")
	if err != nil {
		t.Fatalf("GetDescriptors() error = %v", err)
	}
	if len(descs) == 0 {
		t.Fatal("expected descriptors for windows-amd64")
	}
	if descs[0].Name != "poppler" {
		t.Errorf("first descriptor = %s, want poppler", descs[0].Name)
	}
}

func TestManifestRepository_UnsupportedPlatform(t *testing.T) {
	repo := NewManifestRepository("")

	_, err := repo.GetDescriptors(context.Background(), "plan9-386")
	if err == nil {
		t.Fatal("expected error for unsupported platform")
	}
	if !strings.Contains(err.Error(), "not supported") {
		t.Errorf("error = %q", err)
	}
}

func TestManifestRepository_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "deps.yml")
	content := `
name: custom
platforms:
  linux-amd64:
    - name: only
      detect: {command: only}
      install: {method: command, command: ["true"]}
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write manifest: %v", err)
	}

	repo := NewManifestRepository(path)
	m, err := repo.GetManifest(context.Background())
	if err != nil {
		t.Fatalf("GetManifest() error = %v", err)
	}
	if m.Name != "custom" {
		t.Errorf("Name = %q, want custom", m.Name)
	}

	descs, err := repo.GetDescriptors(context.Background(), "linux-amd64")
	if err != nil {
		t.Fatalf("GetDescriptors() error = %v", err)
	}
	if len(descs) != 1 || descs[0].Name != "only" {
		t.Errorf("descs = %+v", descs)
	}
}

func TestManifestRepository_MissingFile(t *testing.T) {
	repo := NewManifestRepository(filepath.Join(t.TempDir(), "nope.yml"))

	_, err := repo.GetManifest(context.Background())
	if err == nil || !strings.Contains(err.Error(), "manifest not found") {
		t.Errorf("error = %v, want manifest not found", err)
	}
}
