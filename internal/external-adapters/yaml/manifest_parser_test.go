package yaml

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ochairo/ocrboot/internal/domain/entities"
)

func TestManifestParser_Parse_Valid(t *testing.T) {
	yamlContent := `
name: test
platforms:
  linux-amd64:
    - name: poppler
      version: "24.08.0"
      detect:
        path: "{tools}/poppler/bin/pdftoppm"
      install:
        method: archive
        url: "https://example.com/poppler-{version}.tar.gz"
        sha256: abc123
        destination: "{tools}/poppler"
        strip_root: true
        timeout_minutes: 5
      path_dir: "{tools}/poppler/bin"
      smoke:
        command: pdftoppm
        args: ["-v"]
        expect: "pdftoppm version"
    - name: requirements
      detect:
        path: "{venv}/.requirements-installed"
      install:
        method: command
        command: ["{venv}/bin/python", "-m", "pip", "install", "-r", "requirements.txt"]
        stamp: "{venv}/.requirements-installed"
        signature_url: "https://example.com/requirements.txt.asc"
        gpg_key_file: "{root}/keys/requirements.asc"
`

	parser := NewManifestParser()
	m, err := parser.Parse([]byte(yamlContent))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if m.Name != "test" {
		t.Errorf("Name = %q, want %q", m.Name, "test")
	}
	descs := m.Platforms["linux-amd64"]
	if len(descs) != 2 {
		t.Fatalf("len(descs) = %d, want 2", len(descs))
	}

	p := descs[0]
	if p.Name != "poppler" || p.Version != "24.08.0" {
		t.Errorf("descriptor = %s@%s, want poppler@24.08.0", p.Name, p.Version)
	}
	if p.Install.Method != entities.InstallArchive {
		t.Errorf("Install.Method = %q, want %q", p.Install.Method, entities.InstallArchive)
	}
	if !p.Install.StripRoot {
		t.Error("Install.StripRoot = false, want true")
	}
	if p.Install.TimeoutMins != 5 {
		t.Errorf("Install.TimeoutMins = %d, want 5", p.Install.TimeoutMins)
	}
	if p.PathDir != "{tools}/poppler/bin" {
		t.Errorf("PathDir = %q", p.PathDir)
	}
	if p.Smoke.Expect != "pdftoppm version" || len(p.Smoke.Args) != 1 {
		t.Errorf("Smoke = %+v", p.Smoke)
	}

	r := descs[1]
	if r.Install.Stamp != "{venv}/.requirements-installed" || r.Detect.Path != r.Install.Stamp {
		t.Errorf("requirements stamp = %q, detect = %q", r.Install.Stamp, r.Detect.Path)
	}
	if r.Install.GPGKeyFile != "{root}/keys/requirements.asc" || !r.Install.HasSignature() {
		t.Errorf("requirements signature config = %+v", r.Install)
	}
	if len(r.Install.Command) != 7 {
		t.Errorf("Install.Command = %v", r.Install.Command)
	}
}

func TestManifestParser_Parse_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "no platforms",
			yaml:    "name: empty\n",
			wantErr: "at least one platform",
		},
		{
			name: "missing name",
			yaml: `
platforms:
  linux-amd64:
    - install:
        method: command
        command: ["true"]
`,
			wantErr: "dependency must have a name",
		},
		{
			name: "unknown method",
			yaml: `
platforms:
  linux-amd64:
    - name: x
      install:
        method: magic
`,
			wantErr: "unknown install method",
		},
		{
			name: "archive without destination",
			yaml: `
platforms:
  linux-amd64:
    - name: x
      install:
        method: archive
        url: https://example.com/x.zip
`,
			wantErr: "needs url and destination",
		},
		{
			name: "installer without url",
			yaml: `
platforms:
  windows-amd64:
    - name: x
      install:
        method: installer
`,
			wantErr: "needs url",
		},
		{
			name: "script without body",
			yaml: `
platforms:
  linux-amd64:
    - name: x
      install:
        method: script
`,
			wantErr: "needs script",
		},
		{
			name: "signature without keys",
			yaml: `
platforms:
  linux-amd64:
    - name: x
      install:
        method: archive
        url: https://example.com/x.zip
        destination: /opt/x
        signature_url: https://example.com/x.zip.asc
`,
			wantErr: "requires gpg_keys_url or gpg_key_file",
		},
		{
			name: "missing detect",
			yaml: `
platforms:
  linux-amd64:
    - name: requirements
      install:
        method: command
        command: ["pip", "install", "-r", "requirements.txt"]
`,
			wantErr: "needs a detect path or command",
		},
		{
			name: "smoke without expect",
			yaml: `
platforms:
  linux-amd64:
    - name: x
      install:
        method: command
        command: ["true"]
      smoke:
        command: x
`,
			wantErr: "expected output",
		},
		{
			name: "duplicate",
			yaml: `
platforms:
  linux-amd64:
    - name: x
      detect: {command: x}
      install: {method: command, command: ["true"]}
    - name: x
      detect: {command: x}
      install: {method: command, command: ["true"]}
`,
			wantErr: "duplicate dependency",
		},
		{
			name:    "invalid yaml",
			yaml:    "invalid: yaml: content: [",
			wantErr: "failed to parse YAML",
		},
	}

	parser := NewManifestParser()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parser.Parse([]byte(tt.yaml))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestManifestParser_ParseFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "manifest.yml")
	content := `
platforms:
  darwin-arm64:
    - name: tesseract
      detect: {command: tesseract}
      install: {method: script, script: "brew install tesseract"}
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write manifest: %v", err)
	}

	m, err := NewManifestParser().ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile() error = %v", err)
	}
	if got := m.Platforms["darwin-arm64"][0].Detect.Command; got != "tesseract" {
		t.Errorf("Detect.Command = %q, want tesseract", got)
	}

	if _, err := NewManifestParser().ParseFile(filepath.Join(dir, "missing.yml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestDefaultManifest_Valid(t *testing.T) {
	m, err := NewManifestParser().Parse(DefaultManifest())
	if err != nil {
		t.Fatalf("embedded manifest invalid: %v", err)
	}

	for _, platform := range []string{"windows-amd64", "linux-amd64", "linux-arm64", "darwin-amd64", "darwin-arm64"} {
		descs, ok := m.Platforms[platform]
		if !ok {
			t.Errorf("platform %s missing", platform)
			continue
		}
		var names []string
		for _, d := range descs {
			names = append(names, d.Name)
		}
		if got := strings.Join(names, ","); got != "poppler,tesseract,venv,requirements" {
			t.Errorf("%s order = %s", platform, got)
		}
	}

	for platform, descs := range m.Platforms {
		for _, d := range descs {
			if !d.Detect.HasPredicate() {
				t.Errorf("%s/%s has no detect predicate", platform, d.Name)
			}
			if d.Install.Stamp != "" && d.Install.Stamp != d.Detect.Path {
				t.Errorf("%s/%s stamp %q is not its detect path %q", platform, d.Name, d.Install.Stamp, d.Detect.Path)
			}
		}
	}

	win := m.Platforms["windows-amd64"]
	if win[0].Install.Method != entities.InstallArchive || win[0].PathDir == "" {
		t.Errorf("windows poppler = %+v", win[0].Install)
	}
	if !win[1].RequiresAdmin || win[1].Install.Method != entities.InstallInstaller {
		t.Errorf("windows tesseract should be an admin installer, got %+v", win[1])
	}
}
