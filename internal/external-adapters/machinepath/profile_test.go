package machinepath

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestProfileStore_ReadPath_NoProfile(t *testing.T) {
	store := NewProfileStore(filepath.Join(t.TempDir(), ".profile"), "/usr/bin:/bin")

	got, err := store.ReadPath()
	if err != nil {
		t.Fatalf("ReadPath() error = %v", err)
	}
	if got != "/usr/bin:/bin" {
		t.Errorf("ReadPath() = %q, want %q", got, "/usr/bin:/bin")
	}
}

func TestProfileStore_AppendDir(t *testing.T) {
	profile := filepath.Join(t.TempDir(), "home", ".profile")
	if err := os.MkdirAll(filepath.Dir(profile), 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(profile, []byte("alias ll='ls -l'\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	store := NewProfileStore(profile, "/usr/bin")
	if err := store.AppendDir("/opt/tools/poppler/bin"); err != nil {
		t.Fatalf("AppendDir() error = %v", err)
	}
	if err := store.AppendDir("/opt/tesseract"); err != nil {
		t.Fatalf("AppendDir() error = %v", err)
	}

	got, err := store.ReadPath()
	if err != nil {
		t.Fatalf("ReadPath() error = %v", err)
	}
	want := "/usr/bin:/opt/tools/poppler/bin:/opt/tesseract"
	if got != want {
		t.Errorf("ReadPath() = %q, want %q", got, want)
	}

	data, err := os.ReadFile(profile)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "alias ll='ls -l'\n") {
		t.Error("existing profile content was not preserved")
	}
	if !strings.Contains(string(data), `export PATH="$PATH:/opt/tesseract" `+managedMarker) {
		t.Errorf("profile missing export line:\n%s", data)
	}
}

func TestProfileStore_AppendDir_Unsafe(t *testing.T) {
	store := NewProfileStore(filepath.Join(t.TempDir(), ".profile"), "")

	for _, dir := range []string{`/opt/"x`, "/opt/$(rm -rf)", "/opt/a\nb", "/opt/`x`"} {
		if err := store.AppendDir(dir); err == nil {
			t.Errorf("AppendDir(%q) expected error", dir)
		}
	}
}

func TestProfileStore_Separator(t *testing.T) {
	if got := NewProfileStore("", "").Separator(); got != ":" {
		t.Errorf("Separator() = %q, want \":\"", got)
	}
}
