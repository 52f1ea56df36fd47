package gateways

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/ochairo/ocrboot/internal/domain/interfaces/gateways"
)

// ErrNotFound is returned by LookPath when no executable matches
var ErrNotFound = errors.New("executable file not found in PATH")

// Prober answers detection predicates against the injected environment
type Prober struct {
	env    gateways.Environment
	finder *PathFinder
	goos   string
}

// NewProber creates a new prober
func NewProber(env gateways.Environment) *Prober {
	return &Prober{env: env, finder: NewPathFinder(), goos: runtime.GOOS}
}

// PathExists reports whether a file or directory exists.
// Glob patterns match when at least one path matches.
func (p *Prober) PathExists(path string) bool {
	if path == "" {
		return false
	}
	resolved, err := p.finder.Resolve(path)
	if err != nil {
		return false
	}
	_, err = os.Stat(resolved)
	return err == nil
}

// CommandExists reports whether name resolves along the environment's PATH
func (p *Prober) CommandExists(name string) bool {
	_, err := LookPath(name, p.env.Getenv("PATH"), p.env.Getenv("PATHEXT"), p.goos)
	return err == nil
}

// LookPath searches pathList for an executable called name.
// Unlike exec.LookPath it takes the PATH value explicitly, so lookups follow
// PATH changes made through an injected Environment.
func LookPath(name, pathList, pathExt, goos string) (string, error) {
	if name == "" {
		return "", ErrNotFound
	}

	exts := []string{""}
	if goos == "windows" {
		exts = windowsExts(name, pathExt)
	}

	if strings.ContainsAny(name, `/\`) {
		if found, ok := findExecutable(name, exts, goos); ok {
			return found, nil
		}
		return "", ErrNotFound
	}

	sep := ":"
	if goos == "windows" {
		sep = ";"
	}
	for _, dir := range strings.Split(pathList, sep) {
		if dir == "" {
			continue
		}
		if found, ok := findExecutable(filepath.Join(dir, name), exts, goos); ok {
			return found, nil
		}
	}
	return "", ErrNotFound
}

func windowsExts(name, pathExt string) []string {
	if filepath.Ext(name) != "" {
		return []string{""}
	}
	if pathExt == "" {
		pathExt = ".COM;.EXE;.BAT;.CMD"
	}
	exts := []string{}
	for _, e := range strings.Split(strings.ToLower(pathExt), ";") {
		if e != "" {
			exts = append(exts, e)
		}
	}
	return exts
}

func findExecutable(base string, exts []string, goos string) (string, bool) {
	for _, ext := range exts {
		candidate := base + ext
		info, err := os.Stat(candidate)
		if err != nil || info.IsDir() {
			continue
		}
		if goos == "windows" || info.Mode()&0111 != 0 {
			return candidate, true
		}
	}
	return "", false
}
