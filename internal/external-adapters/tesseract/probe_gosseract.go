//go:build gosseract

package tesseract

import (
	"fmt"

	"github.com/otiai10/gosseract/v2"
)

// Available reports whether the in-process check is compiled in
func (p *Probe) Available() bool {
	return true
}

// Check loads the library, selects the language and returns the library version
func (p *Probe) Check() (string, error) {
	client := gosseract.NewClient()
	defer func() { _ = client.Close() }()

	if err := client.SetLanguage(p.language); err != nil {
		return "", fmt.Errorf("failed to set language %q: %w", p.language, err)
	}
	return client.Version(), nil
}
