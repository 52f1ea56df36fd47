// Package tesseract checks the Tesseract library in-process after installation.
//
// The cgo-backed check is compiled only with the "gosseract" build tag, which
// also requires libtesseract development headers:
//
//	go build -tags gosseract ./cmd/ocrboot
package tesseract

import "errors"

// ErrUnavailable is returned when the binary was built without the in-process check
var ErrUnavailable = errors.New("tesseract library check not compiled in (build with -tags gosseract)")

// Probe checks that the Tesseract library loads and knows a language
type Probe struct {
	language string
}

// NewProbe creates a probe for the given language, "eng" when empty
func NewProbe(language string) *Probe {
	if language == "" {
		language = "eng"
	}
	return &Probe{language: language}
}

// Language returns the language checked by the probe
func (p *Probe) Language() string {
	return p.language
}
