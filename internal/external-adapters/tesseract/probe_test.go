//go:build !gosseract

package tesseract

import (
	"errors"
	"testing"
)

func TestProbe_Stub(t *testing.T) {
	p := NewProbe("")
	if p.Language() != "eng" {
		t.Errorf("Language() = %q, want eng", p.Language())
	}
	if p.Available() {
		t.Error("Available() = true without gosseract tag")
	}
	if _, err := p.Check(); !errors.Is(err, ErrUnavailable) {
		t.Errorf("Check() error = %v, want ErrUnavailable", err)
	}
}
