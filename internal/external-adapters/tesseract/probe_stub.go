//go:build !gosseract

package tesseract

// Available reports whether the in-process check is compiled in
func (p *Probe) Available() bool {
	return false
}

// Check always fails without the gosseract build tag
func (p *Probe) Check() (string, error) {
	return "", ErrUnavailable
}
