// Package gateways defines interfaces for external service adapters.
package gateways

// Environment is the process environment seen by the bootstrapper.
// It is injected so provisioning logic never touches os.Getenv directly.
type Environment interface {
	Getenv(key string) string
	Setenv(key, value string) error
	Environ() []string
}

// PathStore is the persistent, machine-wide PATH.
// It is only ever appended to.
type PathStore interface {
	// ReadPath returns the current persisted PATH value
	ReadPath() (string, error)

	// AppendDir appends dir to the persisted PATH
	AppendDir(dir string) error

	// Separator returns the list separator used by the store
	Separator() string
}
