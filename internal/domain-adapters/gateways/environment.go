package gateways

import (
	"os"
	"sort"
	"strings"
)

// ProcessEnvironment is the real process environment
type ProcessEnvironment struct{}

// NewProcessEnvironment creates a process environment gateway
func NewProcessEnvironment() *ProcessEnvironment {
	return &ProcessEnvironment{}
}

// Getenv returns the process value of key
func (e *ProcessEnvironment) Getenv(key string) string {
	return os.Getenv(key)
}

// Setenv sets a process variable, visible to every child started afterwards
func (e *ProcessEnvironment) Setenv(key, value string) error {
	return os.Setenv(key, value)
}

// Environ returns the process environment as KEY=value pairs
func (e *ProcessEnvironment) Environ() []string {
	return os.Environ()
}

// MapEnvironment is an in-memory environment, for runs that must not
// touch the real process environment
type MapEnvironment struct {
	vars map[string]string
}

// NewMapEnvironment creates an environment seeded from KEY=value pairs
func NewMapEnvironment(pairs []string) *MapEnvironment {
	m := &MapEnvironment{vars: make(map[string]string, len(pairs))}
	for _, kv := range pairs {
		if key, value, ok := strings.Cut(kv, "="); ok && key != "" {
			m.vars[key] = value
		}
	}
	return m
}

// Getenv returns the value of key
func (m *MapEnvironment) Getenv(key string) string {
	return m.vars[key]
}

// Setenv sets key
func (m *MapEnvironment) Setenv(key, value string) error {
	m.vars[key] = value
	return nil
}

// Environ returns sorted KEY=value pairs
func (m *MapEnvironment) Environ() []string {
	out := make([]string, 0, len(m.vars))
	for k, v := range m.vars {
		out = append(out, k+"="+v)
	}
	sort.Strings(out)
	return out
}
