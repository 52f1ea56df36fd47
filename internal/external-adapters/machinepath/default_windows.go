//go:build windows

package machinepath

import "github.com/ochairo/ocrboot/internal/domain/interfaces/gateways"

// NewMachineStore returns the machine PATH store for this OS.
// The profile arguments are unused on Windows.
func NewMachineStore(_, _ string) gateways.PathStore {
	return NewRegistryStore()
}
