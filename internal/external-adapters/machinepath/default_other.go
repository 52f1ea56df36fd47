//go:build !windows

package machinepath

import "github.com/ochairo/ocrboot/internal/domain/interfaces/gateways"

// NewMachineStore returns the machine PATH store for this OS
func NewMachineStore(profile, basePath string) gateways.PathStore {
	return NewProfileStore(profile, basePath)
}
