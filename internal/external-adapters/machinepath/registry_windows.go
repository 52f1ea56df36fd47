//go:build windows

package machinepath

import (
	"errors"
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
	"golang.org/x/sys/windows/registry"
)

const environmentKey = `SYSTEM\CurrentControlSet\Control\Session Manager\Environment`

const (
	hwndBroadcast          = 0xffff
	wmSettingChange        = 0x001A
	smtoAbortIfHung        = 0x0002
	settingChangeTimeoutMs = 5000
)

var procSendMessageTimeoutW = windows.NewLazySystemDLL("user32.dll").NewProc("SendMessageTimeoutW")

// RegistryStore reads and appends the machine-wide Path value in the registry.
// Writing requires an elevated process.
type RegistryStore struct {
	notify func() error
}

// NewRegistryStore creates a registry-backed store that tells running
// programs about every Path change
func NewRegistryStore() *RegistryStore {
	return &RegistryStore{notify: broadcastEnvironmentChange}
}

// Separator returns the Windows list separator
func (s *RegistryStore) Separator() string {
	return ";"
}

// ReadPath returns the raw machine Path value
func (s *RegistryStore) ReadPath() (string, error) {
	k, err := registry.OpenKey(registry.LOCAL_MACHINE, environmentKey, registry.QUERY_VALUE)
	if err != nil {
		return "", fmt.Errorf("failed to open environment key: %w", err)
	}
	defer func() { _ = k.Close() }()

	v, _, err := k.GetStringValue("Path")
	if err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read machine Path: %w", err)
	}
	return v, nil
}

// AppendDir appends dir to the machine Path, keeping REG_EXPAND_SZ
func (s *RegistryStore) AppendDir(dir string) error {
	k, err := registry.OpenKey(registry.LOCAL_MACHINE, environmentKey, registry.QUERY_VALUE|registry.SET_VALUE)
	if err != nil {
		return fmt.Errorf("failed to open environment key for writing: %w", err)
	}
	defer func() { _ = k.Close() }()

	current, _, err := k.GetStringValue("Path")
	if err != nil && !errors.Is(err, registry.ErrNotExist) {
		return fmt.Errorf("failed to read machine Path: %w", err)
	}

	next := dir
	if current != "" {
		next = current + s.Separator() + dir
	}
	if err := k.SetExpandStringValue("Path", next); err != nil {
		return fmt.Errorf("failed to write machine Path: %w", err)
	}
	if s.notify != nil {
		// The value is persisted; new shells pick it up even if the broadcast fails
		_ = s.notify()
	}
	return nil
}

// broadcastEnvironmentChange sends WM_SETTINGCHANGE so Explorer and open
// shells reload the environment block
func broadcastEnvironmentChange() error {
	param, err := windows.UTF16PtrFromString("Environment")
	if err != nil {
		return err
	}
	var result uintptr
	r, _, callErr := procSendMessageTimeoutW.Call(
		hwndBroadcast,
		wmSettingChange,
		0,
		uintptr(unsafe.Pointer(param)),
		smtoAbortIfHung,
		settingChangeTimeoutMs,
		uintptr(unsafe.Pointer(&result)),
	)
	if r == 0 {
		return fmt.Errorf("WM_SETTINGCHANGE broadcast failed: %w", callErr)
	}
	return nil
}
