package services

import "fmt"

// Platform identifies an OS/architecture pair in the manifest
type Platform string

// Platforms the default manifest knows about
const (
	PlatformWindowsAMD64 Platform = "windows-amd64"
	PlatformLinuxAMD64   Platform = "linux-amd64"
	PlatformLinuxARM64   Platform = "linux-arm64"
	PlatformDarwinAMD64  Platform = "darwin-amd64"
	PlatformDarwinARM64  Platform = "darwin-arm64"
)

// DetectPlatform maps Go's GOOS/GOARCH to a manifest platform key
func DetectPlatform(goos, goarch string) Platform {
	archMap := map[string]string{
		"x86_64":  "amd64",
		"aarch64": "arm64",
	}
	if mapped, ok := archMap[goarch]; ok {
		goarch = mapped
	}
	return Platform(fmt.Sprintf("%s-%s", goos, goarch))
}

// IsWindows reports whether the platform uses Windows semantics
func (p Platform) IsWindows() bool {
	return len(p) >= 7 && p[:7] == "windows"
}

// ExeSuffix returns the executable suffix for the platform
func (p Platform) ExeSuffix() string {
	if p.IsWindows() {
		return ".exe"
	}
	return ""
}
