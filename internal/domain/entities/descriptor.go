package entities

// Install methods supported by a Descriptor
const (
	InstallArchive   = "archive"   // download and extract a zip or tar.gz
	InstallInstaller = "installer" // download and run an installer executable
	InstallCommand   = "command"   // run a command, nothing downloaded
	InstallScript    = "script"    // run a shell script, nothing downloaded
)

// Manifest holds the dependency descriptors for every supported platform.
// Descriptor order inside a platform is the bootstrap order.
type Manifest struct {
	Name      string
	Platforms map[string][]Descriptor
}

// Descriptor describes how to detect, fetch, install and verify one external tool
type Descriptor struct {
	Name          string
	Version       string
	Description   string
	Detect        DetectConfig
	Install       InstallConfig
	PathDir       string // Directory registered into PATH, empty for none
	Smoke         SmokeTest
	RequiresAdmin bool
}

// DetectConfig is the detection predicate. Manifests must set at least one;
// a descriptor with neither is never considered present.
type DetectConfig struct {
	Path    string // File or directory that exists once installed
	Command string // Executable name looked up along PATH
}

// HasPredicate reports whether any detection predicate is configured
func (d DetectConfig) HasPredicate() bool {
	return d.Path != "" || d.Command != ""
}

// InstallConfig describes how a missing dependency gets installed
type InstallConfig struct {
	Method       string
	URL          string
	SHA256       string
	SignatureURL string
	GPGKeysURL   string
	GPGKeyFile   string // Local armored or binary public key, for offline trust
	Destination  string
	StripRoot    bool // Archive has a single top-level directory to drop
	Command      []string
	Script       string
	Args         []string
	TimeoutMins  int
	Stamp        string // File written after a successful install
}

// NeedsDownload reports whether the install method fetches an artifact
func (i InstallConfig) NeedsDownload() bool {
	return i.Method == InstallArchive || i.Method == InstallInstaller
}

// HasSignature reports whether a detached signature and a key source are configured
func (i InstallConfig) HasSignature() bool {
	return i.SignatureURL != "" && (i.GPGKeysURL != "" || i.GPGKeyFile != "")
}

// SmokeTest is a minimal invocation proving a tool responds as expected
type SmokeTest struct {
	Command string
	Args    []string
	Expect  string // Substring required in combined output
}

// IsZero reports whether no smoke test is configured
func (s SmokeTest) IsZero() bool {
	return s.Command == ""
}
