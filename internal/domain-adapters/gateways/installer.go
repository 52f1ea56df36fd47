package gateways

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ochairo/ocrboot/internal/domain/entities"
	"github.com/ochairo/ocrboot/internal/domain/interfaces"
)

// Installer performs a descriptor's install step
type Installer struct {
	downloader *Downloader
	runner     *CommandRunner
	logger     interfaces.Logger
}

// NewInstaller creates an installer
func NewInstaller(downloader *Downloader, runner *CommandRunner, logger interfaces.Logger) *Installer {
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}
	return &Installer{downloader: downloader, runner: runner, logger: logger}
}

// Install runs the install method and then writes the descriptor's stamp file,
// if any. artifact is nil for methods without a download.
func (i *Installer) Install(ctx context.Context, desc *entities.Descriptor, artifact *entities.Artifact) error {
	if err := i.install(ctx, desc, artifact); err != nil {
		return err
	}
	if desc.Install.Stamp != "" {
		return writeStamp(desc)
	}
	return nil
}

func (i *Installer) install(ctx context.Context, desc *entities.Descriptor, artifact *entities.Artifact) error {
	var timeout time.Duration
	if desc.Install.TimeoutMins > 0 {
		timeout = time.Duration(desc.Install.TimeoutMins) * time.Minute
	}

	switch desc.Install.Method {
	case entities.InstallArchive:
		if artifact == nil {
			return fmt.Errorf("%s: no artifact to extract", desc.Name)
		}
		if desc.Install.Destination == "" {
			return fmt.Errorf("%s: archive install needs a destination", desc.Name)
		}
		return i.downloader.ExtractArchive(artifact.Path, desc.Install.Destination, desc.Install.StripRoot)

	case entities.InstallInstaller:
		if artifact == nil {
			return fmt.Errorf("%s: no installer downloaded", desc.Name)
		}
		//nolint:gosec // G302: downloaded installer must be executable
		if err := os.Chmod(artifact.Path, 0750); err != nil {
			return fmt.Errorf("failed to make installer executable: %w", err)
		}
		return check(desc.Name, "installer", i.runner.ExecuteCommand(ctx, ExecuteConfig{
			Name:        artifact.Path,
			Args:        desc.Install.Args,
			Timeout:     timeout,
			Description: desc.Name + " installer",
		}))

	case entities.InstallCommand:
		if len(desc.Install.Command) == 0 {
			return fmt.Errorf("%s: empty install command", desc.Name)
		}
		return check(desc.Name, "install command", i.runner.ExecuteCommand(ctx, ExecuteConfig{
			Name:        desc.Install.Command[0],
			Args:        desc.Install.Command[1:],
			Timeout:     timeout,
			Description: desc.Name + " install",
		}))

	case entities.InstallScript:
		if strings.TrimSpace(desc.Install.Script) == "" {
			return fmt.Errorf("%s: empty install script", desc.Name)
		}
		return check(desc.Name, "install script", i.runner.ExecuteScript(ctx, ExecuteConfig{
			Script:      desc.Install.Script,
			Timeout:     timeout,
			Description: desc.Name + " install",
		}))

	default:
		return fmt.Errorf("%s: unknown install method %q", desc.Name, desc.Install.Method)
	}
}

func writeStamp(desc *entities.Descriptor) error {
	//nolint:gosec // G301: stamp lives next to the installed files
	if err := os.MkdirAll(filepath.Dir(desc.Install.Stamp), 0755); err != nil {
		return fmt.Errorf("%s: failed to create stamp directory: %w", desc.Name, err)
	}
	content := fmt.Sprintf("%s %s installed %s\n", desc.Name, desc.Version, time.Now().UTC().Format(time.RFC3339))
	if err := os.WriteFile(desc.Install.Stamp, []byte(content), 0600); err != nil {
		return fmt.Errorf("%s: failed to write stamp: %w", desc.Name, err)
	}
	return nil
}

func check(name, what string, result *ExecuteResult) error {
	if result.Success {
		return nil
	}
	return fmt.Errorf("%s %s failed (exit %d): %w\nStderr: %s",
		name, what, result.ExitCode, result.Error, strings.TrimSpace(result.Stderr))
}
