// Package orchestrators coordinates complex workflows across multiple domain services.
package orchestrators

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ochairo/ocrboot/internal/domain/entities"
	"github.com/ochairo/ocrboot/internal/domain/interfaces"
	"github.com/ochairo/ocrboot/internal/domain/interfaces/gateways"
	"github.com/ochairo/ocrboot/internal/domain/interfaces/repositories"
	domainservices "github.com/ochairo/ocrboot/internal/domain/interfaces/services"
	"github.com/ochairo/ocrboot/internal/domain/services"
)

// Downloader interface for downloading artifacts
type Downloader interface {
	DownloadArtifact(ctx context.Context, desc *entities.Descriptor, outputDir string) (*entities.Artifact, error)
}

// Installer interface for running a descriptor's install step
type Installer interface {
	Install(ctx context.Context, desc *entities.Descriptor, artifact *entities.Artifact) error
}

// Prober interface for detection predicates
type Prober interface {
	PathExists(path string) bool
	CommandExists(name string) bool
}

// OutputRunner interface for running smoke tests
type OutputRunner interface {
	Output(ctx context.Context, name string, args ...string) (string, error)
}

// EngineProbe is an optional in-process check of the installed OCR library
type EngineProbe interface {
	Available() bool
	Check() (string, error)
}

// BootstrapOrchestratorConfig holds configuration for the orchestrator
type BootstrapOrchestratorConfig struct {
	Platform    services.Platform
	Vars        services.TemplateVars
	DownloadDir string
	IsElevated  func() bool
	EngineProbe EngineProbe // nil or unavailable skips the library check
}

// BootstrapOrchestrator provisions every dependency of the platform in order
type BootstrapOrchestrator struct {
	repo       repositories.ManifestRepository
	downloader Downloader
	verifier   domainservices.VerificationService
	installer  Installer
	prober     Prober
	runner     OutputRunner
	env        gateways.Environment
	machine    gateways.PathStore
	config     BootstrapOrchestratorConfig
	logger     interfaces.Logger
}

// NewBootstrapOrchestrator creates a new bootstrap orchestrator
func NewBootstrapOrchestrator(
	repo repositories.ManifestRepository,
	downloader Downloader,
	verifier domainservices.VerificationService,
	installer Installer,
	prober Prober,
	runner OutputRunner,
	env gateways.Environment,
	machine gateways.PathStore,
	config BootstrapOrchestratorConfig,
	logger interfaces.Logger,
) *BootstrapOrchestrator {
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}
	if config.IsElevated == nil {
		config.IsElevated = func() bool { return false }
	}
	if config.DownloadDir == "" {
		config.DownloadDir = "downloads"
	}

	return &BootstrapOrchestrator{
		repo:       repo,
		downloader: downloader,
		verifier:   verifier,
		installer:  installer,
		prober:     prober,
		runner:     runner,
		env:        env,
		machine:    machine,
		config:     config,
		logger:     logger,
	}
}

// StepResult is the outcome of provisioning one dependency
type StepResult struct {
	Name               string
	AlreadyPresent     bool
	Installed          bool
	Artifact           *entities.Artifact
	MachinePathUpdated bool
	ProcessPathUpdated bool
	SmokeOutput        string
	Duration           time.Duration
	Error              error
}

// BootstrapResult contains the result of a bootstrap run
type BootstrapResult struct {
	Platform      services.Platform
	Steps         []StepResult
	EngineVersion string
	TotalDuration time.Duration
	Success       bool
	Error         error
}

// DependencyStatus reports whether a dependency is currently detected
type DependencyStatus struct {
	Descriptor entities.Descriptor
	Present    bool
}

// Bootstrap runs detect, install, re-probe, PATH registration and smoke test
// for each dependency. The first failure ends the run.
func (o *BootstrapOrchestrator) Bootstrap(ctx context.Context) (*BootstrapResult, error) {
	startTime := time.Now()
	result := &BootstrapResult{Platform: o.config.Platform}
	defer func() { result.TotalDuration = time.Since(startTime) }()

	descs, err := o.repo.GetDescriptors(ctx, string(o.config.Platform))
	if err != nil {
		result.Error = fmt.Errorf("failed to load manifest: %w", err)
		return result, result.Error
	}

	for _, d := range descs {
		if err := ctx.Err(); err != nil {
			result.Error = err
			return result, err
		}

		desc := services.ExpandDescriptor(d, o.config.Vars)
		step := o.provision(ctx, &desc)
		result.Steps = append(result.Steps, step)
		if step.Error != nil {
			o.logger.Error("bootstrap step failed", interfaces.F("dependency", desc.Name), interfaces.F("error", step.Error))
			result.Error = step.Error
			return result, result.Error
		}
	}

	if p := o.config.EngineProbe; p != nil && p.Available() {
		version, err := p.Check()
		if err != nil {
			result.Error = entities.NewStepError("tesseract library", entities.ErrInstallVerification, err)
			return result, result.Error
		}
		result.EngineVersion = version
	}

	result.Success = true
	return result, nil
}

// Status detects every dependency of the platform without changing anything
func (o *BootstrapOrchestrator) Status(ctx context.Context) ([]DependencyStatus, error) {
	descs, err := o.repo.GetDescriptors(ctx, string(o.config.Platform))
	if err != nil {
		return nil, fmt.Errorf("failed to load manifest: %w", err)
	}

	out := make([]DependencyStatus, 0, len(descs))
	for _, d := range descs {
		desc := services.ExpandDescriptor(d, o.config.Vars)
		out = append(out, DependencyStatus{
			Descriptor: desc,
			Present:    o.detect(&desc),
		})
	}
	return out, nil
}

func (o *BootstrapOrchestrator) provision(ctx context.Context, desc *entities.Descriptor) (step StepResult) {
	start := time.Now()
	step.Name = desc.Name
	defer func() { step.Duration = time.Since(start) }()

	// Step 1: Detect
	if o.detect(desc) {
		step.AlreadyPresent = true
		o.logger.Info("already present", interfaces.F("dependency", desc.Name))
	} else {
		// Step 2: Install
		artifact, err := o.install(ctx, desc)
		step.Artifact = artifact
		if err != nil {
			step.Error = err
			return step
		}
		step.Installed = true

		// Step 3: Re-probe
		if desc.Detect.HasPredicate() && !o.detect(desc) {
			step.Error = entities.NewStepError(desc.Name, entities.ErrInstallVerification,
				fmt.Errorf("not detected after install (%s)", describeDetect(desc.Detect)))
			return step
		}
	}

	// Step 4: Register PATH
	if desc.PathDir != "" {
		machine, process, err := o.registerPath(desc.PathDir)
		step.MachinePathUpdated = machine
		step.ProcessPathUpdated = process
		if err != nil {
			step.Error = entities.NewStepError(desc.Name, entities.ErrMissingPrerequisite, err)
			return step
		}
	}

	// Step 5: Smoke test
	if !desc.Smoke.IsZero() {
		out, err := o.smoke(ctx, desc)
		step.SmokeOutput = out
		if err != nil {
			step.Error = err
			return step
		}
	}

	return step
}

func (o *BootstrapOrchestrator) detect(desc *entities.Descriptor) bool {
	if !desc.Detect.HasPredicate() {
		return false
	}
	if desc.Detect.Path != "" && !o.prober.PathExists(desc.Detect.Path) {
		return false
	}
	if desc.Detect.Command != "" && !o.prober.CommandExists(desc.Detect.Command) {
		return false
	}
	return true
}

func (o *BootstrapOrchestrator) install(ctx context.Context, desc *entities.Descriptor) (*entities.Artifact, error) {
	if desc.RequiresAdmin && !o.config.IsElevated() {
		return nil, entities.NewStepError(desc.Name, entities.ErrMissingPrerequisite,
			errors.New("administrator rights required to install, re-run elevated"))
	}

	var artifact *entities.Artifact
	if desc.Install.NeedsDownload() {
		o.logger.Info("downloading", interfaces.F("dependency", desc.Name), interfaces.F("url", desc.Install.URL))
		a, err := o.downloader.DownloadArtifact(ctx, desc, o.config.DownloadDir)
		if err != nil {
			return nil, entities.NewStepError(desc.Name, entities.ErrDownloadFailure, err)
		}
		artifact = a

		if o.verifier != nil {
			if len(o.verifier.RequiredChecks(desc)) == 0 {
				o.logger.Warn("no sha256 or signature configured, installing unverified artifact",
					interfaces.F("dependency", desc.Name), interfaces.F("url", desc.Install.URL))
			}
			if err := o.verifier.VerifyArtifact(ctx, desc, artifact); err != nil {
				return artifact, entities.NewStepError(desc.Name, entities.ErrDownloadFailure, err)
			}
		}
	}

	o.logger.Info("installing", interfaces.F("dependency", desc.Name), interfaces.F("method", desc.Install.Method))
	if err := o.installer.Install(ctx, desc, artifact); err != nil {
		return artifact, entities.NewStepError(desc.Name, entities.ErrInstallVerification, err)
	}
	return artifact, nil
}

// registerPath appends dir to the machine PATH and the process PATH,
// each only when not already contained.
func (o *BootstrapOrchestrator) registerPath(dir string) (machineChanged, processChanged bool, err error) {
	if o.machine != nil {
		current, err := o.machine.ReadPath()
		if err != nil {
			return false, false, fmt.Errorf("failed to read machine PATH: %w", err)
		}
		if !services.PathContains(current, dir) {
			if err := o.machine.AppendDir(dir); err != nil {
				return false, false, fmt.Errorf("failed to update machine PATH: %w", err)
			}
			machineChanged = true
			o.logger.Info("machine PATH updated", interfaces.F("dir", dir))
		}
	}

	sep := ":"
	if o.config.Platform.IsWindows() {
		sep = ";"
	}
	next, changed := services.AppendPath(o.env.Getenv("PATH"), dir, sep)
	if changed {
		if err := o.env.Setenv("PATH", next); err != nil {
			return machineChanged, false, fmt.Errorf("failed to update process PATH: %w", err)
		}
		processChanged = true
	}
	return machineChanged, processChanged, nil
}

func (o *BootstrapOrchestrator) smoke(ctx context.Context, desc *entities.Descriptor) (string, error) {
	out, err := o.runner.Output(ctx, desc.Smoke.Command, desc.Smoke.Args...)
	if err != nil {
		return out, entities.NewStepError(desc.Name, entities.ErrInstallVerification,
			fmt.Errorf("smoke test %s failed: %w", desc.Smoke.Command, err))
	}
	if !strings.Contains(out, desc.Smoke.Expect) {
		return out, entities.NewStepError(desc.Name, entities.ErrInstallVerification,
			fmt.Errorf("smoke test %s: output does not contain %q", desc.Smoke.Command, desc.Smoke.Expect))
	}
	return out, nil
}

func describeDetect(d entities.DetectConfig) string {
	parts := make([]string, 0, 2)
	if d.Path != "" {
		parts = append(parts, "path "+d.Path)
	}
	if d.Command != "" {
		parts = append(parts, "command "+d.Command)
	}
	return strings.Join(parts, ", ")
}

// GetBootstrapSummary returns a human-readable summary of the run
func (r *BootstrapResult) GetBootstrapSummary() string {
	if !r.Success {
		return fmt.Sprintf("Bootstrap failed: %v", r.Error)
	}

	installed := 0
	for _, s := range r.Steps {
		if s.Installed {
			installed++
		}
	}
	summary := fmt.Sprintf("Bootstrap successful!\nPlatform: %s\nDependencies: %d (%d installed)\nTotal: %v",
		r.Platform, len(r.Steps), installed, r.TotalDuration.Round(time.Millisecond))
	if r.EngineVersion != "" {
		summary += fmt.Sprintf("\nTesseract library: %s", r.EngineVersion)
	}
	return summary
}
