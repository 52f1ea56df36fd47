package orchestrators

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/ochairo/ocrboot/internal/domain/entities"
	"github.com/ochairo/ocrboot/internal/domain/interfaces"
	"github.com/ochairo/ocrboot/internal/domain/interfaces/gateways"
	"github.com/ochairo/ocrboot/internal/domain/services"
)

// EnvReader interface for loading the .env file
type EnvReader interface {
	Exists() bool
	Read() (map[string]string, error)
	Path() string
}

// ProgramRunner interface for running the delegated program
type ProgramRunner interface {
	Delegate(ctx context.Context, name string, args []string, env map[string]string, dir string) (int, error)
}

// LaunchOrchestratorConfig holds configuration for the launcher
type LaunchOrchestratorConfig struct {
	Platform   services.Platform
	Venv       string
	VenvPython string
	VenvBin    string
	Program    string   // Script run by the venv interpreter
	Args       []string // Extra arguments passed to the program
	WorkingDir string
}

// LaunchOrchestrator activates the virtual environment and runs the OCR program
type LaunchOrchestrator struct {
	reader EnvReader
	prober Prober
	runner ProgramRunner
	env    gateways.Environment
	config LaunchOrchestratorConfig
	logger interfaces.Logger
}

// NewLaunchOrchestrator creates a new launch orchestrator
func NewLaunchOrchestrator(
	reader EnvReader,
	prober Prober,
	runner ProgramRunner,
	env gateways.Environment,
	config LaunchOrchestratorConfig,
	logger interfaces.Logger,
) *LaunchOrchestrator {
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}
	return &LaunchOrchestrator{
		reader: reader,
		prober: prober,
		runner: runner,
		env:    env,
		config: config,
		logger: logger,
	}
}

// Launch runs the program and returns its exit code
func (o *LaunchOrchestrator) Launch(ctx context.Context) (int, error) {
	// Step 1: Configuration must exist
	if !o.reader.Exists() {
		return 1, entities.NewStepError("launch", entities.ErrConfigurationMissing,
			fmt.Errorf("%s not found, run configure first", o.reader.Path()))
	}

	// Step 2: Virtual environment must exist
	if !o.prober.PathExists(o.config.VenvPython) {
		return 1, entities.NewStepError("launch", entities.ErrMissingPrerequisite,
			fmt.Errorf("virtual environment interpreter %s not found, run bootstrap first", o.config.VenvPython))
	}

	// Step 3: Child environment
	childEnv, err := o.ChildEnv()
	if err != nil {
		return 1, err
	}

	// Step 4: Delegate
	args := append([]string{o.config.Program}, o.config.Args...)
	dir := o.config.WorkingDir
	if dir == "" {
		dir = filepath.Dir(o.config.Program)
	}
	o.logger.Info("launching", interfaces.F("program", o.config.Program), interfaces.F("python", o.config.VenvPython))

	code, err := o.runner.Delegate(ctx, o.config.VenvPython, args, childEnv, dir)
	if err != nil {
		return 1, fmt.Errorf("launch failed: %w", err)
	}
	return code, nil
}

// ChildEnv returns the variables layered over the process environment:
// .env values not already set by the process, VIRTUAL_ENV and PATH with the
// venv bin directory first.
func (o *LaunchOrchestrator) ChildEnv() (map[string]string, error) {
	values, err := o.reader.Read()
	if err != nil {
		return nil, err
	}

	out := make(map[string]string, len(values)+2)
	for k, v := range values {
		if o.env.Getenv(k) != "" {
			continue
		}
		out[k] = v
	}

	sep := ":"
	if o.config.Platform.IsWindows() {
		sep = ";"
	}
	out["VIRTUAL_ENV"] = o.config.Venv
	out["PATH"] = services.PrependPath(o.env.Getenv("PATH"), o.config.VenvBin, sep)
	return out, nil
}
