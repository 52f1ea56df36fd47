package gateways

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/ochairo/ocrboot/internal/domain/interfaces"
	"github.com/ochairo/ocrboot/internal/domain/interfaces/gateways"
)

// CommandRunner runs installers, setup commands and smoke tests.
// Child processes see the injected Environment, not the real process environment.
type CommandRunner struct {
	env    gateways.Environment
	logger interfaces.Logger
	goos   string

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// NewCommandRunner creates a new command runner
func NewCommandRunner(env gateways.Environment, logger interfaces.Logger) *CommandRunner {
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}
	return &CommandRunner{
		env:    env,
		logger: logger,
		goos:   runtime.GOOS,
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
}

// SetStdio replaces the streams handed to delegated programs
func (r *CommandRunner) SetStdio(in io.Reader, out, errOut io.Writer) {
	r.stdin, r.stdout, r.stderr = in, out, errOut
}

// ExecuteConfig contains configuration for executing a command or script.
type ExecuteConfig struct {
	Name        string   // Executable, resolved along the environment's PATH
	Args        []string // Arguments for Name
	Script      string   // Shell script, used instead of Name when set
	WorkingDir  string
	Env         map[string]string // Extra variables layered over the environment
	Timeout     time.Duration     // Zero means no timeout
	Description string

	// Optional passthrough streams. When Stdout/Stderr are set the output
	// is not captured in the result.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// ExecuteResult contains the result of command execution
type ExecuteResult struct {
	Success  bool
	ExitCode int
	Stdout   string
	Stderr   string
	Combined string
	Duration time.Duration
	Error    error
}

// ExecuteCommand runs cfg.Name with cfg.Args
func (r *CommandRunner) ExecuteCommand(ctx context.Context, cfg ExecuteConfig) *ExecuteResult {
	name := cfg.Name
	if resolved, err := LookPath(name, r.env.Getenv("PATH"), r.env.Getenv("PATHEXT"), r.goos); err == nil {
		name = resolved
	}
	return r.run(ctx, cfg, name, cfg.Args)
}

// ExecuteScript runs cfg.Script with the platform shell
func (r *CommandRunner) ExecuteScript(ctx context.Context, cfg ExecuteConfig) *ExecuteResult {
	if r.goos == "windows" {
		return r.run(ctx, cfg, "cmd", []string{"/C", cfg.Script})
	}
	// Use /bin/sh for maximum compatibility
	return r.run(ctx, cfg, "/bin/sh", []string{"-c", cfg.Script})
}

// Output runs name and returns its combined stdout and stderr.
// A non-zero exit is an error that still carries the output.
func (r *CommandRunner) Output(ctx context.Context, name string, args ...string) (string, error) {
	result := r.ExecuteCommand(ctx, ExecuteConfig{Name: name, Args: args})
	if !result.Success {
		return result.Combined, fmt.Errorf("%s exited with %d: %w", name, result.ExitCode, result.Error)
	}
	return result.Combined, nil
}

// Delegate runs a program attached to the runner's stdio and returns its exit code.
// The error is non-nil only when the program could not be started.
func (r *CommandRunner) Delegate(ctx context.Context, name string, args []string, env map[string]string, dir string) (int, error) {
	result := r.ExecuteCommand(ctx, ExecuteConfig{
		Name:        name,
		Args:        args,
		WorkingDir:  dir,
		Env:         env,
		Description: "launch",
		Stdin:       r.stdin,
		Stdout:      r.stdout,
		Stderr:      r.stderr,
	})
	if result.Success {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(result.Error, &exitErr) {
		return delegatedExitCode(exitErr), nil
	}
	return -1, fmt.Errorf("failed to start %s: %w", name, result.Error)
}

// delegatedExitCode reports a child killed by signal n as 128+n, like a shell
func delegatedExitCode(err *exec.ExitError) int {
	if code := err.ExitCode(); code >= 0 {
		return code
	}
	if ws, ok := err.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return 128 + int(ws.Signal())
	}
	return 1
}

func (r *CommandRunner) run(ctx context.Context, cfg ExecuteConfig, name string, args []string) *ExecuteResult {
	startTime := time.Now()
	result := &ExecuteResult{}

	execCtx := ctx
	if cfg.Timeout > 0 {
		var cancel context.CancelFunc
		execCtx, cancel = context.WithTimeout(ctx, cfg.Timeout)
		defer cancel()
	}

	//nolint:gosec // G204: Commands come from the dependency manifest
	cmd := exec.CommandContext(execCtx, name, args...)
	if cfg.WorkingDir != "" {
		cmd.Dir = cfg.WorkingDir
	}
	cmd.Env = mergeEnv(r.env.Environ(), cfg.Env)

	var stdout, stderr, combined bytes.Buffer
	cmd.Stdin = cfg.Stdin
	if cfg.Stdout != nil {
		cmd.Stdout = cfg.Stdout
	} else {
		cmd.Stdout = io.MultiWriter(&stdout, &combined)
	}
	if cfg.Stderr != nil {
		cmd.Stderr = cfg.Stderr
	} else {
		cmd.Stderr = io.MultiWriter(&stderr, &combined)
	}

	if cfg.Description != "" {
		r.logger.Debug("executing", interfaces.F("step", cfg.Description), interfaces.F("command", name))
	}

	err := cmd.Run()
	result.Duration = time.Since(startTime)
	result.Stdout = stdout.String()
	result.Stderr = stderr.String()
	result.Combined = combined.String()

	if err != nil {
		result.Error = err
		var exitErr *exec.ExitError
		//nolint:gocritic // ifElseChain: checking different error types, not suitable for switch
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
		} else if errors.Is(execCtx.Err(), context.DeadlineExceeded) {
			result.Error = fmt.Errorf("command timeout after %v", cfg.Timeout)
			result.ExitCode = -1
		} else {
			result.ExitCode = -1
		}
		return result
	}

	result.Success = true
	result.ExitCode = 0
	return result
}

// mergeEnv layers extra variables over a KEY=value list
func mergeEnv(base []string, extra map[string]string) []string {
	if len(extra) == 0 {
		return base
	}
	out := make([]string, 0, len(base)+len(extra))
	for _, kv := range base {
		key, _, _ := strings.Cut(kv, "=")
		if _, overridden := extra[key]; overridden {
			continue
		}
		out = append(out, kv)
	}
	keys := make([]string, 0, len(extra))
	for k := range extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		out = append(out, k+"="+extra[k])
	}
	return out
}
