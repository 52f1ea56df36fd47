// main.go sets up the ocrboot command-line interface with cobra. It defines
// the root command, the persistent flags shared by every subcommand and the
// mapping from command errors to process exit codes.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/ochairo/ocrboot/internal/config"
)

var version = "dev" // set by the linker

// exitError carries a specific process exit code out of a command
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := execute(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// execute runs the CLI and returns the process exit code
func execute(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	var exit *exitError
	if errors.As(err, &exit) {
		return exit.code
	}
	_, _ = fmt.Fprintln(stderr, newStyles().fail.Render("Error: "+err.Error()))
	return 1
}

// newRootCmd creates the root command with all subcommands.
// A fresh tree is built per call so tests stay isolated.
func newRootCmd() *cobra.Command {
	var cfgFile string

	cmd := &cobra.Command{
		Use:   "ocrboot",
		Short: "Provision and launch the OCR environment",
		Long: `ocrboot prepares a machine for the OCR application.

  bootstrap  install Poppler, Tesseract, the Python virtual environment and
             its requirements, registering tool directories on PATH
  configure  ask for LLM settings and write the .env file
  launch     run the OCR program inside the virtual environment

Settings come from flags, OCRBOOT_* environment variables and an optional
.ocrboot.yaml in the home or current directory.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.ocrboot.yaml or ./.ocrboot.yaml)")
	pf.String("root", ".", "project directory holding requirements.txt and the program")
	pf.String("manifest", "", "dependency manifest (default is the built-in manifest)")
	pf.String("env-file", ".env", "path of the .env file")
	pf.String("venv", "venv", "virtual environment directory")
	pf.String("tools", "tools", "directory archives are extracted into")
	pf.String("python", "", "Python interpreter used to create the virtual environment")
	pf.String("program", "main.py", "program run by launch")
	pf.String("profile", "", "shell profile receiving PATH additions (non-Windows)")
	pf.String("log-level", "info", `log level ("debug", "info", "warn", "error")`)
	pf.String("platform", "", "manifest platform (default is the running platform)")

	loader := func(c *cobra.Command) (*config.Config, error) {
		return config.Load(c.Flags(), cfgFile)
	}

	cmd.AddCommand(newBootstrapCmd(loader))
	cmd.AddCommand(newConfigureCmd(loader))
	cmd.AddCommand(newLaunchCmd(loader))
	cmd.AddCommand(newListCmd(loader))

	return cmd
}

// configLoader resolves settings for the running command
type configLoader func(cmd *cobra.Command) (*config.Config, error)
