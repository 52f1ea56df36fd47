package main

import (
	"github.com/spf13/cobra"

	"github.com/ochairo/ocrboot/internal/domain-adapters/gateways"
	orchestrators "github.com/ochairo/ocrboot/internal/domain-orchestrators"
	"github.com/ochairo/ocrboot/internal/external-adapters/dotenv"
)

func newLaunchCmd(load configLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "launch [-- program args...]",
		Short: "Run the OCR program inside the virtual environment",
		Long: `Loads the .env file, activates the virtual environment and runs the
program with the venv interpreter. ocrboot exits with the program's exit code.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := load(cmd)
			if err != nil {
				return err
			}
			a := newApp(cfg, cmd.ErrOrStderr())
			defer func() { _ = a.logger.Sync() }()

			runner := gateways.NewCommandRunner(a.env, a.logger)
			runner.SetStdio(cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())

			orch := orchestrators.NewLaunchOrchestrator(
				dotenv.NewStore(cfg.EnvFile),
				gateways.NewProber(a.env),
				runner,
				a.env,
				orchestrators.LaunchOrchestratorConfig{
					Platform:   a.platform,
					Venv:       cfg.Venv,
					VenvPython: cfg.VenvPython(a.goos),
					VenvBin:    cfg.VenvBin(a.goos),
					Program:    cfg.Program,
					Args:       args,
					WorkingDir: cfg.Root,
				},
				a.logger,
			)

			code, err := orch.Launch(cmd.Context())
			if err != nil {
				return err
			}
			if code != 0 {
				return &exitError{code: code}
			}
			return nil
		},
	}
}
