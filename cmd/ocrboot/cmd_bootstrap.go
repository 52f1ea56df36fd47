package main

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ochairo/ocrboot/internal/domain-adapters/gateways"
	orchestrators "github.com/ochairo/ocrboot/internal/domain-orchestrators"
	"github.com/ochairo/ocrboot/internal/domain/services"
	"github.com/ochairo/ocrboot/internal/external-adapters/machinepath"
	"github.com/ochairo/ocrboot/internal/external-adapters/tesseract"
	"github.com/ochairo/ocrboot/internal/external-adapters/yaml"
)

func newBootstrapCmd(load configLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "bootstrap",
		Short: "Install and verify every OCR dependency",
		Long: `Runs, for each dependency in manifest order: detect, install when missing,
re-probe, register its directory on PATH, smoke test. The first failure stops
the run with exit code 1. Running it again on a provisioned machine changes nothing.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := load(cmd)
			if err != nil {
				return err
			}
			a := newApp(cfg, cmd.ErrOrStderr())
			defer func() { _ = a.logger.Sync() }()

			orch := a.bootstrapOrchestrator()
			result, err := orch.Bootstrap(cmd.Context())

			out := cmd.OutOrStdout()
			s := newStyles()
			for _, step := range result.Steps {
				printStep(out, s, step)
			}
			if err != nil {
				return err
			}
			cmd.Println(s.ok.Render(result.GetBootstrapSummary()))
			return nil
		},
	}
}

// bootstrapOrchestrator wires the real adapters into the sequencer
func (a *app) bootstrapOrchestrator() *orchestrators.BootstrapOrchestrator {
	runner := gateways.NewCommandRunner(a.env, a.logger)
	downloader := gateways.NewDownloader(a.logger)
	verifier := services.NewVerificationService(gateways.NewVerificationGateway(nil))

	return orchestrators.NewBootstrapOrchestrator(
		yaml.NewManifestRepository(a.cfg.Manifest),
		downloader,
		verifier,
		gateways.NewInstaller(downloader, runner, a.logger),
		gateways.NewProber(a.env),
		runner,
		a.env,
		machinepath.NewMachineStore(a.cfg.Profile, a.env.Getenv("PATH")),
		orchestrators.BootstrapOrchestratorConfig{
			Platform:    a.platform,
			Vars:        a.templateVars(),
			DownloadDir: filepath.Join(a.cfg.Tools, "downloads"),
			IsElevated:  gateways.IsElevated,
			EngineProbe: tesseract.NewProbe(""),
		},
		a.logger,
	)
}
