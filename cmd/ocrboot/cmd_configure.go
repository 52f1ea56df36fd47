package main

import (
	"os"

	"github.com/spf13/cobra"

	orchestrators "github.com/ochairo/ocrboot/internal/domain-orchestrators"
	"github.com/ochairo/ocrboot/internal/external-adapters/dotenv"
	"github.com/ochairo/ocrboot/internal/external-adapters/prompt"
)

func newConfigureCmd(load configLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "configure",
		Short: "Ask for LLM settings and write the .env file",
		Long: `Asks whether a local LLM is used and, if not, which API provider and key.
Blank answers take the default. The .env file is rewritten from scratch.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := load(cmd)
			if err != nil {
				return err
			}
			a := newApp(cfg, cmd.ErrOrStderr())
			defer func() { _ = a.logger.Sync() }()

			var p *prompt.Prompter
			if cmd.InOrStdin() == os.Stdin {
				p = prompt.NewTerminal()
			} else {
				p = prompt.New(cmd.InOrStdin(), cmd.OutOrStdout())
			}

			orch := orchestrators.NewConfigureOrchestrator(p, dotenv.NewStore(cfg.EnvFile), a.logger)
			result, err := orch.Configure(cmd.Context())
			if err != nil {
				return err
			}
			cmd.Println(newStyles().ok.Render("✓ wrote " + result.Path))
			return nil
		},
	}
}
