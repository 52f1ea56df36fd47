package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newListCmd(load configLoader) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the dependencies of this platform and whether they are installed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := load(cmd)
			if err != nil {
				return err
			}
			a := newApp(cfg, cmd.ErrOrStderr())
			defer func() { _ = a.logger.Sync() }()

			statuses, err := a.bootstrapOrchestrator().Status(cmd.Context())
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "Dependencies for %s (%d total):\n\n", a.platform, len(statuses))
			s := newStyles()
			for _, st := range statuses {
				printStatus(out, s, st)
			}
			return nil
		},
	}
}
