package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/collector/internal/app"
)

func (c *CLI) newCleanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove cached state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			hashes, _ := cmd.Flags().GetBool("hashes")
			outputs, _ := cmd.Flags().GetBool("outputs")

			what := app.CleanOptions{Hashes: hashes, Outputs: outputs}
			if !hashes && !outputs {
				// Default behavior: clean everything
				what = app.CleanOptions{Hashes: true, Outputs: true}
			}

			return c.app.Clean(app.RunOptions{Worktree: c.worktree(cmd)}, what)
		},
	}

	cmd.Flags().Bool("hashes", false, "Remove pointer records only")
	cmd.Flags().Bool("outputs", false, "Remove cached output trees only")

	return cmd
}
