package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/collector/internal/app"
)

func (c *CLI) newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Report the hit/miss decision for every unit without running anything",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			verify, _ := cmd.Flags().GetBool("verify")

			return c.app.Run(cmd.Context(), app.RunOptions{
				Worktree: c.worktree(cmd),
				DryRun:   true,
				Verify:   verify,
			})
		},
	}

	cmd.Flags().BoolP("verify", "v", false, "Also re-check stored tree integrity for hits")

	return cmd
}
