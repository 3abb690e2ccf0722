package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/collector/internal/app"
)

func (c *CLI) newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Evaluate every unit, execute the misses, and commit their output",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			force, _ := cmd.Flags().GetBool("force")
			jobs, _ := cmd.Flags().GetInt("jobs")

			return c.app.Run(cmd.Context(), app.RunOptions{
				Worktree: c.worktree(cmd),
				Force:    force,
				Jobs:     jobs,
			})
		},
	}

	cmd.Flags().BoolP("force", "f", false, "Bypass the cache and re-run every unit")
	cmd.Flags().IntP("jobs", "j", 0, "Decision evaluation parallelism (0 = number of CPUs)")

	return cmd
}
