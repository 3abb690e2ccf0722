// Package commands implements the CLI commands for the collector tool.
package commands

import (
	"context"

	"github.com/spf13/cobra"
	"go.trai.ch/collector/internal/app"
)

// CLI represents the command line interface for collector.
type CLI struct {
	app     *app.App
	rootCmd *cobra.Command
}

// New creates a new CLI instance with the given app.
func New(a *app.App) *CLI {
	rootCmd := &cobra.Command{
		Use:           "collector",
		Short:         "Content-addressable cache for expensive documentation build steps",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringP("worktree", "C", ".", "Worktree to operate in")

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.AddCommand(c.newRunCmd())
	rootCmd.AddCommand(c.newStatusCmd())
	rootCmd.AddCommand(c.newCleanCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

func (c *CLI) worktree(cmd *cobra.Command) string {
	wt, _ := cmd.Flags().GetString("worktree")
	return wt
}
