package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/larderhq/larder/cmd/larder/cmd/deploy"
	"github.com/larderhq/larder/cmd/larder/cmd/image"
	"github.com/larderhq/larder/cmd/larder/cmd/index"
	"github.com/larderhq/larder/cmd/larder/cmd/pantry"
	"github.com/larderhq/larder/cmd/larder/cmd/suggest"
)

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	rootCmd.AddCommand(index.NewCommand(a))
	rootCmd.AddCommand(suggest.NewCommand(a))
	rootCmd.AddCommand(image.NewCommand(a))
	rootCmd.AddCommand(pantry.NewCommand(a))
	rootCmd.AddCommand(deploy.NewCommand(a))
	rootCmd.AddCommand(a.newVersionCommand())
}

// newVersionCommand creates the version command.
func (a *App) newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "larder %s\n", a.version)
			fmt.Fprintf(cmd.OutOrStdout(), "  commit:   %s\n", a.commit)
			fmt.Fprintf(cmd.OutOrStdout(), "  built:    %s\n", a.date)
			fmt.Fprintf(cmd.OutOrStdout(), "  built by: %s\n", a.builtBy)
		},
	}
}
