// Package deploy implements the deploy subcommand.
package deploy

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/larderhq/larder/internal/cmd/application"
	"github.com/larderhq/larder/internal/deploy"
	"github.com/larderhq/larder/pkg/constants"
)

// NewCommand creates the deploy command using app context.
func NewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Run the remote update command on the deploy target",
		Long: `Deploy connects to the configured host over ssh and runs the configured
update command in the remote collection path. The last deployed commit
is recorded on the remote side, so each run reports which recipes
changed since the previous deploy.

Three configuration values are required (flags, ~/.larder.yaml, or
environment): deploy_host, deploy_path, and deploy_command.`,
		Example: `  larder deploy
  larder deploy --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), constants.DeployTimeout)
			defer cancel()

			runner := deploy.New(app.DeployTarget(), deploy.WithLogger(app.Logger()))
			result, err := runner.Run(ctx)
			if err != nil {
				return err
			}

			return app.Formatter().Format(cmd.OutOrStdout(), result)
		},
	}

	return cmd
}
