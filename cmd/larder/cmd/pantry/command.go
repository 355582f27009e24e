// Package pantry implements the aisle normalization subcommand.
package pantry

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/larderhq/larder/internal/cmd/application"
	"github.com/larderhq/larder/internal/llm"
	"github.com/larderhq/larder/pkg/constants"
	"github.com/larderhq/larder/pkg/errors"
	"github.com/larderhq/larder/pkg/pantry"
)

// NewCommand creates the pantry command using app context.
func NewCommand(app application.Application) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "pantry <recipe.cook>",
		Short: "Fold a recipe's ingredients into aisle.conf",
		Long: `Pantry extracts the @ingredient{} references from a recipe and checks
them against the shopping-aisle configuration. Ingredients the
configuration does not know are sent to the text-generation service,
which maps variations onto existing entries as synonyms and assigns
genuinely new ingredients to an aisle category.

The configuration is rewritten atomically. With --dry-run the proposed
changes are printed without writing anything.`,
		Example: `  larder pantry soup/lentil-soup.cook
  larder pantry --dry-run entrees/pad-thai.cook`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cookPath := args[0]
			logger := app.Logger()
			out := cmd.OutOrStdout()

			content, err := os.ReadFile(cookPath)
			if err != nil {
				return errors.WrapIO("read", cookPath, err)
			}

			ingredients := pantry.ExtractIngredients(string(content))
			if len(ingredients) == 0 {
				fmt.Fprintln(out, "No ingredients found in recipe.")
				return nil
			}

			aislePath := filepath.Join(app.Root(), constants.ConfigDirName, constants.AisleFileName)
			aisle, err := pantry.LoadAisle(aislePath)
			if err != nil {
				return err
			}

			unknown := aisle.Unknown(ingredients)
			if len(unknown) == 0 {
				fmt.Fprintln(out, "All ingredients are already known in aisle.conf.")
				return nil
			}
			logger.Info().
				Int("unknown", len(unknown)).
				Msg("Checking unknown ingredients for synonyms and categories")

			ctx, cancel := context.WithTimeout(cmd.Context(), constants.SuggestTimeout)
			defer cancel()

			client, err := llm.NewClient(ctx, app.GenAIKey(), llm.WithModel(app.GenAIModel()))
			if err != nil {
				return err
			}

			changes, err := pantry.NewNormalizer(client).Plan(ctx, aisle.Known(), aisle.Categories(), unknown)
			if err != nil {
				return err
			}
			if changes.Empty() {
				fmt.Fprintln(out, "No changes recommended.")
				return nil
			}

			lines, notes := aisle.Apply(changes)
			for _, note := range notes {
				fmt.Fprintln(out, note)
			}

			if dryRun {
				fmt.Fprintln(out)
				fmt.Fprintln(out, "Dry run; no changes written to aisle.conf.")
				return nil
			}

			if err := pantry.WriteFile(aislePath, lines); err != nil {
				return err
			}
			fmt.Fprintf(out, "\nUpdated %s\n", aislePath)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "show changes but do not write them")

	return cmd
}
