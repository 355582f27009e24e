// Package suggest implements the tag suggestion subcommand.
package suggest

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/larderhq/larder/internal/cmd/application"
	"github.com/larderhq/larder/internal/llm"
	"github.com/larderhq/larder/pkg/constants"
	"github.com/larderhq/larder/pkg/errors"
	"github.com/larderhq/larder/pkg/recipe"
	"github.com/larderhq/larder/pkg/suggest"
	"github.com/larderhq/larder/pkg/tagindex"
)

// NewCommand creates the suggest command using app context.
func NewCommand(app application.Application) *cobra.Command {
	var (
		jsonOnly bool
		write    bool
	)

	cmd := &cobra.Command{
		Use:   "suggest <recipe.cook>",
		Short: "Suggest normalized tags for one recipe",
		Long: `Suggest sends a recipe to the text-generation service, primed with the
collection's most used tags from the index document, and prints the
recommended normalized tags.

With --write the recipe's front-matter tags line is replaced by the
suggestion. With --json-only the raw recommendation is printed as JSON
and the prompt echo is suppressed.`,
		Example: `  larder suggest soup/lentil-soup.cook
  larder suggest --json-only entrees/best-veggie-burger.cook
  larder suggest --write entrees/pasta-pomodoro.cook`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cookPath := args[0]
			logger := app.Logger()

			content, err := os.ReadFile(cookPath)
			if err != nil {
				return errors.WrapIO("read", cookPath, err)
			}

			popular, err := tagindex.LoadDocument(app.IndexPath())
			if err != nil {
				logger.Warn().Err(err).Msg("Could not read tag index; suggesting without popularity context")
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), constants.SuggestTimeout)
			defer cancel()

			client, err := llm.NewClient(ctx, app.GenAIKey(), llm.WithModel(app.GenAIModel()))
			if err != nil {
				return err
			}

			result, err := suggest.New(client).Suggest(ctx, string(content), popular)
			if err != nil {
				return err
			}

			if write {
				updated, err := recipe.SetTags(content, result.RecommendedTags)
				if err != nil {
					return err
				}
				if err := os.WriteFile(cookPath, updated, constants.FilePermissions); err != nil {
					return errors.WrapIO("write", cookPath, err)
				}
				logger.Info().Str("recipe", cookPath).Msg("Front-matter tags updated")
			}

			out := cmd.OutOrStdout()
			if jsonOnly {
				return json.NewEncoder(out).Encode(result)
			}

			fmt.Fprintln(out, "Prompt sent to the model:")
			fmt.Fprintln(out)
			fmt.Fprintln(out, suggest.BuildPrompt(string(content), popular))
			fmt.Fprintln(out, "---")
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Recommended tags:")
			for _, tag := range result.RecommendedTags {
				fmt.Fprintf(out, "- %s\n", tag)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOnly, "json-only", false, "emit just the JSON recommendation")
	cmd.Flags().BoolVar(&write, "write", false, "replace the recipe's front-matter tags with the suggestion")

	return cmd
}
