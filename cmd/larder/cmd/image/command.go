// Package image implements the recipe image subcommand.
package image

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/larderhq/larder/internal/cmd/application"
	"github.com/larderhq/larder/internal/images"
)

// NewCommand creates the image command using app context.
func NewCommand(app application.Application) *cobra.Command {
	var (
		jsonOnly bool
		update   bool
	)

	cmd := &cobra.Command{
		Use:   "image <recipe.cook>",
		Short: "Download a recipe's image next to it",
		Long: `Image downloads the URL in the recipe's front-matter image field to a
JPEG file next to the recipe, converting other formats on the way.

With --update the image field is removed from the recipe afterwards,
since the app picks up the sibling file by name. With --json-only a
single JSON status object is printed instead of human-readable lines.`,
		Example: `  larder image soup/lentil-soup.cook
  larder image --update soup/lentil-soup.cook
  larder image --json-only soup/lentil-soup.cook`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := []images.Option{images.WithLogger(app.Logger())}
			if update {
				opts = append(opts, images.WithFieldRemoval())
			}

			result, err := images.New(opts...).Fetch(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonOnly {
				return json.NewEncoder(out).Encode(result)
			}

			if result.Status == images.StatusNoImage {
				fmt.Fprintf(out, "%s declares no image URL; nothing to do.\n", result.CookFile)
				return nil
			}

			fmt.Fprintf(out, "Downloaded %s\n", result.ImageURL)
			fmt.Fprintf(out, "  saved to: %s\n", result.Destination)
			if result.Converted {
				fmt.Fprintln(out, "  converted to JPEG")
			}
			if result.MetadataRemoved {
				fmt.Fprintln(out, "  image field removed from front matter")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOnly, "json-only", false, "emit a single JSON status object")
	cmd.Flags().BoolVar(&update, "update", false, "remove the image field from the recipe after download")

	return cmd
}
