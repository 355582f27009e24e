// Package index implements the tag index subcommand.
package index

import (
	"github.com/spf13/cobra"

	"github.com/larderhq/larder/internal/cmd/application"
	"github.com/larderhq/larder/pkg/constants"
	"github.com/larderhq/larder/pkg/tagindex"
)

// NewCommand creates the index command using app context.
func NewCommand(app application.Application) *cobra.Command {
	var (
		outputPath string
		fileList   bool
		toStdout   bool
	)

	cmd := &cobra.Command{
		Use:   "index",
		Short: "Regenerate the tag index document",
		Long: `Index scans the recipe tree for .cook files, extracts each file's
front-matter tags, aggregates usage counts across the collection, and
rewrites the tag index document.

The document is fully regenerated on each run and replaced atomically,
sorted by usage count descending with ties broken by tag name. Running
the command twice without recipe changes produces byte-identical output.`,
		Example: `  larder index                      # rewrite tags-index.md at the collection root
  larder index --files              # include the contributing recipes per tag
  larder index --stdout             # print the document instead of writing it
  larder index --output ./out.md    # write somewhere else`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger := app.Logger()

			dest := outputPath
			if dest == "" {
				dest = app.IndexPath()
			}

			ix, err := tagindex.New(app.Root(), tagindex.WithLogger(logger)).Build(cmd.Context())
			if err != nil {
				return err
			}

			var renderOpts []tagindex.RenderOption
			if fileList {
				renderOpts = append(renderOpts, tagindex.WithFileList())
			}

			if toStdout {
				return ix.Render(cmd.OutOrStdout(), renderOpts...)
			}

			if err := ix.WriteFile(dest, renderOpts...); err != nil {
				return err
			}
			logger.Info().
				Str("document", dest).
				Int("tags", len(ix.Entries)).
				Msg("Tag index written")
			return nil
		},
	}

	cmd.Flags().StringVar(&outputPath, "output", "", "index document path (default <root>/"+constants.IndexFileName+")")
	cmd.Flags().BoolVar(&fileList, "files", false, "include the contributing recipe files per tag")
	cmd.Flags().BoolVar(&toStdout, "stdout", false, "print the rendered document to stdout instead of writing it")

	return cmd
}
