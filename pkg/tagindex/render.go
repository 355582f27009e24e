package tagindex

import (
	"io"
	"strconv"
	"strings"

	md "github.com/nao1215/markdown"
)

// RenderOption adjusts how the index document is rendered.
type RenderOption func(*renderConfig)

type renderConfig struct {
	fileList bool
}

// WithFileList includes the contributing recipe files as a third column.
func WithFileList() RenderOption {
	return func(c *renderConfig) { c.fileList = true }
}

// Render writes the index as a markdown document. Output depends only on
// the entries, never on the clock or the environment.
func (ix *Index) Render(w io.Writer, opts ...RenderOption) error {
	var cfg renderConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	header := []string{"Tag", "Count"}
	if cfg.fileList {
		header = append(header, "Recipes")
	}

	rows := make([][]string, 0, len(ix.Entries))
	for _, e := range ix.Entries {
		row := []string{e.Tag, strconv.Itoa(e.Count)}
		if cfg.fileList {
			row = append(row, strings.Join(e.Files, ", "))
		}
		rows = append(rows, row)
	}

	return md.NewMarkdown(w).
		H1("Tag Index").
		PlainText("Tag usage across the recipe collection, most used first.").
		Table(md.TableSet{Header: header, Rows: rows}).
		Build()
}
