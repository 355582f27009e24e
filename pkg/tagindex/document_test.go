package tagindex_test

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/larderhq/larder/pkg/tagindex"
)

func TestRenderThenParseRoundTrip(t *testing.T) {
	root := writeRecipes(t, map[string]string{
		"a.cook": "---\ntags: bread, quick\n---\nx\n",
		"b.cook": "---\ntags: bread\n---\nx\n",
	})
	ix := build(t, root)

	var buf bytes.Buffer
	require.NoError(t, ix.Render(&buf))

	entries, err := tagindex.ParseDocument(&buf)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, tagindex.Entry{Tag: "bread", Count: 2}, entries[0])
	assert.Equal(t, tagindex.Entry{Tag: "quick", Count: 1}, entries[1])
}

func TestParseDocumentIgnoresProse(t *testing.T) {
	doc := strings.Join([]string{
		"# Tag Index",
		"",
		"Tag usage across the recipe collection, most used first.",
		"",
		"| Tag | Count |",
		"|-----|-------|",
		"| soup | 3 |",
		"| not-a-count | many |",
		"",
	}, "\n")

	entries, err := tagindex.ParseDocument(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, tagindex.Entry{Tag: "soup", Count: 3}, entries[0])
}

func TestLoadDocumentMissingFile(t *testing.T) {
	entries, err := tagindex.LoadDocument(filepath.Join(t.TempDir(), "tags-index.md"))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSummarize(t *testing.T) {
	entries := []tagindex.Entry{
		{Tag: "bread", Count: 12},
		{Tag: "soup", Count: 8},
		{Tag: "quick", Count: 2},
	}

	assert.Equal(t, "bread(12), soup(8)", tagindex.Summarize(entries, 2))
	assert.Equal(t, "bread(12), soup(8), quick(2)", tagindex.Summarize(entries, 10))
	assert.Equal(t, "none", tagindex.Summarize(nil, 5))
}

func TestRenderWithFileList(t *testing.T) {
	root := writeRecipes(t, map[string]string{
		"soup/a.cook": "---\ntags: soup\n---\nx\n",
		"soup/b.cook": "---\ntags: soup\n---\nx\n",
	})
	ix := build(t, root)

	var buf bytes.Buffer
	require.NoError(t, ix.Render(&buf, tagindex.WithFileList()))
	out := buf.String()

	assert.Contains(t, out, "Recipes")
	assert.Contains(t, out, "soup/a.cook, soup/b.cook")
}
