package index_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/larderhq/larder/cmd/larder/cmd/index"
	"github.com/larderhq/larder/internal/cmd/application"
)

func recipeTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	files := map[string]string{
		"soup/lentil.cook":    "---\ntags: soup, vegan\n---\nSimmer @lentils{200%g}.\n",
		"bread/focaccia.cook": "---\ntags: bread\n---\nBake.\n",
	}
	for name, content := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

func TestIndexCommandWritesDocument(t *testing.T) {
	root := recipeTree(t)
	dest := filepath.Join(root, "tags-index.md")
	app := &application.Mock{
		RootFunc:      func() string { return root },
		IndexPathFunc: func() string { return dest },
	}

	cmd := index.NewCommand(app)
	cmd.SetContext(context.Background())
	cmd.SetOut(new(bytes.Buffer))
	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "# Tag Index")
	assert.Contains(t, content, "soup")
	assert.Contains(t, content, "bread")
	assert.Contains(t, content, "vegan")
}

func TestIndexCommandStdout(t *testing.T) {
	root := recipeTree(t)
	app := &application.Mock{
		RootFunc:      func() string { return root },
		IndexPathFunc: func() string { return filepath.Join(root, "tags-index.md") },
	}

	var buf bytes.Buffer
	cmd := index.NewCommand(app)
	cmd.SetContext(context.Background())
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"--stdout"})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, buf.String(), "soup")
	assert.NoFileExists(t, filepath.Join(root, "tags-index.md"))
}

func TestIndexCommandFileList(t *testing.T) {
	root := recipeTree(t)
	app := &application.Mock{
		RootFunc:      func() string { return root },
		IndexPathFunc: func() string { return filepath.Join(root, "tags-index.md") },
	}

	var buf bytes.Buffer
	cmd := index.NewCommand(app)
	cmd.SetContext(context.Background())
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"--stdout", "--files"})
	require.NoError(t, cmd.Execute())

	assert.Contains(t, buf.String(), "soup/lentil.cook")
}
