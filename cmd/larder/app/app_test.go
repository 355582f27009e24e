package app

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/larderhq/larder/internal/llm"
	"github.com/larderhq/larder/pkg/logging"
)

func TestNew(t *testing.T) {
	a, err := New("1.2.3", "abc123", "2026-08-23", "test", WithLogger(&logging.Nop))
	require.NoError(t, err)

	assert.Equal(t, "1.2.3", a.Version())
	assert.Equal(t, "abc123", a.Commit())
	assert.Equal(t, "2026-08-23", a.Date())
	assert.Equal(t, "test", a.BuiltBy())
	assert.NotNil(t, a.Config())
	assert.NotNil(t, a.Logger())
	assert.NotNil(t, a.Formatter())
}

func TestIndexPathDefault(t *testing.T) {
	a, err := New("dev", "", "", "", WithConfig(&Config{Root: "/recipes"}))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/recipes", "tags-index.md"), a.IndexPath())
}

func TestIndexPathOverride(t *testing.T) {
	a, err := New("dev", "", "", "", WithConfig(&Config{Root: "/recipes", IndexFile: "/elsewhere/index.md"}))
	require.NoError(t, err)
	assert.Equal(t, "/elsewhere/index.md", a.IndexPath())
}

func TestDeployTarget(t *testing.T) {
	a, err := New("dev", "", "", "", WithConfig(&Config{
		DeployHost:    "tablet",
		DeployPath:    "/data/recipes",
		DeployCommand: "git pull --ff-only",
	}))
	require.NoError(t, err)

	target := a.DeployTarget()
	assert.Equal(t, "tablet", target.Host)
	assert.Equal(t, "/data/recipes", target.Path)
	assert.Equal(t, "git pull --ff-only", target.Command)
}

func TestLoadConfigDefaults(t *testing.T) {
	config, err := LoadConfig()
	require.NoError(t, err)

	assert.NotEmpty(t, config.Root)
	assert.Equal(t, llm.DefaultModel, config.GenAIModel)
	assert.NotEmpty(t, config.LogLevel)
}

func TestUpdateFromFlags(t *testing.T) {
	config := &Config{Format: "table", LogLevel: "info"}
	config.UpdateFromFlags(true, false, true, "json", "debug")

	assert.True(t, config.Verbose)
	assert.False(t, config.Quiet)
	assert.True(t, config.NoColor)
	assert.Equal(t, "json", config.Format)
	assert.Equal(t, "debug", config.LogLevel)

	config.UpdateFromFlags(false, true, false, "", "")
	assert.Equal(t, "json", config.Format, "empty flag keeps previous format")
	assert.Equal(t, "debug", config.LogLevel, "empty flag keeps previous level")
}
