package logging_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/larderhq/larder/pkg/logging"
)

func TestNewWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(&buf).Level(zerolog.InfoLevel)

	logger.Info().Str("recipe", "soup/lentil.cook").Msg("parsed")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "parsed", entry["message"])
	assert.Equal(t, "soup/lentil.cook", entry["recipe"])
}

func TestNewLoggerFromConfigLevel(t *testing.T) {
	tests := []struct {
		name  string
		level string
		want  zerolog.Level
	}{
		{"debug", "debug", zerolog.DebugLevel},
		{"warn alias", "warning", zerolog.WarnLevel},
		{"invalid falls back to info", "bogus", zerolog.InfoLevel},
		{"disabled", "off", zerolog.Disabled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := logging.NewLoggerFromConfig(&logging.Config{
				Level:  tt.level,
				Format: "json",
				Output: "discard",
			})
			assert.Equal(t, tt.want, logger.GetLevel())
		})
	}
}

func TestFromContext(t *testing.T) {
	t.Run("returns default when empty", func(t *testing.T) {
		logger := logging.FromContext(context.Background())
		assert.Equal(t, logging.Default(), logger)
	})

	t.Run("round-trips an attached logger", func(t *testing.T) {
		var buf bytes.Buffer
		attached := logging.New(&buf)
		ctx := logging.WithLogger(context.Background(), &attached)

		got := logging.FromContext(ctx)
		got.Info().Msg("hello")
		assert.Contains(t, buf.String(), "hello")
	})
}

func TestWithRecipeField(t *testing.T) {
	var buf bytes.Buffer
	base := logging.New(&buf)
	ctx := logging.WithLogger(context.Background(), &base)
	ctx = logging.WithRecipe(ctx, "bread/focaccia.cook")

	logging.Ctx(ctx).Info().Msg("tagged")
	assert.Contains(t, buf.String(), "bread/focaccia.cook")
}
