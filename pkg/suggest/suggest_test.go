package suggest_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/larderhq/larder/pkg/errors"
	"github.com/larderhq/larder/pkg/suggest"
	"github.com/larderhq/larder/pkg/tagindex"
)

type fakeGenerator struct {
	prompt   string
	response string
	err      error
}

func (f *fakeGenerator) Generate(_ context.Context, prompt string) (string, error) {
	f.prompt = prompt
	return f.response, f.err
}

func TestBuildPromptIncludesPopularTags(t *testing.T) {
	popular := []tagindex.Entry{
		{Tag: "bread", Count: 12},
		{Tag: "soup", Count: 8},
	}

	prompt := suggest.BuildPrompt("---\ntags: old\n---\nMix @flour{500%g}.", popular)

	assert.Contains(t, prompt, "Popular tags: bread(12), soup(8)")
	assert.Contains(t, prompt, "Mix @flour{500%g}.")
	assert.Contains(t, prompt, `{"recommended_tags": [...]}`)
}

func TestBuildPromptNoIndex(t *testing.T) {
	prompt := suggest.BuildPrompt("recipe body", nil)
	assert.Contains(t, prompt, "Popular tags: none")
}

func TestParseResponse(t *testing.T) {
	result, err := suggest.ParseResponse(`{"recommended_tags": ["soup", "lentil", "vegan"]}`)
	require.NoError(t, err)
	assert.Equal(t, []string{"soup", "lentil", "vegan"}, result.RecommendedTags)
}

func TestParseResponseFenced(t *testing.T) {
	result, err := suggest.ParseResponse("```json\n{\"recommended_tags\": [\"soup\"]}\n```")
	require.NoError(t, err)
	assert.Equal(t, []string{"soup"}, result.RecommendedTags)
}

func TestParseResponseInvalidJSON(t *testing.T) {
	_, err := suggest.ParseResponse("sorry, I cannot help with that")
	require.Error(t, err)

	var parseErr *errors.ParseError
	assert.ErrorAs(t, err, &parseErr)
}

func TestParseResponseMissingList(t *testing.T) {
	_, err := suggest.ParseResponse(`{"tags": ["soup"]}`)
	require.Error(t, err)

	var parseErr *errors.ParseError
	assert.ErrorAs(t, err, &parseErr)
}

func TestSuggest(t *testing.T) {
	gen := &fakeGenerator{response: `{"recommended_tags": ["thai", "curry"]}`}

	result, err := suggest.New(gen).Suggest(context.Background(), "recipe text", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"thai", "curry"}, result.RecommendedTags)
	assert.Contains(t, gen.prompt, "recipe text")
}

func TestSuggestGeneratorError(t *testing.T) {
	gen := &fakeGenerator{err: errors.NewAPIError("gemini", 429, "rate limited")}

	_, err := suggest.New(gen).Suggest(context.Background(), "recipe text", nil)
	require.Error(t, err)

	var apiErr *errors.APIError
	assert.ErrorAs(t, err, &apiErr)
}
