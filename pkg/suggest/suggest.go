// Package suggest recommends normalized front-matter tags for a single
// recipe, using a text-generation model primed with the collection's
// existing tag popularity.
package suggest

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/larderhq/larder/internal/llm"
	"github.com/larderhq/larder/pkg/constants"
	"github.com/larderhq/larder/pkg/errors"
	"github.com/larderhq/larder/pkg/tagindex"
)

const promptTemplate = `You are a recipe tag curator. Assign normalized, reusable tags
for the recipe below (course, cuisine, main ingredient focus, and high-level traits).

Prefer the popular tags listed below, but add new tags when they will likely describe
other recipes too. Normalize each tag by lowercasing it, keeping only letters/spaces,
and preferring general terms (e.g., break "thai vegetable curry" into "thai",
"vegetable", "curry"). Ignore the existing front-matter tags when picking your list.

Popular tags: %s

Recipe:
` + "```\n%s\n```" + `

Return JSON: {"recommended_tags": [...]}.
`

// Generator produces text for a prompt. Satisfied by *llm.Client.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Result is the model's tag recommendation for one recipe.
type Result struct {
	RecommendedTags []string `json:"recommended_tags"`
}

// BuildPrompt assembles the prompt for one recipe. Popularity context comes
// from the current index entries; an empty slice degrades to "none".
func BuildPrompt(recipeText string, popular []tagindex.Entry) string {
	return fmt.Sprintf(promptTemplate, tagindex.Summarize(popular, constants.PopularTagLimit), recipeText)
}

// ParseResponse decodes the model output into a Result. Markdown code
// fences around the JSON are tolerated; a response without a
// recommended_tags list is an error.
func ParseResponse(content string) (*Result, error) {
	var result Result
	if err := json.Unmarshal([]byte(llm.CleanJSON(content)), &result); err != nil {
		return nil, errors.NewParseError("json", "", "model response was not valid JSON", err)
	}
	if result.RecommendedTags == nil {
		return nil, errors.NewParseError("json", "", "model response has no recommended_tags list", nil)
	}
	return &result, nil
}

// Suggester runs the suggestion flow against a Generator.
type Suggester struct {
	gen Generator
}

// New creates a Suggester.
func New(gen Generator) *Suggester {
	return &Suggester{gen: gen}
}

// Suggest builds the prompt for the recipe text, queries the model, and
// returns the parsed recommendation.
func (s *Suggester) Suggest(ctx context.Context, recipeText string, popular []tagindex.Entry) (*Result, error) {
	content, err := s.gen.Generate(ctx, BuildPrompt(recipeText, popular))
	if err != nil {
		return nil, err
	}
	return ParseResponse(content)
}
