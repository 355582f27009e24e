package pantry

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/larderhq/larder/internal/llm"
	"github.com/larderhq/larder/pkg/errors"
)

const promptTemplate = `Analyze the following ingredients and normalize them against the known list and categories.

Existing Ingredients (from aisle.conf):
%s

Existing Categories:
%s

New Ingredients (found in recipe, not in aisle.conf):
%s

Task:
1. Identify synonyms: If a New Ingredient is a variation of an Existing Ingredient (e.g., "Garlic Cloves" -> "Garlic"), map it.
2. Identify new items: If it has no match, list it as a new item and assign it to an appropriate Category (use existing ones or suggest a standard new one like [produce], [dairy], [pantry], [spices], [meat], [frozen], [bakery]).

Return ONLY JSON:
{
  "synonyms": { "Existing Ingredient": ["New Ingredient Variation"] },
  "new_items": { "Category Name": ["Truly New Ingredient 1", "Truly New Ingredient 2"] }
}
`

// Generator produces text for a prompt. Satisfied by *llm.Client.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Changes is the model's proposal for folding unknown ingredients into the
// aisle configuration.
type Changes struct {
	// Synonyms maps a listed ingredient to newly found variations of it.
	Synonyms map[string][]string `json:"synonyms"`
	// NewItems maps a category name to genuinely new ingredients.
	NewItems map[string][]string `json:"new_items"`
}

// Empty reports whether the proposal contains no edits.
func (c *Changes) Empty() bool {
	return len(c.Synonyms) == 0 && len(c.NewItems) == 0
}

// BuildPrompt assembles the normalization prompt. Empty known or category
// lists render as "(None)" so the model knows the file starts blank.
func BuildPrompt(known, categories, unknown []string) string {
	knownSection := "(None)"
	if len(known) > 0 {
		knownSection = strings.Join(known, "\n")
	}
	categorySection := "(None)"
	if len(categories) > 0 {
		categorySection = strings.Join(categories, ", ")
	}
	return fmt.Sprintf(promptTemplate, knownSection, categorySection, strings.Join(unknown, "\n"))
}

// ParseResponse decodes the model output into a Changes proposal.
func ParseResponse(content string) (*Changes, error) {
	var changes Changes
	if err := json.Unmarshal([]byte(llm.CleanJSON(content)), &changes); err != nil {
		return nil, errors.NewParseError("json", "", "model response was not valid JSON", err)
	}
	return &changes, nil
}

// Normalizer asks a Generator how unknown ingredients relate to the aisle
// configuration.
type Normalizer struct {
	gen Generator
}

// NewNormalizer creates a Normalizer.
func NewNormalizer(gen Generator) *Normalizer {
	return &Normalizer{gen: gen}
}

// Plan queries the model for synonym mappings and category placements for
// the unknown ingredients.
func (n *Normalizer) Plan(ctx context.Context, known, categories, unknown []string) (*Changes, error) {
	if len(unknown) == 0 {
		return &Changes{}, nil
	}
	content, err := n.gen.Generate(ctx, BuildPrompt(known, categories, unknown))
	if err != nil {
		return nil, err
	}
	return ParseResponse(content)
}
