package pantry

import (
	"regexp"
	"sort"
)

// ingredientPattern matches Cooklang @ingredient{...} references. Only the
// braced form is considered; bare one-word references (@salt) are too noisy
// to normalize against the aisle list.
var ingredientPattern = regexp.MustCompile(`@([^@#\n]+?)\{`)

// ExtractIngredients returns the unique ingredient names referenced in the
// recipe source, sorted.
func ExtractIngredients(text string) []string {
	seen := make(map[string]struct{})
	for _, m := range ingredientPattern.FindAllStringSubmatch(text, -1) {
		seen[m[1]] = struct{}{}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
