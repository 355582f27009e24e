package recipe

import (
	"strings"

	"golang.org/x/text/cases"
)

// TagList holds the tags declared by one recipe. The YAML `tags` field
// accepts two encodings:
//
//	tags: bread, quick          # inline scalar, comma separated
//	tags:                       # block list, one opaque tag per item
//	  - bread
//	  - quick
//
// Block-list items are never split further, so a tag may contain commas.
type TagList []string

// UnmarshalYAML decodes either encoding. Unrecognized shapes decode to an
// empty list rather than failing the whole document.
func (t *TagList) UnmarshalYAML(unmarshal func(any) error) error {
	var inline string
	if err := unmarshal(&inline); err == nil {
		*t = splitInline(inline)
		return nil
	}

	var items []string
	if err := unmarshal(&items); err == nil {
		*t = TagList(items)
		return nil
	}

	*t = nil
	return nil
}

// MarshalYAML renders the inline encoding, matching how tag lines are
// written back by SetTags.
func (t TagList) MarshalYAML() (any, error) {
	return strings.Join(t, ", "), nil
}

// Normalized returns the tags folded by Normalize, empties dropped and
// duplicates removed, preserving first-seen order.
func (t TagList) Normalized() []string {
	var out []string
	seen := make(map[string]struct{}, len(t))
	for _, raw := range t {
		tag := Normalize(raw)
		if tag == "" {
			continue
		}
		if _, dup := seen[tag]; dup {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}

// caseFolder collapses case distinctions so `Soup`, `soup` and `SOUP`
// aggregate as one tag.
var caseFolder = cases.Fold()

// Normalize canonicalizes one tag: surrounding whitespace trimmed, case
// folded, internal whitespace runs collapsed to single spaces. Returns ""
// for tags that normalize to nothing.
func Normalize(tag string) string {
	folded := caseFolder.String(tag)
	return strings.Join(strings.Fields(folded), " ")
}

// splitInline splits a comma-separated scalar into raw tags.
func splitInline(s string) TagList {
	if strings.TrimSpace(s) == "" {
		return nil
	}

	parts := strings.Split(s, ",")
	out := make(TagList, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
