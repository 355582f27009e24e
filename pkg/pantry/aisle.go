// Package pantry keeps the shopping-aisle configuration in sync with the
// ingredients recipes actually use. It extracts @ingredient references from
// Cooklang source, checks them against aisle.conf, and applies
// model-proposed synonym mappings and category placements.
package pantry

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/larderhq/larder/pkg/constants"
	"github.com/larderhq/larder/pkg/errors"
)

// Aisle is a parsed aisle.conf: category sections like [produce] holding one
// ingredient per line, with synonyms separated by pipes.
type Aisle struct {
	// Lines preserves the file verbatim so edits keep comments and layout.
	Lines []string

	ingredients map[string]int // ingredient or synonym -> line index
	categories  map[string]int // lowercased category name -> header line index
}

// ParseAisle parses aisle.conf content. It never fails: unrecognized lines
// are preserved but contribute nothing.
func ParseAisle(data []byte) *Aisle {
	a := &Aisle{
		ingredients: make(map[string]int),
		categories:  make(map[string]int),
	}
	if len(data) > 0 {
		a.Lines = strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	}

	for idx, line := range a.Lines {
		stripped := strings.TrimSpace(line)
		if stripped == "" || strings.HasPrefix(stripped, "#") {
			continue
		}
		if strings.HasPrefix(stripped, "[") && strings.HasSuffix(stripped, "]") {
			name := strings.ToLower(stripped[1 : len(stripped)-1])
			a.categories[name] = idx
			continue
		}
		for _, part := range strings.Split(stripped, "|") {
			if name := strings.TrimSpace(part); name != "" {
				a.ingredients[name] = idx
			}
		}
	}
	return a
}

// LoadAisle reads aisle.conf at path. A missing file yields an empty
// configuration so a fresh collection bootstraps itself.
func LoadAisle(path string) (*Aisle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return ParseAisle(nil), nil
		}
		return nil, errors.WrapIO("read", path, err)
	}
	return ParseAisle(data), nil
}

// Contains reports whether the ingredient or one of its synonyms is listed.
func (a *Aisle) Contains(name string) bool {
	_, ok := a.ingredients[name]
	return ok
}

// Known returns all listed ingredient names and synonyms, sorted.
func (a *Aisle) Known() []string {
	names := make([]string, 0, len(a.ingredients))
	for name := range a.ingredients {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Categories returns the lowercased category names, sorted.
func (a *Aisle) Categories() []string {
	names := make([]string, 0, len(a.categories))
	for name := range a.categories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Unknown filters the given ingredients down to those aisle.conf does not
// list, sorted.
func (a *Aisle) Unknown(ingredients []string) []string {
	var unknown []string
	for _, name := range ingredients {
		if !a.Contains(name) {
			unknown = append(unknown, name)
		}
	}
	sort.Strings(unknown)
	return unknown
}

// Apply merges the proposed changes into the configuration and returns the
// resulting lines plus a human-readable note per edit. Synonyms extend the
// matching ingredient line; new items are inserted right under their
// category header, and unknown categories are appended at the end. A
// synonym whose base ingredient is not actually listed lands under
// [uncategorized] with its variants inline.
func (a *Aisle) Apply(changes *Changes) (lines []string, notes []string) {
	out := make([]string, len(a.Lines))
	copy(out, a.Lines)

	newItems := make(map[string][]string, len(changes.NewItems))
	for cat, items := range changes.NewItems {
		newItems[cat] = append(newItems[cat], items...)
	}

	for _, existing := range sortedKeys(changes.Synonyms) {
		syns := changes.Synonyms[existing]
		idx, ok := a.ingredients[existing]
		if !ok {
			notes = append(notes, "'"+existing+"' is not listed; adding it under [uncategorized]")
			newItems["uncategorized"] = append(newItems["uncategorized"], existing+" | "+strings.Join(syns, " | "))
			continue
		}

		listed := make(map[string]struct{})
		for _, part := range strings.Split(out[idx], "|") {
			listed[strings.TrimSpace(part)] = struct{}{}
		}
		var toAdd []string
		for _, s := range syns {
			if _, dup := listed[s]; !dup {
				toAdd = append(toAdd, s)
				listed[s] = struct{}{}
			}
		}
		if len(toAdd) > 0 {
			out[idx] += " | " + strings.Join(toAdd, " | ")
			notes = append(notes, "extended '"+existing+"' with "+strings.Join(toAdd, ", "))
		}
	}

	// Split placements between categories that already exist and ones the
	// model invented.
	underExisting := make(map[string][]string)
	var newCategories []string
	newCategoryItems := make(map[string][]string)
	for _, cat := range sortedKeys(newItems) {
		items := newItems[cat]
		normalized := strings.ToLower(strings.Trim(cat, "[]"))
		if _, ok := a.categories[normalized]; ok {
			underExisting[normalized] = append(underExisting[normalized], items...)
		} else {
			newCategories = append(newCategories, cat)
			newCategoryItems[cat] = append(newCategoryItems[cat], items...)
		}
	}

	headerToCategory := make(map[int]string, len(a.categories))
	for name, idx := range a.categories {
		headerToCategory[idx] = name
	}

	var final []string
	for idx, line := range out {
		final = append(final, line)
		cat, isHeader := headerToCategory[idx]
		if !isHeader {
			continue
		}
		for _, item := range underExisting[cat] {
			final = append(final, item)
			notes = append(notes, "added to ["+cat+"]: "+item)
		}
	}

	if len(newCategories) > 0 {
		if len(final) > 0 && strings.TrimSpace(final[len(final)-1]) != "" {
			final = append(final, "")
		}
		for _, cat := range newCategories {
			header := cat
			if !strings.HasPrefix(header, "[") {
				header = "[" + header + "]"
			}
			final = append(final, header)
			notes = append(notes, "created category "+header)
			for _, item := range newCategoryItems[cat] {
				final = append(final, item)
				notes = append(notes, "added to "+header+": "+item)
			}
			final = append(final, "")
		}
	}

	return final, notes
}

// WriteFile writes the configuration lines to path atomically, creating the
// parent directory when needed.
func WriteFile(path string, lines []string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, constants.DirPermissions); err != nil {
		return errors.WrapIO("create", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".aisle-*.conf")
	if err != nil {
		return errors.WrapIO("create", "temp aisle file", err)
	}
	tmpPath := tmp.Name()

	content := strings.Join(lines, "\n") + "\n"
	if _, err := tmp.WriteString(content); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return errors.WrapIO("write", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return errors.WrapIO("close", tmpPath, err)
	}
	if err := os.Chmod(tmpPath, constants.FilePermissions); err != nil {
		_ = os.Remove(tmpPath)
		return errors.WrapIO("chmod", tmpPath, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return errors.WrapIO("rename", path, err)
	}
	return nil
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
