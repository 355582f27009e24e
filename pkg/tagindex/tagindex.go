// Package tagindex builds the repository-wide tag index for a tree of
// Cooklang recipe files. It scans for recipe files, extracts each file's
// declared front-matter tags, aggregates per-file usage counts, and renders
// a sorted markdown index document.
//
// The index is derived state: it is regenerated in full on every run and is
// a deterministic function of the recipe files, independent of filesystem
// enumeration order. Rendering embeds no timestamps so reruns over an
// unchanged tree are byte identical.
package tagindex

import (
	"sort"
)

// Entry is one aggregated tag: the number of distinct recipe files that
// declare it, and which files those are.
type Entry struct {
	Tag   string   `json:"tag"`
	Count int      `json:"count"`
	Files []string `json:"files,omitempty"`
}

// Index is the ordered collection of tag entries, sorted by count
// descending with ties broken by tag name ascending.
type Index struct {
	Entries []Entry
}

// newIndex builds a sorted Index from a tag -> declaring-files mapping.
func newIndex(tagFiles map[string]map[string]struct{}) *Index {
	entries := make([]Entry, 0, len(tagFiles))
	for tag, files := range tagFiles {
		entry := Entry{Tag: tag, Count: len(files)}
		for f := range files {
			entry.Files = append(entry.Files, f)
		}
		sort.Strings(entry.Files)
		entries = append(entries, entry)
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Tag < entries[j].Tag
	})

	return &Index{Entries: entries}
}

// Empty reports whether the index holds no tags at all.
func (ix *Index) Empty() bool {
	return len(ix.Entries) == 0
}

// Top returns up to n leading entries.
func (ix *Index) Top(n int) []Entry {
	if n >= len(ix.Entries) {
		return ix.Entries
	}
	return ix.Entries[:n]
}
