package recipe

import (
	"strings"

	"github.com/larderhq/larder/pkg/errors"
)

// Front-matter edits are line based rather than re-marshaled so that key
// order, comments, and formatting the author chose are preserved.

// SetTags replaces the front-matter `tags` field in content with an inline
// tag line. A block-list encoding is absorbed and replaced by the inline
// form. When no `tags` field exists, one is appended at the end of the
// block. Content without a closed front-matter block is rejected.
func SetTags(content []byte, tags []string) ([]byte, error) {
	lines, bodyStart, err := splitFrontMatter(content)
	if err != nil {
		return nil, err
	}

	tagLine := "tags: " + strings.Join(tags, ", ")

	var out []string
	replaced := false
	skipItems := false
	for _, line := range lines {
		stripped := strings.TrimSpace(line)
		if skipItems {
			if strings.HasPrefix(stripped, "-") {
				continue
			}
			skipItems = false
		}
		if strings.HasPrefix(strings.ToLower(strings.TrimLeft(line, " \t")), "tags:") {
			if !replaced {
				out = append(out, tagLine)
				replaced = true
			}
			// Absorb the block-list items of the encoding we replaced.
			skipItems = strings.TrimSpace(strings.SplitN(stripped, ":", 2)[1]) == ""
			continue
		}
		out = append(out, line)
	}
	if !replaced {
		out = append(out, tagLine)
	}

	return assemble(out, content, bodyStart), nil
}

// RemoveField deletes a front-matter field (and any indented block-list
// items that follow it) from content. The second return reports whether
// the field was present.
func RemoveField(content []byte, key string) ([]byte, bool, error) {
	lines, bodyStart, err := splitFrontMatter(content)
	if err != nil {
		return nil, false, err
	}

	prefix := strings.ToLower(key) + ":"
	var out []string
	removed := false
	skipItems := false
	for _, line := range lines {
		stripped := strings.TrimSpace(line)
		if skipItems {
			if strings.HasPrefix(stripped, "-") {
				continue
			}
			skipItems = false
		}
		if strings.HasPrefix(strings.ToLower(strings.TrimLeft(line, " \t")), prefix) {
			removed = true
			skipItems = strings.TrimSpace(strings.SplitN(stripped, ":", 2)[1]) == ""
			continue
		}
		out = append(out, line)
	}

	if !removed {
		return content, false, nil
	}
	return assemble(out, content, bodyStart), true, nil
}

// splitFrontMatter returns the lines between the two `---` delimiters and
// the index of the first body line in the original line slice.
func splitFrontMatter(content []byte) (front []string, bodyStart int, err error) {
	lines := strings.Split(string(content), "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != "---" {
		return nil, 0, errors.ErrNoFrontMatter
	}

	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			return lines[1:i], i + 1, nil
		}
	}
	return nil, 0, errors.NewParseError("frontmatter", "", "front matter not closed with '---'", errors.ErrNoFrontMatter)
}

// assemble re-joins an edited front-matter block with the untouched body.
func assemble(front []string, content []byte, bodyStart int) []byte {
	lines := strings.Split(string(content), "\n")
	out := make([]string, 0, len(front)+2+len(lines)-bodyStart)
	out = append(out, "---")
	out = append(out, front...)
	out = append(out, "---")
	out = append(out, lines[bodyStart:]...)
	return []byte(strings.Join(out, "\n"))
}
