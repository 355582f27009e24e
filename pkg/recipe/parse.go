package recipe

import (
	"bytes"

	"github.com/adrg/frontmatter"
	"github.com/goccy/go-yaml"
)

// cookFormat decodes `---` delimited front matter with the same YAML
// decoder used everywhere else in the codebase.
var cookFormat = frontmatter.NewFormat("---", "---", yaml.Unmarshal)

// Parse splits raw recipe content into front matter and body.
// Parsing is fail-soft: content without a front-matter block, or with a
// block that does not decode, yields a File with no metadata and the
// full content as body.
func Parse(data []byte) *File {
	var meta FrontMatter

	body, err := frontmatter.Parse(bytes.NewReader(data), &meta, cookFormat)
	if err != nil {
		// Malformed front matter contributes no tags; the body is
		// everything after the block we failed to decode.
		return &File{Body: data}
	}

	// frontmatter.Parse succeeds with a zero struct when no block is
	// present, so detect presence from the raw content.
	if !hasFrontMatterBlock(data) {
		return &File{Body: body}
	}

	return &File{Meta: meta, Body: body, HasFrontMatter: true}
}

// hasFrontMatterBlock reports whether data opens with a `---` delimiter
// line that is closed by a second one.
func hasFrontMatterBlock(data []byte) bool {
	trimmed := bytes.TrimLeft(data, "\r\n \t")
	if !bytes.HasPrefix(trimmed, []byte("---")) {
		return false
	}

	rest := trimmed[3:]
	if len(rest) > 0 && rest[0] != '\n' && rest[0] != '\r' {
		return false
	}
	return bytes.Contains(rest, []byte("\n---"))
}
