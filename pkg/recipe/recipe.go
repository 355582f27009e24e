// Package recipe provides parsing and editing of Cooklang recipe files.
// A recipe file carries an optional YAML front-matter block between `---`
// delimiter lines, followed by the free-text recipe body. Only the front
// matter is interpreted here; the body is opaque except for ingredient
// references.
package recipe

import (
	"os"

	"github.com/larderhq/larder/pkg/errors"
)

// FrontMatter is the recognized metadata block at the top of a recipe file.
// Unknown keys are preserved in Extra so round-trips stay lossless.
type FrontMatter struct {
	Title  string         `yaml:"title"`
	Source string         `yaml:"source"`
	Image  string         `yaml:"image"`
	Tags   TagList        `yaml:"tags"`
	Extra  map[string]any `yaml:",inline"`
}

// File is one parsed recipe file.
type File struct {
	// Path is the location the file was read from, when known.
	Path string

	// Meta holds the decoded front matter. Zero value when the file has
	// no front-matter block or the block could not be decoded.
	Meta FrontMatter

	// Body is the recipe text after the front-matter block.
	Body []byte

	// HasFrontMatter reports whether a front-matter block was present
	// and decoded successfully.
	HasFrontMatter bool
}

// Load reads and parses the recipe file at path.
// A missing or malformed front-matter block is not an error: the returned
// File simply has HasFrontMatter unset and contributes no tags.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}

	f := Parse(data)
	f.Path = path
	return f, nil
}

// Tags returns the file's normalized tags, duplicates removed,
// in declaration order. Files without front matter have none.
func (f *File) Tags() []string {
	if !f.HasFrontMatter {
		return nil
	}
	return f.Meta.Tags.Normalized()
}
