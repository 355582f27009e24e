package tagindex

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/larderhq/larder/pkg/constants"
	"github.com/larderhq/larder/pkg/errors"
	"github.com/larderhq/larder/pkg/logging"
	"github.com/larderhq/larder/pkg/recipe"
)

// Builder scans a recipe tree and aggregates tag usage.
type Builder struct {
	root        string
	extension   string
	outputName  string
	excludeDirs map[string]struct{}
	concurrency int
	logger      *zerolog.Logger
}

// Option configures a Builder.
type Option func(*Builder)

// WithExtension overrides the recognized recipe file extension.
func WithExtension(ext string) Option {
	return func(b *Builder) {
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		b.extension = ext
	}
}

// WithOutputName sets the index document file name so a previously
// generated index is never scanned as input.
func WithOutputName(name string) Option {
	return func(b *Builder) { b.outputName = filepath.Base(name) }
}

// WithExcludeDirs replaces the set of directory names skipped during the
// scan. Hidden directories are always skipped.
func WithExcludeDirs(names ...string) Option {
	return func(b *Builder) {
		b.excludeDirs = make(map[string]struct{}, len(names))
		for _, n := range names {
			b.excludeDirs[n] = struct{}{}
		}
	}
}

// WithConcurrency caps the number of recipe files read in parallel.
// Parallelism is a read-only optimization; output is unaffected.
func WithConcurrency(n int) Option {
	return func(b *Builder) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// WithLogger sets the logger used for per-file warnings.
func WithLogger(logger *zerolog.Logger) Option {
	return func(b *Builder) { b.logger = logger }
}

// New creates a Builder rooted at the given directory.
func New(root string, opts ...Option) *Builder {
	b := &Builder{
		root:        root,
		extension:   constants.RecipeExtension,
		outputName:  constants.IndexFileName,
		excludeDirs: map[string]struct{}{constants.ConfigDirName: {}},
		concurrency: constants.MaxConcurrentReads,
		logger:      logging.Default(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build scans the tree and returns the aggregated index.
// Unreadable files are logged and skipped; they never fail the run.
func (b *Builder) Build(ctx context.Context) (*Index, error) {
	paths, err := b.collect()
	if err != nil {
		return nil, err
	}

	files := make([]*recipe.File, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(b.concurrency)

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			f, err := recipe.Load(filepath.Join(b.root, path))
			if err != nil {
				b.logger.Warn().Err(err).Str("recipe", path).Msg("Skipping unreadable recipe")
				return nil
			}
			files[i] = f
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// A per-file set keeps repeated declarations of the same tag within
	// one file from inflating its count.
	tagFiles := make(map[string]map[string]struct{})
	for i, f := range files {
		if f == nil {
			continue
		}
		for _, tag := range f.Tags() {
			set, ok := tagFiles[tag]
			if !ok {
				set = make(map[string]struct{})
				tagFiles[tag] = set
			}
			set[paths[i]] = struct{}{}
		}
	}

	return newIndex(tagFiles), nil
}

// collect enumerates recipe files under the root, as slash-separated paths
// relative to it, in sorted order.
func (b *Builder) collect() ([]string, error) {
	var paths []string

	err := fs.WalkDir(os.DirFS(b.root), ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == "." {
				return err
			}
			b.logger.Warn().Err(err).Str("path", path).Msg("Skipping unreadable directory entry")
			return nil
		}
		name := d.Name()
		if d.IsDir() {
			if path == "." {
				return nil
			}
			if strings.HasPrefix(name, ".") {
				return fs.SkipDir
			}
			if _, excluded := b.excludeDirs[name]; excluded {
				return fs.SkipDir
			}
			return nil
		}
		if filepath.Ext(name) != b.extension || name == b.outputName {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, errors.WrapIO("scan", b.root, err)
	}

	sort.Strings(paths)
	return paths, nil
}
