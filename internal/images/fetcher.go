// Package images downloads a recipe's front-matter image URL to a sibling
// JPEG file, converting other formats on the way, and can strip the image
// field from the recipe once the file is local.
package images

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/larderhq/larder/pkg/constants"
	"github.com/larderhq/larder/pkg/errors"
	"github.com/larderhq/larder/pkg/logging"
	"github.com/larderhq/larder/pkg/recipe"
)

// Fetch outcome status values.
const (
	// StatusDownloaded means the image was fetched and now sits next to
	// the recipe as a JPEG.
	StatusDownloaded = "downloaded"

	// StatusNoImage means the recipe declares no image URL; nothing to do.
	StatusNoImage = "no_image"
)

// Result reports the outcome of one fetch.
type Result struct {
	Status          string `json:"status"`
	CookFile        string `json:"cook_file"`
	ImageURL        string `json:"image_url,omitempty"`
	DownloadedFile  string `json:"downloaded_file,omitempty"`
	Destination     string `json:"destination,omitempty"`
	Converted       bool   `json:"converted"`
	MetadataRemoved bool   `json:"metadata_removed"`
}

// Fetcher downloads recipe images.
type Fetcher struct {
	client      *http.Client
	logger      *zerolog.Logger
	removeField bool
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithHTTPClient replaces the HTTP client used for downloads.
func WithHTTPClient(client *http.Client) Option {
	return func(f *Fetcher) { f.client = client }
}

// WithLogger sets the logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(f *Fetcher) { f.logger = logger }
}

// WithFieldRemoval makes Fetch strip the image field from the recipe's
// front matter after a successful download.
func WithFieldRemoval() Option {
	return func(f *Fetcher) { f.removeField = true }
}

// New creates a Fetcher.
func New(opts ...Option) *Fetcher {
	f := &Fetcher{
		client: &http.Client{Timeout: constants.DefaultHTTPTimeout},
		logger: logging.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch downloads the image URL declared in the recipe's front matter to a
// JPEG file next to the recipe. Non-JPEG downloads are converted; the raw
// download is not kept. A recipe without an image field yields a no_image
// result rather than an error.
func (f *Fetcher) Fetch(ctx context.Context, cookPath string) (*Result, error) {
	rec, err := recipe.Load(cookPath)
	if err != nil {
		return nil, err
	}

	result := &Result{CookFile: cookPath}
	if !rec.HasFrontMatter || rec.Meta.Image == "" {
		result.Status = StatusNoImage
		return result, nil
	}
	result.ImageURL = rec.Meta.Image

	rawPath, err := f.download(ctx, rec.Meta.Image, cookPath)
	if err != nil {
		return nil, err
	}
	result.DownloadedFile = rawPath

	dest := strings.TrimSuffix(cookPath, filepath.Ext(cookPath)) + ".jpg"
	converted, err := convertToJPEG(rawPath, dest)
	if err != nil {
		_ = os.Remove(rawPath)
		return nil, err
	}
	result.Destination = dest
	result.Converted = converted

	if f.removeField {
		removed, err := f.stripImageField(cookPath)
		if err != nil {
			return nil, err
		}
		result.MetadataRemoved = removed
	}

	result.Status = StatusDownloaded
	f.logger.Info().
		Str("recipe", cookPath).
		Str("destination", dest).
		Bool("converted", converted).
		Msg("Image downloaded")
	return result, nil
}

// download fetches the URL into a file next to the recipe, named after the
// recipe with the URL's extension, and returns its path.
func (f *Fetcher) download(ctx context.Context, imageURL, cookPath string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return "", errors.NewValidationError("image", imageURL, "invalid image URL")
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", &errors.APIError{
			Service:  "image host",
			Endpoint: imageURL,
			Message:  "download failed",
			Err:      err,
		}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", &errors.APIError{
			Service:    "image host",
			Endpoint:   imageURL,
			StatusCode: resp.StatusCode,
			Message:    resp.Status,
		}
	}

	dir := filepath.Dir(cookPath)
	tmp, err := os.CreateTemp(dir, ".image-*")
	if err != nil {
		return "", errors.WrapIO("create", "temp image file", err)
	}
	tmpPath := tmp.Name()

	if _, err := io.Copy(tmp, resp.Body); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return "", errors.WrapIO("write", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return "", errors.WrapIO("close", tmpPath, err)
	}

	rawPath := filepath.Join(dir, rawFileName(imageURL, cookPath))
	if err := os.Rename(tmpPath, rawPath); err != nil {
		_ = os.Remove(tmpPath)
		return "", errors.WrapIO("rename", rawPath, err)
	}
	return rawPath, nil
}

// rawFileName names the raw download after the recipe, keeping the URL's
// file extension when it has one.
func rawFileName(imageURL, cookPath string) string {
	base := strings.TrimSuffix(filepath.Base(cookPath), filepath.Ext(cookPath))

	ext := ".img"
	if u, err := url.Parse(imageURL); err == nil {
		if e := path.Ext(u.Path); e != "" {
			ext = strings.ToLower(e)
		}
	}
	return base + ".download" + ext
}

// stripImageField removes the image field from the recipe's front matter,
// writing the result back atomically.
func (f *Fetcher) stripImageField(cookPath string) (bool, error) {
	content, err := os.ReadFile(cookPath)
	if err != nil {
		return false, errors.WrapIO("read", cookPath, err)
	}

	updated, removed, err := recipe.RemoveField(content, "image")
	if err != nil {
		return false, err
	}
	if !removed {
		return false, nil
	}

	dir := filepath.Dir(cookPath)
	tmp, err := os.CreateTemp(dir, ".recipe-*.cook")
	if err != nil {
		return false, errors.WrapIO("create", "temp recipe file", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(updated); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return false, errors.WrapIO("write", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return false, errors.WrapIO("close", tmpPath, err)
	}
	if err := os.Chmod(tmpPath, constants.FilePermissions); err != nil {
		_ = os.Remove(tmpPath)
		return false, errors.WrapIO("chmod", tmpPath, err)
	}
	if err := os.Rename(tmpPath, cookPath); err != nil {
		_ = os.Remove(tmpPath)
		return false, errors.WrapIO("rename", cookPath, err)
	}
	return true, nil
}
