package images

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/larderhq/larder/pkg/errors"
	"github.com/larderhq/larder/pkg/logging"
)

func testImage(t *testing.T, encode func(*bytes.Buffer, image.Image) error) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for x := range 4 {
		for y := range 4 {
			img.Set(x, y, color.RGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, encode(&buf, img))
	return buf.Bytes()
}

func pngBytes(t *testing.T) []byte {
	return testImage(t, func(buf *bytes.Buffer, img image.Image) error {
		return png.Encode(buf, img)
	})
}

func jpegBytes(t *testing.T) []byte {
	return testImage(t, func(buf *bytes.Buffer, img image.Image) error {
		return jpeg.Encode(buf, img, nil)
	})
}

func imageServer(t *testing.T, urlPath string, body []byte) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != urlPath {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write(body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func writeCookFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFetchJPEG(t *testing.T) {
	srv := imageServer(t, "/photos/soup.jpg", jpegBytes(t))
	dir := t.TempDir()
	cook := writeCookFile(t, dir, "lentil-soup.cook",
		"---\ntitle: Lentil Soup\nimage: "+srv.URL+"/photos/soup.jpg\ntags: soup\n---\nbody\n")

	result, err := New(WithLogger(&logging.Nop)).Fetch(context.Background(), cook)
	require.NoError(t, err)

	assert.Equal(t, StatusDownloaded, result.Status)
	assert.Equal(t, cook, result.CookFile)
	assert.False(t, result.Converted)
	assert.False(t, result.MetadataRemoved)
	assert.Equal(t, filepath.Join(dir, "lentil-soup.jpg"), result.Destination)
	assert.FileExists(t, result.Destination)
}

func TestFetchConvertsPNG(t *testing.T) {
	srv := imageServer(t, "/soup.png", pngBytes(t))
	dir := t.TempDir()
	cook := writeCookFile(t, dir, "soup.cook",
		"---\nimage: "+srv.URL+"/soup.png\n---\nbody\n")

	result, err := New(WithLogger(&logging.Nop)).Fetch(context.Background(), cook)
	require.NoError(t, err)

	assert.True(t, result.Converted)
	assert.FileExists(t, result.Destination)
	assert.NoFileExists(t, result.DownloadedFile, "raw download is consumed by conversion")

	f, err := os.Open(result.Destination)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	_, format, err := image.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
}

func TestFetchRemovesImageField(t *testing.T) {
	srv := imageServer(t, "/soup.jpg", jpegBytes(t))
	dir := t.TempDir()
	cook := writeCookFile(t, dir, "soup.cook",
		"---\ntitle: Soup\nimage: "+srv.URL+"/soup.jpg\ntags: soup\n---\nbody\n")

	result, err := New(WithLogger(&logging.Nop), WithFieldRemoval()).Fetch(context.Background(), cook)
	require.NoError(t, err)
	assert.True(t, result.MetadataRemoved)

	content, err := os.ReadFile(cook)
	require.NoError(t, err)
	assert.NotContains(t, string(content), "image:")
	assert.Contains(t, string(content), "title: Soup")
	assert.Contains(t, string(content), "tags: soup")
}

func TestFetchNoImageField(t *testing.T) {
	dir := t.TempDir()
	cook := writeCookFile(t, dir, "plain.cook", "---\ntags: soup\n---\nbody\n")

	result, err := New(WithLogger(&logging.Nop)).Fetch(context.Background(), cook)
	require.NoError(t, err)
	assert.Equal(t, StatusNoImage, result.Status)
	assert.Empty(t, result.Destination)
}

func TestFetchHTTPError(t *testing.T) {
	srv := imageServer(t, "/exists.jpg", jpegBytes(t))
	dir := t.TempDir()
	cook := writeCookFile(t, dir, "soup.cook",
		"---\nimage: "+srv.URL+"/missing.jpg\n---\nbody\n")

	_, err := New(WithLogger(&logging.Nop)).Fetch(context.Background(), cook)
	require.Error(t, err)

	var apiErr *errors.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
}

func TestFetchNotAnImage(t *testing.T) {
	srv := imageServer(t, "/page.jpg", []byte("<html>not an image</html>"))
	dir := t.TempDir()
	cook := writeCookFile(t, dir, "soup.cook",
		"---\nimage: "+srv.URL+"/page.jpg\n---\nbody\n")

	_, err := New(WithLogger(&logging.Nop)).Fetch(context.Background(), cook)
	require.Error(t, err)

	var parseErr *errors.ParseError
	assert.ErrorAs(t, err, &parseErr)
}

func TestRawFileName(t *testing.T) {
	assert.Equal(t, "soup.download.png", rawFileName("https://example.com/x/y.png", "/r/soup.cook"))
	assert.Equal(t, "soup.download.img", rawFileName("https://example.com/image", "/r/soup.cook"))
	assert.Equal(t, "soup.download.jpg", rawFileName("https://example.com/A.JPG?x=1", "/r/soup.cook"))
}
