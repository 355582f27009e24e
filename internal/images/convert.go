package images

import (
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"

	"github.com/larderhq/larder/pkg/constants"
	"github.com/larderhq/larder/pkg/errors"
)

// jpegQuality balances file size against visible artifacts for food photos.
const jpegQuality = 90

// convertToJPEG moves the raw download to dest, re-encoding when the source
// is not already a JPEG. It reports whether a conversion happened. The raw
// file is consumed either way.
func convertToJPEG(rawPath, dest string) (bool, error) {
	raw, err := os.Open(rawPath)
	if err != nil {
		return false, errors.WrapIO("open", rawPath, err)
	}

	_, format, err := image.Decode(raw)
	_ = raw.Close()
	if err != nil {
		return false, errors.WrapParse("image", rawPath, err)
	}

	if format == "jpeg" {
		if err := os.Rename(rawPath, dest); err != nil {
			return false, errors.WrapIO("rename", dest, err)
		}
		return false, nil
	}

	// Decode again from the start; image.Decode consumed the reader.
	raw, err = os.Open(rawPath)
	if err != nil {
		return false, errors.WrapIO("open", rawPath, err)
	}
	defer func() { _ = raw.Close() }()

	img, _, err := image.Decode(raw)
	if err != nil {
		return false, errors.WrapParse("image", rawPath, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dest), ".convert-*.jpg")
	if err != nil {
		return false, errors.WrapIO("create", "temp jpeg file", err)
	}
	tmpPath := tmp.Name()

	if err := jpeg.Encode(tmp, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
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
	if err := os.Rename(tmpPath, dest); err != nil {
		_ = os.Remove(tmpPath)
		return false, errors.WrapIO("rename", dest, err)
	}

	_ = os.Remove(rawPath)
	return true, nil
}
