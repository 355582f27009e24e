package tagindex

import (
	"os"
	"path/filepath"

	"github.com/larderhq/larder/pkg/constants"
	"github.com/larderhq/larder/pkg/errors"
)

// WriteFile renders the index to path, replacing any previous document
// atomically: the content is staged in a temporary file in the destination
// directory and moved into place, so readers never observe a truncated
// index and a crash mid-write leaves the old document intact.
func (ix *Index) WriteFile(path string, opts ...RenderOption) error {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, ".tags-index-*.md")
	if err != nil {
		return errors.WrapIO("create", "temp index file", err)
	}
	tmpPath := tmp.Name()

	if err := ix.Render(tmp, opts...); err != nil {
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
