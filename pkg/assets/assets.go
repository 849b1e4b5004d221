// Package assets copies body images into the build output.
package assets

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/voyager/pkg/body"
	"github.com/matzehuels/voyager/pkg/errors"
)

// ImageNames lists the source image names per body directory, in order of
// precedence.
var ImageNames = []string{"image.png", "image.jpg"}

// Copier copies images from a body data directory into an output directory.
type Copier struct {
	Logger *log.Logger
}

// CopyImages copies each body's image from srcRoot/<id>/ to destRoot/<id>.<ext>.
// A PNG takes precedence over a JPEG. The file is copied only when the
// destination is missing or older than the source. Bodies without an image
// are skipped.
//
// The returned map holds the destination file name for every body that has
// an image, copied or already up to date.
func (c Copier) CopyImages(srcRoot, destRoot string, bodies []body.Body) (map[string]string, error) {
	logger := c.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	if err := os.MkdirAll(destRoot, 0o755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", destRoot)
	}

	files := make(map[string]string, len(bodies))
	for _, b := range bodies {
		src, ext, ok := findImage(filepath.Join(srcRoot, b.ID))
		if !ok {
			continue
		}
		name := b.ID + ext
		dest := filepath.Join(destRoot, name)

		copied, err := copyIfNewer(src, dest)
		if err != nil {
			return nil, err
		}
		if copied {
			logger.Debug("copied image", "body", b.ID, "file", name)
		}
		files[b.ID] = name
	}
	return files, nil
}

// CopyImages runs [Copier.CopyImages] without logging.
func CopyImages(srcRoot, destRoot string, bodies []body.Body) (map[string]string, error) {
	return Copier{}.CopyImages(srcRoot, destRoot, bodies)
}

func findImage(dir string) (path, ext string, ok bool) {
	for _, name := range ImageNames {
		p := filepath.Join(dir, name)
		if info, err := os.Stat(p); err == nil && info.Mode().IsRegular() {
			return p, filepath.Ext(name), true
		}
	}
	return "", "", false
}

func copyIfNewer(src, dest string) (bool, error) {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return false, errors.Wrap(errors.ErrCodeFileNotFound, err, "stat %s", src)
	}
	if destInfo, err := os.Stat(dest); err == nil && !srcInfo.ModTime().After(destInfo.ModTime()) {
		return false, nil
	}

	in, err := os.Open(src)
	if err != nil {
		return false, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", src)
	}
	defer in.Close()

	tmp := dest + ".tmp"
	out, err := os.Create(tmp)
	if err != nil {
		return false, errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", dest)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(tmp)
		return false, errors.Wrap(errors.ErrCodeInternal, err, "copy %s", src)
	}
	if err := out.Close(); err != nil {
		os.Remove(tmp)
		return false, errors.Wrap(errors.ErrCodeInternal, err, "close %s", dest)
	}
	// Carry the source mtime so an unchanged source is not copied again.
	if err := os.Chtimes(tmp, srcInfo.ModTime(), srcInfo.ModTime()); err != nil {
		os.Remove(tmp)
		return false, errors.Wrap(errors.ErrCodeInternal, err, "chtimes %s", dest)
	}
	if err := os.Rename(tmp, dest); err != nil {
		os.Remove(tmp)
		return false, errors.Wrap(errors.ErrCodeInternal, err, "rename %s", dest)
	}
	return true, nil
}
