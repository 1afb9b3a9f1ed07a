// Package source resolves a configured wallpaper path to the image
// file that should be shown.
package source

import (
	"errors"
	"fmt"
	"io/fs"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"

	"deedles.dev/wlpaperd/internal/set"
	"deedles.dev/wlpaperd/internal/xslices"
)

// ErrNoImages is returned when a directory contains no usable images.
var ErrNoImages = errors.New("no images found")

var extensions = set.New(
	".bmp",
	".gif",
	".jpeg",
	".jpg",
	".png",
	".tif",
	".tiff",
	".webp",
)

// IsImage reports whether path has the extension of a supported image
// format. The comparison is case-insensitive.
func IsImage(path string) bool {
	return extensions.Has(strings.ToLower(filepath.Ext(path)))
}

// List returns the regular files below dir, recursively, for which
// keep returns true.
func List(dir string, keep func(string) bool) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if isFile(path, d) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return xslices.Filter(files, keep), nil
}

// isFile reports whether d is a regular file or a symlink to one.
func isFile(path string, d fs.DirEntry) bool {
	if d.Type()&fs.ModeSymlink == 0 {
		return d.Type().IsRegular()
	}

	info, err := os.Stat(path)
	return (err == nil) && info.Mode().IsRegular()
}

// Resolve returns the image to show for path. If path is a directory,
// it is searched anew on every call and an image is chosen with pick,
// which must return a value in [0, n). A nil pick chooses uniformly at
// random.
func Resolve(path string, pick func(n int) int) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return path, nil
	}

	files, err := List(path, IsImage)
	if err != nil {
		return "", fmt.Errorf("list %q: %w", path, err)
	}
	if len(files) == 0 {
		return "", fmt.Errorf("%q: %w", path, ErrNoImages)
	}

	if pick == nil {
		pick = rand.IntN
	}
	return files[pick(len(files))], nil
}
