package discover

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// SupportedExtensions lists the lowercase file extensions picked up by
// FindImages.
var SupportedExtensions = []string{".png", ".jpg", ".jpeg", ".bmp", ".tiff"}

// IsSupported reports whether name ends with one of SupportedExtensions,
// ignoring case.
func IsSupported(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range SupportedExtensions {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// FindImages lists the image files directly inside dir.
//
// Only the directory root is scanned; subdirectories are never entered.
// An entry is kept when it is a regular file (symlinks are followed) and its
// name has a supported extension.
//
// The returned paths are joined with dir and sorted lexicographically so that
// progress output is stable between runs. Order has no other effect.
//
// When dir cannot be read, FindImages returns a nil slice and the error.
// Entries that vanish or cannot be stat'ed during the scan are skipped.
//
// Example:
//
//	paths, err := FindImages("/photos")
//	// paths = ["/photos/a.png", "/photos/b.JPG"]
func FindImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, entry := range entries {
		if !IsSupported(entry.Name()) {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		if !isRegularFile(entry, path) {
			continue
		}
		paths = append(paths, path)
	}

	sort.Strings(paths)
	return paths, nil
}

func isRegularFile(entry os.DirEntry, path string) bool {
	if entry.Type().IsRegular() {
		return true
	}
	if entry.Type()&os.ModeSymlink == 0 {
		return false
	}
	fi, err := os.Stat(path)
	return err == nil && fi.Mode().IsRegular()
}
