// Package ioutils provides file system utilities for the webp-converter.
//
// This package contains functions for:
//   - Directory creation
//   - Atomic file replacement
package ioutils

import (
	"os"
	"path/filepath"
)

// EnsureDir creates a directory and all parent directories if they don't exist.
//
// Directories are created with mode 0755 (rwxr-xr-x).
// If the directory already exists, no error is returned, so concurrent
// callers racing on the same path all succeed.
//
// Example:
//
//	err := EnsureDir("/photos/webp/2024")
//	// Creates /photos/webp and /photos/webp/2024 if needed
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}

// WriteFileAtomic writes data to path by writing a temporary file in the same
// directory and renaming it over path.
//
// Readers never observe a partially written file. When two writers target the
// same path, the last rename wins and the file holds exactly one writer's data.
// The file is created with mode 0644; an existing file is replaced.
//
// Example:
//
//	err := WriteFileAtomic("/photos/webp/beach.webp", encoded)
func WriteFileAtomic(path string, data []byte) error {
	dir, name := filepath.Split(path)
	if dir == "" {
		dir = "."
	}

	tmp, err := os.CreateTemp(dir, "."+name+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}()

	if _, err := tmp.Write(data); err != nil {
		return err
	}
	if err := tmp.Chmod(0644); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmpName, path)
}
