package stage

import (
	"errors"
	"os"
	"path/filepath"
)

var errNotDir = errors.New("exists and is not a directory")

// EnsureDir creates path and any missing parents.
// Missing ancestors are collected walking upward and created parent first.
// It is a no-op if path already exists as a directory.
func EnsureDir(path string) error {
	var missing []string
	dir := filepath.Clean(path)
	for {
		info, err := os.Stat(dir)
		if err == nil {
			if dir == filepath.Clean(path) && !info.IsDir() {
				return &DirectoryCreateError{Path: path, Err: errNotDir}
			}
			break
		}
		if !errors.Is(err, os.ErrNotExist) {
			return &DirectoryCreateError{Path: dir, Err: err}
		}

		missing = append(missing, dir)
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	for i := len(missing) - 1; i >= 0; i-- {
		if err := os.Mkdir(missing[i], 0755); err != nil {
			return &DirectoryCreateError{Path: missing[i], Err: err}
		}
	}

	return nil
}

// EmptyDir removes everything inside path, leaving path itself in place.
// It stops at the first failure, which may leave the directory partially cleared.
func EmptyDir(path string) error {
	entries, err := os.ReadDir(path)
	if err != nil {
		return &ClearError{Path: path, Err: err}
	}

	for _, entry := range entries {
		name := entry.Name()
		// Most listings never return these, but never walk out of path
		if name == "." || name == ".." {
			continue
		}
		if err := removeEntry(filepath.Join(path, name), entry.IsDir()); err != nil {
			return err
		}
	}

	return nil
}

// removeEntry deletes a file, or a directory after emptying it.
// Symlinks to directories are unlinked, not followed.
func removeEntry(path string, isDir bool) error {
	if isDir {
		if err := EmptyDir(path); err != nil {
			return err
		}
	}

	if err := os.Remove(path); err != nil {
		return &ClearError{Path: path, Err: err}
	}

	return nil
}
