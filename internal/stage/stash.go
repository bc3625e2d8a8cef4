package stage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Stash is a temporary copy of a file that lives inside a directory
// about to be cleared.
type Stash struct {
	// Origin is the path the file is restored to.
	Origin string

	// TempDir is the private temporary directory holding the copy.
	TempDir string

	// TempPath is the path of the copy.
	TempPath string

	released bool
}

// Acquire copies the file at path into a fresh temporary directory.
// The caller must call Release exactly once, typically with defer.
func Acquire(path string) (*Stash, error) {
	tmpDir, err := os.MkdirTemp("", "extdeps-stash-")
	if err != nil {
		return nil, &StashError{Op: "stash", Err: fmt.Errorf("failed to create temp directory: %w", err)}
	}

	tmpPath := filepath.Join(tmpDir, filepath.Base(path))
	if err := copyFile(path, tmpPath); err != nil {
		os.RemoveAll(tmpDir) // Clean up temp dir on failure
		return nil, &StashError{Op: "stash", Err: err}
	}

	return &Stash{
		Origin:   path,
		TempDir:  tmpDir,
		TempPath: tmpPath,
	}, nil
}

// Release copies the stashed file back to its origin, creating missing
// parent directories, then removes the temporary directory.
// Calls after the first are no-ops.
func (s *Stash) Release() error {
	if s == nil || s.released {
		return nil
	}
	s.released = true

	if err := EnsureDir(filepath.Dir(s.Origin)); err != nil {
		return &StashError{Op: "restore", Err: err}
	}

	if err := copyFile(s.TempPath, s.Origin); err != nil {
		// Keep the temp copy so the file can be recovered by hand
		return &StashError{Op: "restore", Err: fmt.Errorf("%w (copy kept at %s)", err, s.TempPath)}
	}

	if err := os.RemoveAll(s.TempDir); err != nil {
		return &StashError{Op: "restore", Err: fmt.Errorf("failed to remove temp directory: %w", err)}
	}

	return nil
}

// copyFile copies src to dst, preserving the file mode.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}

	return out.Close()
}
