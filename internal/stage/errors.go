package stage

import "fmt"

// DirectoryCreateError is returned when a directory cannot be created.
type DirectoryCreateError struct {
	Path string
	Err  error
}

func (e *DirectoryCreateError) Error() string {
	return fmt.Sprintf("failed to create directory %s: %v", e.Path, e.Err)
}

func (e *DirectoryCreateError) Unwrap() error {
	return e.Err
}

// ClearError is returned when an entry of the target directory cannot be removed.
// The directory may be left partially cleared.
type ClearError struct {
	Path string
	Err  error
}

func (e *ClearError) Error() string {
	return fmt.Sprintf("failed to clear %s: %v", e.Path, e.Err)
}

func (e *ClearError) Unwrap() error {
	return e.Err
}

// StashError is returned when the config file cannot be stashed or restored.
type StashError struct {
	Op  string // "stash" or "restore"
	Err error
}

func (e *StashError) Error() string {
	return fmt.Sprintf("failed to %s config file: %v", e.Op, e.Err)
}

func (e *StashError) Unwrap() error {
	return e.Err
}
