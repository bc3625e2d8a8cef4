// Package stage prepares the target directory for a fresh clone.
//
// The config file that describes the dependency lives inside the directory
// that gets replaced, so it is copied to a temporary stash before the
// directory is emptied and copied back once the clone has finished:
//
//	if err := stage.EnsureDir(target); err != nil {
//	    return err
//	}
//	stash, err := stage.Acquire(configPath)
//	if err != nil {
//	    return err
//	}
//	defer stash.Release()
//
//	if err := stage.EmptyDir(target); err != nil {
//	    return err
//	}
package stage
