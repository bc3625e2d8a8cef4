package config

import "path/filepath"

const (
	// DefaultRoot is the directory the dependency is cloned into,
	// relative to the working root.
	DefaultRoot = "external"

	// FileName is the name of the config file inside the root.
	FileName = "config.json"

	// DefaultCheckout is used when the source does not name a branch or tag.
	DefaultCheckout = "master"
)

// DefaultPath returns the config file location for the given root.
func DefaultPath(root string) string {
	return filepath.Join(root, FileName)
}
