// Package config loads the descriptor of the external dependency to fetch.
package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

// Provider identifies the hosting service a dependency lives on.
type Provider string

const (
	ProviderGitHub Provider = "github"
	ProviderGitLab Provider = "gitlab"
)

// Config represents the contents of the external config file.
type Config struct {
	From Source `json:"from"`

	// Internal: path the config was loaded from
	path string
}

// Source describes where the dependency is cloned from.
type Source struct {
	Type     Provider `json:"type"`
	Owner    string   `json:"owner,omitempty"`
	Name     string   `json:"name"`
	Origin   string   `json:"origin,omitempty"`
	Checkout string   `json:"checkout,omitempty"`
}

// Path returns the file the config was loaded from.
func (c *Config) Path() string {
	return c.path
}

// Ref returns the branch or tag to check out, falling back to DefaultCheckout.
func (s Source) Ref() string {
	if s.Checkout == "" {
		return DefaultCheckout
	}
	return s.Checkout
}

// ReadError is returned when the config file cannot be read.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("failed to read config file %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error {
	return e.Err
}

// ParseError is returned when the config file is not valid JSON
// or does not match the expected structure.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse config file %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Load reads and decodes the config file at path.
// No defaults are applied; see Source.Ref for the checkout fallback.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &ReadError{Path: path, Err: err}
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	cfg.path = path

	return cfg, nil
}

// Parse decodes config file contents.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&cfg); err != nil {
		return nil, err
	}

	// Reject trailing garbage after the top-level object
	if dec.More() {
		return nil, fmt.Errorf("unexpected data after config object")
	}

	return &cfg, nil
}
