// Package fetch vendors the external dependency described by a config file
// into its target directory.
//
// A run loads the config, resolves the clone URL, stashes the config file
// outside the target, empties the target, clones into it and restores the
// config file. The restore runs on every exit path once the stash exists.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/hashicorp/go-hclog"

	"github.com/jokarl/extdeps/internal/config"
	"github.com/jokarl/extdeps/internal/git"
	"github.com/jokarl/extdeps/internal/source"
	"github.com/jokarl/extdeps/internal/stage"
)

// CloneDepth is the history depth fetched for the dependency.
const CloneDepth = 1

// Options configures a single run.
type Options struct {
	// ConfigPath is the config file describing the dependency.
	ConfigPath string

	// Target is the directory replaced by the clone.
	Target string
}

// Result describes a completed run.
type Result struct {
	URL    string `json:"url"`
	Ref    string `json:"ref"`
	Target string `json:"target"`
	Commit string `json:"commit,omitempty"`
}

// Fetcher runs the fetch pipeline against a git client.
type Fetcher struct {
	client git.Client
	logger hclog.Logger
}

// New creates a Fetcher. A nil logger discards log output.
func New(client git.Client, logger hclog.Logger) *Fetcher {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Fetcher{
		client: client,
		logger: logger,
	}
}

// Run fetches the dependency. Nothing on disk is modified until the config
// has been loaded and the clone URL resolved.
func (f *Fetcher) Run(ctx context.Context, opts Options) (result *Result, err error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	url, err := source.Resolve(cfg.From)
	if err != nil {
		return nil, err
	}
	ref := cfg.From.Ref()
	// A trailing separator would make git clone into target/<base>
	target := filepath.Clean(opts.Target)

	f.logger.Info("resolved dependency", "type", cfg.From.Type, "url", url, "ref", ref)

	if err := stage.EnsureDir(target); err != nil {
		return nil, err
	}

	stash, err := stage.Acquire(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	f.logger.Debug("stashed config file", "path", opts.ConfigPath, "stash", stash.TempPath)

	defer func() {
		if releaseErr := stash.Release(); releaseErr != nil {
			// A lost config outranks whatever failed before it
			result = nil
			err = errors.Join(releaseErr, err)
			return
		}
		f.logger.Debug("restored config file", "path", opts.ConfigPath)
	}()

	if err := stage.EmptyDir(target); err != nil {
		return nil, err
	}
	f.logger.Debug("cleared target directory", "target", target)

	if err := f.client.Clone(ctx, url, target, ref, CloneDepth); err != nil {
		return nil, err
	}

	if err := f.client.LogLast(ctx, target); err != nil {
		return nil, fmt.Errorf("failed to read last commit: %w", err)
	}

	result = &Result{
		URL:    url,
		Ref:    ref,
		Target: target,
	}

	commit, headErr := f.client.Head(ctx, target)
	if headErr != nil {
		f.logger.Warn("could not resolve HEAD", "target", target, "error", headErr)
	}
	result.Commit = commit

	return result, nil
}
