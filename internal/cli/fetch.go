package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jokarl/extdeps/internal/config"
	"github.com/jokarl/extdeps/internal/fetch"
	"github.com/jokarl/extdeps/internal/git"
	"github.com/jokarl/extdeps/internal/output"
)

// Backends selectable with --backend.
const (
	backendGit   = "git"
	backendGoGit = "go-git"
)

var (
	rootFlag    string
	configFlag  string
	backendFlag string
	formatFlag  string
)

func init() {
	rootCmd.Flags().StringVar(&rootFlag, "root", config.DefaultRoot, "Directory the dependency is cloned into")
	rootCmd.Flags().StringVarP(&configFlag, "config", "c", "", "Path to config file (default <root>/"+config.FileName+")")
	rootCmd.Flags().StringVar(&backendFlag, "backend", backendGit, "Clone backend: git, go-git")
	rootCmd.Flags().StringVar(&formatFlag, "format", string(output.FormatText), "Output format: text, json")
}

// newClient builds the git client for a backend. Replaced in tests.
var newClient = func(ctx context.Context, backend string, stdout, stderr io.Writer, logger hclog.Logger) (git.Client, error) {
	switch backend {
	case backendGit:
		if err := git.CheckMinVersion(ctx); err != nil {
			return nil, err
		}
		c := git.NewExecClient(logger.Named("git"))
		c.Stdout = stdout
		c.Stderr = stderr
		return c, nil
	case backendGoGit:
		c := git.NewGoGitClient(logger.Named("go-git"))
		c.Stdout = stdout
		c.Stderr = stderr
		return c, nil
	default:
		return nil, fmt.Errorf("invalid --backend value: %s (must be %q or %q)", backend, backendGit, backendGoGit)
	}
}

func runFetch(cmd *cobra.Command, args []string) error {
	if !output.IsValidFormat(formatFlag) {
		return fmt.Errorf("invalid --format value: %s (must be 'text' or 'json')", formatFlag)
	}

	stdout := cmd.OutOrStdout()
	stderr := cmd.ErrOrStderr()
	logger := newLogger(stderr)

	// Keep stdout clean for the JSON document
	gitStdout := stdout
	if output.Format(formatFlag) == output.FormatJSON {
		gitStdout = stderr
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	client, err := newClient(ctx, backendFlag, gitStdout, stderr, logger)
	if err != nil {
		return err
	}

	configPath := configFlag
	if configPath == "" {
		configPath = config.DefaultPath(rootFlag)
	}

	result, err := fetch.New(client, logger).Run(ctx, fetch.Options{
		ConfigPath: configPath,
		Target:     rootFlag,
	})
	if err != nil {
		return err
	}

	renderer := output.NewRenderer(output.Format(formatFlag), shouldUseColor(stdout))
	if err := renderer.Render(stdout, result); err != nil {
		return fmt.Errorf("failed to render output: %w", err)
	}

	return nil
}
