package git

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"al.essio.dev/pkg/shellescape"
	"github.com/hashicorp/go-hclog"
	"github.com/mattn/go-isatty"
)

// ExecClient implements Client with the system git binary.
type ExecClient struct {
	// Stdout and Stderr receive git's output. Default to the process streams.
	Stdout io.Writer
	Stderr io.Writer

	logger hclog.Logger
}

// NewExecClient returns a client that streams git output to the process
// stdout and stderr.
func NewExecClient(logger hclog.Logger) *ExecClient {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &ExecClient{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		logger: logger,
	}
}

// Clone runs git clone from the parent of dest so the repository lands in
// a directory named after dest.
//
// This uses --depth to limit history and --branch so that both branches
// and tags can be checked out.
func (c *ExecClient) Clone(ctx context.Context, url, dest, ref string, depth int) error {
	dest = filepath.Clean(dest)
	args := CloneArgs(url, dest, ref, depth)
	if isTerminal(c.Stderr) {
		// Stderr is teed into a buffer, so git cannot detect the terminal itself
		args = append(args, "--progress")
	}

	opts := &RunOptions{
		Dir:    filepath.Dir(dest),
		Stdout: c.Stdout,
		Stderr: c.Stderr,
	}
	c.logCommand(args, opts.Dir)

	err := Stream(ctx, args, opts)
	if err != nil {
		var gitErr *GitError
		if errors.As(err, &gitErr) {
			return &CloneError{
				URL:         url,
				Ref:         ref,
				ExitCode:    gitErr.ExitCode,
				Diagnostics: gitErr.Stderr,
			}
		}
		return &CloneError{URL: url, Ref: ref, ExitCode: 1, Err: err}
	}

	return nil
}

// LogLast runs git log --oneline -1 in dir.
func (c *ExecClient) LogLast(ctx context.Context, dir string) error {
	args := []string{"log", "--oneline", "-1"}
	opts := &RunOptions{
		Dir:    dir,
		Stdout: c.Stdout,
		Stderr: c.Stderr,
	}
	c.logCommand(args, dir)
	return Stream(ctx, args, opts)
}

// Head returns the commit checked out at dir.
func (c *ExecClient) Head(ctx context.Context, dir string) (string, error) {
	return GetHEAD(ctx, dir)
}

func (c *ExecClient) logCommand(args []string, dir string) {
	c.logger.Info("running git", "command", shellescape.QuoteCommand(append([]string{"git"}, args...)), "dir", dir)
}

// CloneArgs builds the git clone arguments used by ExecClient.
// The repository is cloned into filepath.Base(dest), relative to the
// parent of dest.
func CloneArgs(url, dest, ref string, depth int) []string {
	args := []string{"clone", url, filepath.Base(filepath.Clean(dest))}
	if ref != "" {
		args = append(args, "--branch", ref)
	}
	if depth > 0 {
		args = append(args, "--depth", strconv.Itoa(depth))
	}
	return args
}

// GetHEAD returns the current HEAD commit SHA.
func GetHEAD(ctx context.Context, dir string) (string, error) {
	return Run(ctx, []string{"rev-parse", "HEAD"}, &RunOptions{Dir: dir})
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
