package git

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/hashicorp/go-hclog"
)

// GoGitClient implements Client in-process with go-git.
// Authentication is limited to what go-git supports without configuration
// (anonymous HTTPS and the SSH agent).
type GoGitClient struct {
	// Stdout receives the commit summary, Stderr the clone progress.
	Stdout io.Writer
	Stderr io.Writer

	logger hclog.Logger
}

// NewGoGitClient returns a go-git backed client writing to the process streams.
func NewGoGitClient(logger hclog.Logger) *GoGitClient {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &GoGitClient{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		logger: logger,
	}
}

// Clone clones ref into dest. ref is tried as a branch first, then as a tag.
func (c *GoGitClient) Clone(ctx context.Context, url, dest, ref string, depth int) error {
	var err error
	for _, name := range candidateRefs(ref) {
		c.logger.Info("cloning with go-git", "url", url, "ref", name.String(), "dest", dest)

		_, err = gogit.PlainCloneContext(ctx, dest, false, &gogit.CloneOptions{
			URL:           url,
			ReferenceName: name,
			SingleBranch:  true,
			Depth:         depth,
			Tags:          gogit.NoTags,
			Progress:      c.Stderr,
		})
		if err == nil {
			return nil
		}
		if !isMissingRef(err) {
			break
		}
	}

	return &CloneError{URL: url, Ref: ref, ExitCode: 1, Err: err}
}

// LogLast prints "<short sha> <subject>" for HEAD, like git log --oneline -1.
func (c *GoGitClient) LogLast(ctx context.Context, dir string) error {
	repo, err := gogit.PlainOpen(dir)
	if err != nil {
		return fmt.Errorf("opening repo: %w", err)
	}

	head, err := repo.Head()
	if err != nil {
		return fmt.Errorf("resolving HEAD: %w", err)
	}

	commit, err := repo.CommitObject(head.Hash())
	if err != nil {
		return fmt.Errorf("reading commit %s: %w", head.Hash(), err)
	}

	subject, _, _ := strings.Cut(commit.Message, "\n")
	_, err = fmt.Fprintf(c.Stdout, "%s %s\n", head.Hash().String()[:7], subject)
	return err
}

// Head returns the commit checked out at dir.
func (c *GoGitClient) Head(ctx context.Context, dir string) (string, error) {
	repo, err := gogit.PlainOpen(dir)
	if err != nil {
		return "", fmt.Errorf("opening repo: %w", err)
	}

	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("resolving HEAD: %w", err)
	}

	return head.Hash().String(), nil
}

func candidateRefs(ref string) []plumbing.ReferenceName {
	if strings.HasPrefix(ref, "refs/") {
		return []plumbing.ReferenceName{plumbing.ReferenceName(ref)}
	}
	return []plumbing.ReferenceName{
		plumbing.NewBranchReferenceName(ref),
		plumbing.NewTagReferenceName(ref),
	}
}

func isMissingRef(err error) bool {
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		return true
	}
	var refSpecErr gogit.NoMatchingRefSpecError
	return errors.As(err, &refSpecErr)
}
