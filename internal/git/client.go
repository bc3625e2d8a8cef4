package git

import "context"

// Client clones a repository and reports the checked out commit.
type Client interface {
	// Clone fetches ref from url into dest with the given history depth.
	// dest may exist but must be empty.
	Clone(ctx context.Context, url, dest, ref string, depth int) error

	// LogLast prints the most recent commit of the repository at dir
	// in abbreviated one-line form.
	LogLast(ctx context.Context, dir string) error

	// Head returns the full SHA of the commit checked out at dir.
	Head(ctx context.Context, dir string) (string, error)
}

var (
	_ Client = (*ExecClient)(nil)
	_ Client = (*GoGitClient)(nil)
)
