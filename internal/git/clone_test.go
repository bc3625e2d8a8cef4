package git

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCloneArgs(t *testing.T) {
	tests := []struct {
		name  string
		url   string
		dest  string
		ref   string
		depth int
		want  []string
	}{
		{
			name:  "branch with depth",
			url:   "https://github.com/acme/widgets.git",
			dest:  filepath.Join("project", "external"),
			ref:   "v2",
			depth: 1,
			want:  []string{"clone", "https://github.com/acme/widgets.git", "external", "--branch", "v2", "--depth", "1"},
		},
		{
			name:  "ssh url",
			url:   "git@gitlab.internal:publics/core.git",
			dest:  "external",
			ref:   "master",
			depth: 1,
			want:  []string{"clone", "git@gitlab.internal:publics/core.git", "external", "--branch", "master", "--depth", "1"},
		},
		{
			name:  "trailing separator",
			url:   "https://github.com/acme/widgets.git",
			dest:  filepath.Join("project", "external") + string(filepath.Separator),
			ref:   "v2",
			depth: 1,
			want:  []string{"clone", "https://github.com/acme/widgets.git", "external", "--branch", "v2", "--depth", "1"},
		},
		{
			name: "full history without ref",
			url:  "https://github.com/acme/widgets.git",
			dest: "deps",
			want: []string{"clone", "https://github.com/acme/widgets.git", "deps"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CloneArgs(tt.url, tt.dest, tt.ref, tt.depth)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("CloneArgs() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func newTestExecClient() (*ExecClient, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	c := NewExecClient(nil)
	c.Stdout = &stdout
	c.Stderr = &stderr
	return c, &stdout, &stderr
}

func TestExecClient_CloneBranch(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git is not installed, skipping test")
	}

	remoteDir := t.TempDir()
	setupTestRepo(t, remoteDir, "release")

	dest := filepath.Join(t.TempDir(), "external")
	if err := os.Mkdir(dest, 0755); err != nil {
		t.Fatalf("failed to create dest: %v", err)
	}

	c, stdout, _ := newTestExecClient()
	ctx := context.Background()

	if err := c.Clone(ctx, "file://"+remoteDir, dest, "release", 1); err != nil {
		t.Fatalf("Clone() returned error: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dest, "README.md")); err != nil {
		t.Errorf("expected README.md in clone: %v", err)
	}
	if branch := gitOutput(t, dest, "rev-parse", "--abbrev-ref", "HEAD"); branch != "release" {
		t.Errorf("checked out branch = %q, want %q", branch, "release")
	}

	if err := c.LogLast(ctx, dest); err != nil {
		t.Fatalf("LogLast() returned error: %v", err)
	}
	if !strings.Contains(stdout.String(), "Initial commit") {
		t.Errorf("LogLast() output = %q, want it to contain the commit subject", stdout.String())
	}

	sha, err := c.Head(ctx, dest)
	if err != nil {
		t.Fatalf("Head() returned error: %v", err)
	}
	if want := gitOutput(t, remoteDir, "rev-parse", "HEAD"); sha != want {
		t.Errorf("Head() = %q, want %q", sha, want)
	}
}

func TestExecClient_CloneTag(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git is not installed, skipping test")
	}

	remoteDir := t.TempDir()
	setupTestRepo(t, remoteDir, "main")
	runGit(t, remoteDir, "tag", "v2")

	dest := filepath.Join(t.TempDir(), "external")
	c, _, _ := newTestExecClient()

	// dest does not exist yet: git creates it
	if err := c.Clone(context.Background(), "file://"+remoteDir, dest, "v2", 1); err != nil {
		t.Fatalf("Clone() returned error: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dest, "README.md")); err != nil {
		t.Errorf("expected README.md in clone: %v", err)
	}
}

func TestExecClient_CloneTrailingSeparator(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git is not installed, skipping test")
	}

	remoteDir := t.TempDir()
	setupTestRepo(t, remoteDir, "main")

	dest := filepath.Join(t.TempDir(), "external")
	if err := os.Mkdir(dest, 0755); err != nil {
		t.Fatalf("failed to create dest: %v", err)
	}

	c, _, _ := newTestExecClient()
	if err := c.Clone(context.Background(), "file://"+remoteDir, dest+string(filepath.Separator), "main", 1); err != nil {
		t.Fatalf("Clone() returned error: %v", err)
	}

	if _, err := os.Stat(filepath.Join(dest, ".git")); err != nil {
		t.Errorf("dest should be the repository root: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dest, "external")); !os.IsNotExist(err) {
		t.Errorf("clone should not be nested in dest, stat err = %v", err)
	}
}

func TestExecClient_CloneMissingRef(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git is not installed, skipping test")
	}

	remoteDir := t.TempDir()
	setupTestRepo(t, remoteDir, "main")

	dest := filepath.Join(t.TempDir(), "external")
	c, _, stderr := newTestExecClient()

	err := c.Clone(context.Background(), "file://"+remoteDir, dest, "does-not-exist", 1)
	if err == nil {
		t.Fatal("expected error cloning a missing ref")
	}

	var cloneErr *CloneError
	if !errors.As(err, &cloneErr) {
		t.Fatalf("expected *CloneError, got %T", err)
	}
	if cloneErr.ExitCode == 0 {
		t.Error("CloneError.ExitCode should be non-zero")
	}
	if cloneErr.Ref != "does-not-exist" {
		t.Errorf("CloneError.Ref = %q, want %q", cloneErr.Ref, "does-not-exist")
	}
	if stderr.Len() == 0 {
		t.Error("git diagnostics should be streamed to stderr")
	}
	if !IsRefNotFound(err) {
		t.Errorf("IsRefNotFound() = false for %q", cloneErr.Diagnostics)
	}
}

func TestExecClient_LogLastNotARepo(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git is not installed, skipping test")
	}

	c, _, _ := newTestExecClient()
	err := c.LogLast(context.Background(), t.TempDir())
	if err == nil {
		t.Fatal("expected error running LogLast outside a repository")
	}

	var gitErr *GitError
	if !errors.As(err, &gitErr) {
		t.Fatalf("expected *GitError, got %T", err)
	}
}
