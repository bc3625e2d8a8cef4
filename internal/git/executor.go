package git

import (
	"bytes"
	"context"
	"io"
	"os"
	"os/exec"
	"strings"
)

// RunOptions configures how a git command is executed.
type RunOptions struct {
	// Dir is the working directory for the command.
	// If empty, the current working directory is used.
	Dir string

	// Stdout and Stderr receive the command's output as it is produced.
	// Only used by Stream.
	Stdout io.Writer
	Stderr io.Writer
}

// Available returns true if git is installed and in PATH.
func Available() bool {
	_, err := exec.LookPath("git")
	return err == nil
}

// Run executes a git command and returns the stdout output.
// If the command fails, a *GitError is returned with stderr context.
func Run(ctx context.Context, args []string, opts *RunOptions) (string, error) {
	var stdout bytes.Buffer
	if err := run(ctx, args, opts, &stdout, io.Discard); err != nil {
		return "", err
	}
	return strings.TrimSpace(stdout.String()), nil
}

// Stream executes a git command, copying its output to opts.Stdout and
// opts.Stderr (os.Stdout and os.Stderr when unset) while it runs.
// Stderr is also captured into the returned *GitError on failure.
func Stream(ctx context.Context, args []string, opts *RunOptions) error {
	var stdout, stderr io.Writer = os.Stdout, os.Stderr
	if opts != nil && opts.Stdout != nil {
		stdout = opts.Stdout
	}
	if opts != nil && opts.Stderr != nil {
		stderr = opts.Stderr
	}
	return run(ctx, args, opts, stdout, stderr)
}

func run(ctx context.Context, args []string, opts *RunOptions, stdout, stderrOut io.Writer) error {
	if !Available() {
		return ErrGitNotFound
	}

	var stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Stdout = stdout
	cmd.Stderr = io.MultiWriter(stderrOut, &stderr)

	// Set working directory if specified
	if opts != nil && opts.Dir != "" {
		cmd.Dir = opts.Dir
	}

	if err := cmd.Run(); err != nil {
		exitCode := 1
		if exitErr, ok := err.(*exec.ExitError); ok && exitErr.ExitCode() > 0 {
			exitCode = exitErr.ExitCode()
		}
		stderrText := stderr.String()
		if stderrText == "" {
			stderrText = err.Error()
		}
		return &GitError{
			Command:  args,
			ExitCode: exitCode,
			Stderr:   stderrText,
		}
	}

	return nil
}
