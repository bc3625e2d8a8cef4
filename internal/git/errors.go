package git

import (
	"errors"
	"fmt"
	"strings"
)

// ErrGitNotFound is returned when git is not installed or not in PATH.
var ErrGitNotFound = errors.New("git is not installed or not in PATH")

// GitError wraps errors from git command execution with full context.
type GitError struct {
	Command  []string
	ExitCode int
	Stderr   string
}

func (e *GitError) Error() string {
	name := "git"
	if len(e.Command) > 0 {
		name = "git " + e.Command[0]
	}
	if msg := diagnostic(e.Stderr); msg != "" {
		return fmt.Sprintf("%s failed (exit %d): %s", name, e.ExitCode, msg)
	}
	return fmt.Sprintf("%s failed (exit %d)", name, e.ExitCode)
}

// CloneError is returned when cloning the dependency fails.
type CloneError struct {
	URL      string
	Ref      string
	ExitCode int

	// Diagnostics holds what the client wrote to stderr. It has already
	// been streamed to the user.
	Diagnostics string

	// Err is the underlying error, if the failure did not come from a git process.
	Err error
}

func (e *CloneError) Error() string {
	msg := fmt.Sprintf("failed to clone %s at %s (exit %d)", e.URL, e.Ref, e.ExitCode)
	if d := diagnostic(e.Diagnostics); d != "" {
		return msg + ": " + d
	}
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *CloneError) Unwrap() error {
	return e.Err
}

// ErrVersionTooOld is returned when git version is below the minimum required.
type ErrVersionTooOld struct {
	Current  string
	Required string
}

func (e *ErrVersionTooOld) Error() string {
	return fmt.Sprintf("git version %s is below minimum required %s\n\n"+
		"Please upgrade git: https://git-scm.com/downloads", e.Current, e.Required)
}

// IsRefNotFound returns true if the clone failed because the branch or tag
// does not exist upstream.
func IsRefNotFound(err error) bool {
	stderr, ok := stderrOf(err)
	if !ok {
		return false
	}
	return strings.Contains(stderr, "not found in upstream") ||
		strings.Contains(stderr, "reference not found") ||
		strings.Contains(stderr, "couldn't find remote ref")
}

// IsAuthError returns true if the error indicates an authentication failure.
func IsAuthError(err error) bool {
	stderr, ok := stderrOf(err)
	if !ok {
		return false
	}
	return isAuthErrorStderr(stderr)
}

// stderrOf returns the lowercased diagnostics carried by a git error.
func stderrOf(err error) (string, bool) {
	if err == nil {
		return "", false
	}

	var cloneErr *CloneError
	if errors.As(err, &cloneErr) {
		diag := cloneErr.Diagnostics
		if diag == "" && cloneErr.Err != nil {
			diag = cloneErr.Err.Error()
		}
		return strings.ToLower(diag), true
	}

	var gitErr *GitError
	if errors.As(err, &gitErr) {
		return strings.ToLower(gitErr.Stderr), true
	}

	return "", false
}

// isAuthErrorStderr checks stderr content for authentication error patterns.
func isAuthErrorStderr(stderr string) bool {
	// SSH authentication failures
	if strings.Contains(stderr, "permission denied") ||
		strings.Contains(stderr, "publickey") ||
		strings.Contains(stderr, "could not read from remote repository") ||
		strings.Contains(stderr, "host key verification failed") {
		return true
	}

	// HTTPS authentication failures
	if strings.Contains(stderr, "401") ||
		strings.Contains(stderr, "403") ||
		strings.Contains(stderr, "authentication") ||
		strings.Contains(stderr, "invalid credentials") ||
		strings.Contains(stderr, "could not read username") ||
		strings.Contains(stderr, "terminal prompts disabled") ||
		strings.Contains(stderr, "permission to") { // e.g. "Permission to org/repo.git denied"
		return true
	}

	return false
}

// diagnostic picks the most useful line out of git's stderr.
// Progress output is overwritten with \r, so both \r and \n split lines.
// The last fatal/error line wins, otherwise the last non-empty line.
func diagnostic(stderr string) string {
	lines := strings.FieldsFunc(stderr, func(r rune) bool {
		return r == '\n' || r == '\r'
	})

	var last string
	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		if line == "" {
			continue
		}
		if last == "" {
			last = line
		}
		if strings.HasPrefix(line, "fatal:") || strings.HasPrefix(line, "error:") {
			return line
		}
	}
	return last
}
