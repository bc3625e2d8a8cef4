package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jokarl/extdeps/internal/config"
	"github.com/jokarl/extdeps/internal/git"
	"github.com/jokarl/extdeps/internal/source"
)

var (
	versionStr string
	commitStr  string
	dateStr    string
)

// Global flags
var (
	colorFlag   string
	verboseFlag bool
)

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(version, commit, date string) {
	versionStr = version
	commitStr = commit
	dateStr = date
}

var rootCmd = &cobra.Command{
	Use:   "extdeps",
	Short: "Fetch the external dependency into ./external",
	Long: `extdeps shallow-clones the repository described by external/config.json
into the external directory, replacing whatever was there before.

The config file names the hosting provider, owner and repository:

  {"from": {"type": "github", "owner": "acme", "name": "widgets", "checkout": "v2"}}

It is kept in place across the clone. Run without arguments from the
project root.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runFetch,
}

// Execute runs the root command and prints any error to stderr.
// Use ExitCode to turn the returned error into a process exit code.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		printError(rootCmd.ErrOrStderr(), err)
	}
	return err
}

// ExitCode maps an error returned by Execute to a process exit code.
// Clone failures exit with git's own code.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var cloneErr *git.CloneError
	if errors.As(err, &cloneErr) && cloneErr.ExitCode > 0 {
		return cloneErr.ExitCode
	}
	return 1
}

func init() {
	rootCmd.PersistentFlags().StringVar(&colorFlag, "color", "auto", "Color mode: auto, always, never")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Log each step to stderr")
}

func newLogger(w io.Writer) hclog.Logger {
	level := hclog.Warn
	if verboseFlag {
		level = hclog.Debug
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   "extdeps",
		Level:  level,
		Output: w,
	})
}

func printError(w io.Writer, err error) {
	red := color.New(color.FgRed, color.Bold)
	applyColorMode(red, w)
	fmt.Fprintf(w, "%s %v\n", red.Sprint("Error:"), err)

	if hint := errorHint(err); hint != "" {
		fmt.Fprintf(w, "\n%s\n", hint)
	}
}

// errorHint suggests a fix for common failures.
func errorHint(err error) string {
	var cloneErr *git.CloneError
	switch {
	case errors.Is(err, git.ErrGitNotFound):
		return "Install git, or run with --backend go-git to clone without it."
	case git.IsRefNotFound(err):
		return `Check that the "checkout" branch or tag exists in the repository.`
	case git.IsAuthError(err) && errors.As(err, &cloneErr) && source.IsSSH(cloneErr.URL):
		return "Check that your SSH key is loaded (ssh-add -l) and has access to the repository."
	case git.IsAuthError(err):
		return "Check your git credentials for this host, or set an SSH \"origin\" (git@host) in " + config.FileName + "."
	default:
		return ""
	}
}

// applyColorMode enables or disables c according to --color and whether w is a terminal.
func applyColorMode(c *color.Color, w io.Writer) {
	if shouldUseColor(w) {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
}

func shouldUseColor(w io.Writer) bool {
	switch colorFlag {
	case "always":
		return true
	case "never":
		return false
	default: // auto
		f, ok := w.(*os.File)
		if !ok {
			return false
		}
		stat, err := f.Stat()
		if err != nil {
			return false
		}
		return (stat.Mode() & os.ModeCharDevice) != 0
	}
}
