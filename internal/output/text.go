package output

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/jokarl/extdeps/internal/fetch"
)

// shortSHALen matches git's default abbreviation.
const shortSHALen = 7

// TextRenderer renders output in human-readable text format
type TextRenderer struct {
	ColorEnabled bool
}

// Render writes the fetch result in text format
func (r *TextRenderer) Render(w io.Writer, result *fetch.Result) error {
	fmt.Fprintf(w, "extdeps: fetched %s (%s)\n", result.URL, result.Ref)
	fmt.Fprintf(w, "  into:   %s\n", result.Target)
	if result.Commit != "" {
		fmt.Fprintf(w, "  commit: %s\n", shortSHA(result.Commit))
	}

	_, err := fmt.Fprintf(w, "Result: %s\n", r.colorize("OK", color.FgGreen))
	return err
}

func (r *TextRenderer) colorize(s string, attr color.Attribute) string {
	if !r.ColorEnabled {
		return s
	}
	c := color.New(attr)
	c.EnableColor()
	return c.Sprint(s)
}

func shortSHA(sha string) string {
	if len(sha) > shortSHALen {
		return sha[:shortSHALen]
	}
	return sha
}
