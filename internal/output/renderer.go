// Package output renders the result of a fetch for the terminal or for tools.
package output

import (
	"io"

	"github.com/jokarl/extdeps/internal/fetch"
)

// Renderer defines the interface for output renderers
type Renderer interface {
	// Render writes the fetch result to the writer
	Render(w io.Writer, result *fetch.Result) error
}

// Format represents an output format
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// ValidFormats returns the names of all supported formats.
func ValidFormats() []string {
	return []string{string(FormatText), string(FormatJSON)}
}

// IsValidFormat reports whether format names a supported format.
func IsValidFormat(format string) bool {
	for _, f := range ValidFormats() {
		if f == format {
			return true
		}
	}
	return false
}

// NewRenderer creates a renderer for the given format
func NewRenderer(format Format, colorEnabled bool) Renderer {
	switch format {
	case FormatJSON:
		return &JSONRenderer{}
	default:
		return &TextRenderer{ColorEnabled: colorEnabled}
	}
}
