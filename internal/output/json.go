package output

import (
	"encoding/json"
	"io"

	"github.com/jokarl/extdeps/internal/fetch"
)

// JSONRenderer renders output in JSON format
type JSONRenderer struct{}

type jsonOutput struct {
	Version string `json:"version"`
	*fetch.Result
}

// Render writes the fetch result as a single JSON object
func (r *JSONRenderer) Render(w io.Writer, result *fetch.Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(jsonOutput{Version: "1.0", Result: result})
}
