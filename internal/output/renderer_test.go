package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/jokarl/extdeps/internal/fetch"
)

func testResult() *fetch.Result {
	return &fetch.Result{
		URL:    "https://github.com/acme/widgets.git",
		Ref:    "v2",
		Target: "external",
		Commit: "0123456789abcdef0123456789abcdef01234567",
	}
}

func TestNewRenderer(t *testing.T) {
	tests := []struct {
		format   Format
		wantType string
	}{
		{FormatText, "*output.TextRenderer"},
		{FormatJSON, "*output.JSONRenderer"},
		{"unknown", "*output.TextRenderer"}, // Default
		{"", "*output.TextRenderer"},        // Empty defaults to text
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			renderer := NewRenderer(tt.format, false)
			if gotType := fmt.Sprintf("%T", renderer); gotType != tt.wantType {
				t.Errorf("NewRenderer(%q) = %s, want %s", tt.format, gotType, tt.wantType)
			}
		})
	}
}

func TestIsValidFormat(t *testing.T) {
	tests := []struct {
		format string
		valid  bool
	}{
		{"text", true},
		{"json", true},
		{"sarif", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsValidFormat(tt.format); got != tt.valid {
			t.Errorf("IsValidFormat(%q) = %v, want %v", tt.format, got, tt.valid)
		}
	}
}

func TestTextRenderer(t *testing.T) {
	var buf bytes.Buffer
	r := &TextRenderer{ColorEnabled: false}

	if err := r.Render(&buf, testResult()); err != nil {
		t.Fatalf("Render() returned error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"fetched https://github.com/acme/widgets.git (v2)",
		"into:   external",
		"commit: 0123456\n",
		"Result: OK",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Errorf("output should not contain color codes when disabled:\n%s", out)
	}
}

func TestTextRenderer_NoCommit(t *testing.T) {
	var buf bytes.Buffer
	result := testResult()
	result.Commit = ""

	if err := (&TextRenderer{}).Render(&buf, result); err != nil {
		t.Fatalf("Render() returned error: %v", err)
	}
	if strings.Contains(buf.String(), "commit:") {
		t.Errorf("output should omit the commit line:\n%s", buf.String())
	}
}

func TestTextRenderer_Color(t *testing.T) {
	var buf bytes.Buffer
	if err := (&TextRenderer{ColorEnabled: true}).Render(&buf, testResult()); err != nil {
		t.Fatalf("Render() returned error: %v", err)
	}
	if !strings.Contains(buf.String(), "\x1b[32mOK") {
		t.Errorf("output should color the result green:\n%q", buf.String())
	}
}

func TestJSONRenderer(t *testing.T) {
	var buf bytes.Buffer
	if err := (&JSONRenderer{}).Render(&buf, testResult()); err != nil {
		t.Fatalf("Render() returned error: %v", err)
	}

	var got map[string]string
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
	}

	want := map[string]string{
		"version": "1.0",
		"url":     "https://github.com/acme/widgets.git",
		"ref":     "v2",
		"target":  "external",
		"commit":  "0123456789abcdef0123456789abcdef01234567",
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("%s = %q, want %q", k, got[k], v)
		}
	}
}
