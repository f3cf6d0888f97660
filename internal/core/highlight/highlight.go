// Package highlight tokenizes source text into colored spans.
package highlight

import (
	"path"
	"strings"
)

// Span is a run of text drawn in one color ("#rrggbb").
type Span struct {
	Text  string `json:"text"`
	Color string `json:"color"`
}

// Line holds the spans of one input line.
type Line struct {
	Spans []Span `json:"spans"`
}

// Highlighter colors source text. It must return exactly one Line per
// newline-separated input line.
type Highlighter interface {
	Highlight(text, hint string) ([]Line, error)
}

// ExtensionHint returns the lexer hint for a file path: its extension without
// the dot, or the base name for files like Makefile that have none.
func ExtensionHint(p string) string {
	base := path.Base(p)
	if ext := path.Ext(base); ext != "" && ext != base {
		return strings.TrimPrefix(ext, ".")
	}
	return base
}
