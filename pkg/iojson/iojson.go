// Package iojson writes JSON output for command line consumers: indented
// documents, JSON lines, and a uniform error shape.
package iojson

import (
	"encoding/json"
	"fmt"
	"io"
)

// Error is the shape written when a command fails in JSON mode.
type Error struct {
	Message string         `json:"message"`
	Data    map[string]any `json:"data,omitempty"`
}

// fallbackError builds the error document by hand when marshaling itself
// failed, which indicates a bug.
func fallbackError(msg string, jsonErr error) string {
	msgBytes, _ := json.Marshal(msg)
	errBytes, _ := json.Marshal(jsonErr.Error())
	return fmt.Sprintf(`{"message":%s,"data":{"json_error":%s}}`, msgBytes, errBytes)
}

// Writer writes JSON documents to Out and failures to Err.
type Writer struct {
	Out io.Writer
	Err io.Writer
}

// New creates a Writer.
func New(out, errOut io.Writer) *Writer {
	return &Writer{Out: out, Err: errOut}
}

// Write writes obj as an indented JSON document.
func (w *Writer) Write(obj any) error {
	bits, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		_, werr := fmt.Fprintln(w.Err, fallbackError("marshal output", err))
		return werr
	}

	_, err = fmt.Fprintln(w.Out, string(bits))
	return err
}

// WriteLine writes obj as a single JSON line.
func (w *Writer) WriteLine(obj any) error {
	bits, err := json.Marshal(obj)
	if err != nil {
		_, werr := fmt.Fprintln(w.Err, fallbackError("marshal output", err))
		return werr
	}

	_, err = fmt.Fprintln(w.Out, string(bits))
	return err
}

// WriteError writes msg and data as an Error document to Err.
func (w *Writer) WriteError(msg string, data map[string]any) error {
	bits, err := json.MarshalIndent(Error{Message: msg, Data: data}, "", "  ")
	if err != nil {
		_, werr := fmt.Fprintln(w.Err, fallbackError(msg, err))
		return werr
	}

	_, err = fmt.Fprintln(w.Err, string(bits))
	return err
}
