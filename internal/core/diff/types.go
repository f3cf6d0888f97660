// Package diff holds the diff data model and the line interleaver that turns
// hunks and review comments into a single display-ordered line stream.
package diff

import "fmt"

// FileStatus is the change kind of a file between two snapshots.
type FileStatus string

const (
	StatusAdded    FileStatus = "added"
	StatusModified FileStatus = "modified"
	StatusDeleted  FileStatus = "deleted"
	StatusRenamed  FileStatus = "renamed"
)

// ChangedFile is one file touched by a diff.
type ChangedFile struct {
	Path      string     `json:"path"` // slash-separated, relative to the repository root
	Status    FileStatus `json:"status"`
	Additions int        `json:"additions"`
	Deletions int        `json:"deletions"`
}

// LineType represents the type of a line in the diff view.
type LineType int

const (
	LineTypeContext LineType = iota // Unchanged line present on both sides
	LineTypeAdd                     // Line only in the new file
	LineTypeRemove                  // Line only in the old file
	LineTypeHunk                    // Synthetic hunk separator
	LineTypeComment                 // Synthetic review comment
)

func (t LineType) String() string {
	switch t {
	case LineTypeContext:
		return "context"
	case LineTypeAdd:
		return "add"
	case LineTypeRemove:
		return "remove"
	case LineTypeHunk:
		return "hunk"
	case LineTypeComment:
		return "comment"
	default:
		return "unknown"
	}
}

// MarshalText encodes the type by name so JSON output stays readable.
func (t LineType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText decodes a type name written by MarshalText.
func (t *LineType) UnmarshalText(text []byte) error {
	for _, candidate := range []LineType{LineTypeContext, LineTypeAdd, LineTypeRemove, LineTypeHunk, LineTypeComment} {
		if candidate.String() == string(text) {
			*t = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown line type %q", text)
}

// IsCode reports whether the line carries file content (add, remove or context).
func (t LineType) IsCode() bool {
	switch t {
	case LineTypeContext, LineTypeAdd, LineTypeRemove:
		return true
	default:
		return false
	}
}

// Line is a single line of a hunk.
//
// OldLineNum is set only for remove and context lines, NewLineNum only for add
// and context lines. Line numbers are 1-based; 0 means not applicable.
type Line struct {
	Type       LineType `json:"type"`
	OldLineNum int      `json:"old_line,omitempty"`
	NewLineNum int      `json:"new_line,omitempty"`
	Content    string   `json:"content"`
}

// Hunk is a contiguous region of changes.
type Hunk struct {
	Header   string `json:"header"`
	OldStart int    `json:"old_start"`
	OldLines int    `json:"old_lines"`
	NewStart int    `json:"new_start"`
	NewLines int    `json:"new_lines"`
	Lines    []Line `json:"lines"`
}

// Data is the result of one diff computation. Hunks are keyed by ChangedFile.Path
// and kept in the order the diff engine emitted them.
type Data struct {
	Files []ChangedFile
	Hunks map[string][]Hunk
}

// File returns the changed file with the given path.
func (d *Data) File(path string) (ChangedFile, bool) {
	for _, f := range d.Files {
		if f.Path == path {
			return f, true
		}
	}
	return ChangedFile{}, false
}
