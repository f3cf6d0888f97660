package diff

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/bluekeyes/go-gitdiff/gitdiff"
)

// Parse reads a unified git diff and converts it to Data.
func Parse(r io.Reader) (*Data, error) {
	files, _, err := gitdiff.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse diff: %w", err)
	}
	return FromGitDiff(files), nil
}

// FromGitDiff converts parsed git diff files into Data, numbering every line
// on both sides and counting additions and deletions per file.
func FromGitDiff(files []*gitdiff.File) *Data {
	data := &Data{
		Files: make([]ChangedFile, 0, len(files)),
		Hunks: make(map[string][]Hunk, len(files)),
	}

	for _, f := range files {
		path := filePath(f)
		if path == "" {
			continue
		}

		cf := ChangedFile{Path: path, Status: fileStatus(f)}
		for _, frag := range f.TextFragments {
			h := convertFragment(frag)
			for _, l := range h.Lines {
				switch l.Type {
				case LineTypeAdd:
					cf.Additions++
				case LineTypeRemove:
					cf.Deletions++
				}
			}
			data.Hunks[path] = append(data.Hunks[path], h)
		}
		data.Files = append(data.Files, cf)
	}

	return data
}

// filePath prefers the new name and falls back to the old name for deletions.
func filePath(f *gitdiff.File) string {
	path := f.NewName
	if path == "" || path == "/dev/null" {
		path = f.OldName
	}
	if path == "/dev/null" {
		return ""
	}
	return path
}

func fileStatus(f *gitdiff.File) FileStatus {
	switch {
	case f.IsNew:
		return StatusAdded
	case f.IsDelete:
		return StatusDeleted
	case f.IsRename:
		return StatusRenamed
	default:
		return StatusModified
	}
}

func convertFragment(frag *gitdiff.TextFragment) Hunk {
	h := Hunk{
		Header:   formatHeader(frag),
		OldStart: int(frag.OldPosition),
		OldLines: int(frag.OldLines),
		NewStart: int(frag.NewPosition),
		NewLines: int(frag.NewLines),
		Lines:    make([]Line, 0, len(frag.Lines)),
	}

	oldLine, newLine := h.OldStart, h.NewStart
	for _, l := range frag.Lines {
		content := strings.TrimSuffix(l.Line, "\n")
		switch l.Op {
		case gitdiff.OpAdd:
			h.Lines = append(h.Lines, Line{Type: LineTypeAdd, NewLineNum: newLine, Content: content})
			newLine++
		case gitdiff.OpDelete:
			h.Lines = append(h.Lines, Line{Type: LineTypeRemove, OldLineNum: oldLine, Content: content})
			oldLine++
		case gitdiff.OpContext:
			h.Lines = append(h.Lines, Line{Type: LineTypeContext, OldLineNum: oldLine, NewLineNum: newLine, Content: content})
			oldLine++
			newLine++
		}
	}

	return h
}

func formatHeader(frag *gitdiff.TextFragment) string {
	var sb strings.Builder
	sb.WriteString("@@ -")
	sb.WriteString(formatRange(frag.OldPosition, frag.OldLines))
	sb.WriteString(" +")
	sb.WriteString(formatRange(frag.NewPosition, frag.NewLines))
	sb.WriteString(" @@")
	if frag.Comment != "" {
		sb.WriteString(" ")
		sb.WriteString(frag.Comment)
	}
	return sb.String()
}

// formatRange formats a hunk range (position, length) for unified diff format.
func formatRange(pos, length int64) string {
	if length == 1 {
		return strconv.FormatInt(pos, 10)
	}
	return strconv.FormatInt(pos, 10) + "," + strconv.FormatInt(length, 10)
}
