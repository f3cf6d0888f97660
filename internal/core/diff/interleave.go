package diff

import (
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/colonyops/lado/internal/core/highlight"
	"github.com/colonyops/lado/internal/core/review"
)

type commentKey struct {
	side review.Side
	line int
}

// Interleave merges the hunks of one file with its review comments into a
// single display-ordered sequence:
//
//	[hunk header, (code line, its comments...)*]*
//
// comments must already be in grouped order (see review.GroupByFile).
// File-level comments are never emitted. When hl is non-nil, every code line
// receives spans from highlighting all code lines of the file as one document;
// constructs that straddle a hunk gap may tokenize imperfectly. A highlighter
// error leaves the lines without spans.
func Interleave(path string, hunks []Hunk, comments []review.Comment, hl highlight.Highlighter) []DisplayLine {
	var out []DisplayLine
	for _, h := range hunks {
		out = append(out, DisplayLine{
			Type:    LineTypeHunk,
			Content: strings.TrimSpace(h.Header),
		})
		for _, l := range h.Lines {
			out = append(out, DisplayLine{
				Type:       l.Type,
				OldLineNum: l.OldLineNum,
				NewLineNum: l.NewLineNum,
				Content:    l.Content,
			})
		}
	}

	if hl != nil {
		attachSpans(path, out, hl)
	}

	if len(comments) == 0 {
		return out
	}

	index := indexComments(comments)
	result := make([]DisplayLine, 0, len(out)+len(comments))
	for _, dl := range out {
		result = append(result, dl)
		if !dl.Type.IsCode() {
			continue
		}
		for _, c := range matching(comments, index, dl) {
			result = append(result, DisplayLine{
				Type:    LineTypeComment,
				Content: c.Body,
				Comment: payloadFrom(c),
			})
		}
	}
	return result
}

func attachSpans(path string, lines []DisplayLine, hl highlight.Highlighter) {
	var (
		idx      []int
		contents []string
	)
	for i, dl := range lines {
		if dl.Type.IsCode() {
			idx = append(idx, i)
			contents = append(contents, dl.Content)
		}
	}
	if len(idx) == 0 {
		return
	}

	highlighted, err := hl.Highlight(strings.Join(contents, "\n"), highlight.ExtensionHint(path))
	if err != nil {
		log.Debug().Err(err).Str("path", path).Msg("highlight failed, rendering plain")
		return
	}

	for n, i := range idx {
		if n >= len(highlighted) {
			break
		}
		lines[i].Spans = highlighted[n].Spans
	}
}

// indexComments maps each anchored comment to its position in comments so
// matches can be emitted in grouped order.
func indexComments(comments []review.Comment) map[commentKey][]int {
	index := make(map[commentKey][]int)
	for i, c := range comments {
		if c.IsFileLevel() {
			continue
		}
		k := commentKey{side: c.Side, line: c.Line}
		index[k] = append(index[k], i)
	}
	return index
}

// matching returns the comments anchored to dl in grouped order: right-side
// comments match the new line number, left-side comments the old one.
func matching(comments []review.Comment, index map[commentKey][]int, dl DisplayLine) []review.Comment {
	var right, left []int
	if dl.NewLineNum > 0 {
		right = index[commentKey{side: review.SideRight, line: dl.NewLineNum}]
	}
	if dl.OldLineNum > 0 {
		left = index[commentKey{side: review.SideLeft, line: dl.OldLineNum}]
	}

	out := make([]review.Comment, 0, len(right)+len(left))
	for len(right) > 0 || len(left) > 0 {
		if len(left) == 0 || (len(right) > 0 && right[0] < left[0]) {
			out = append(out, comments[right[0]])
			right = right[1:]
			continue
		}
		out = append(out, comments[left[0]])
		left = left[1:]
	}
	return out
}
