package diff

import (
	"time"

	"github.com/colonyops/lado/internal/core/highlight"
	"github.com/colonyops/lado/internal/core/review"
)

// CommentPayload is the review comment carried by a LineTypeComment display line.
type CommentPayload struct {
	ID        int64       `json:"id"`
	Author    string      `json:"author"`
	Body      string      `json:"body"`
	Timestamp time.Time   `json:"timestamp"`
	IsReply   bool        `json:"is_reply"`
	Side      review.Side `json:"side"`
	Line      int         `json:"line"`
}

func payloadFrom(c review.Comment) *CommentPayload {
	return &CommentPayload{
		ID:        c.ID,
		Author:    c.Author,
		Body:      c.Body,
		Timestamp: c.CreatedAt,
		IsReply:   c.IsReply(),
		Side:      c.Side,
		Line:      c.Line,
	}
}

// DisplayLine is one row of the rendered diff: code, hunk separator or comment.
type DisplayLine struct {
	Type       LineType         `json:"type"`
	OldLineNum int              `json:"old_line,omitempty"`
	NewLineNum int              `json:"new_line,omitempty"`
	Content    string           `json:"content"`
	Comment    *CommentPayload  `json:"comment,omitempty"`
	Spans      []highlight.Span `json:"spans,omitempty"`
}
