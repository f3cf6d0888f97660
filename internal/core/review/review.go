// Package review models change-request review data fetched from a hosting
// service: comments, commits and branch metadata.
package review

import (
	"strings"
	"time"
)

// Side is the version of a line a comment targets.
type Side int

const (
	SideRight Side = iota // New file line numbers (additions and context)
	SideLeft              // Old file line numbers (deletions and context)
)

func (s Side) String() string {
	if s == SideLeft {
		return "LEFT"
	}
	return "RIGHT"
}

// ParseSide maps the hosting API's side string to a Side. Anything other than
// "LEFT" is treated as the right side.
func ParseSide(s string) Side {
	if strings.EqualFold(s, "LEFT") {
		return SideLeft
	}
	return SideRight
}

// MarshalText encodes the side as the hosting API spells it.
func (s Side) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a side written by MarshalText.
func (s *Side) UnmarshalText(text []byte) error {
	*s = ParseSide(string(text))
	return nil
}

// Comment is a single inline review comment.
type Comment struct {
	ID        int64  `json:"id"`
	InReplyTo int64  `json:"in_reply_to,omitempty"` // 0 for the first comment of a thread
	Path      string `json:"path"`
	// Line is the target line on Side, or 0 for a file-level comment that must
	// never be attached to a code line.
	Line              int       `json:"line,omitempty"`
	Side              Side      `json:"side"`
	Body              string    `json:"body"`
	Author            string    `json:"author"`
	CreatedAt         time.Time `json:"created_at"`
	CommitSHA         string    `json:"commit_sha"`
	OriginalCommitSHA string    `json:"original_commit_sha"`
}

// IsReply reports whether the comment answers another comment.
func (c Comment) IsReply() bool {
	return c.InReplyTo != 0
}

// IsFileLevel reports whether the comment has no target line.
func (c Comment) IsFileLevel() bool {
	return c.Line <= 0
}

// Commit is one commit of a change request.
type Commit struct {
	SHA       string `json:"sha"`
	ShortSHA  string `json:"short_sha"`
	ParentSHA string `json:"parent_sha,omitempty"` // empty for a parentless commit
	Message   string `json:"message"`
	Author    string `json:"author"`
}

// NewCommit builds a Commit and derives its short SHA.
func NewCommit(sha, parent, message, author string) Commit {
	return Commit{
		SHA:       sha,
		ShortSHA:  ShortSHA(sha),
		ParentSHA: parent,
		Message:   message,
		Author:    author,
	}
}

// HasParent reports whether the commit records a parent.
func (c Commit) HasParent() bool {
	return c.ParentSHA != ""
}

// Summary returns the first line of the commit message.
func (c Commit) Summary() string {
	summary, _, _ := strings.Cut(c.Message, "\n")
	return strings.TrimSpace(summary)
}

// ShortSHA returns the first 7 characters of sha.
func ShortSHA(sha string) string {
	if len(sha) > 7 {
		return sha[:7]
	}
	return sha
}

// ChangeRequestInfo is the branch metadata of a change request.
type ChangeRequestInfo struct {
	Number  int    `json:"number"`
	BaseRef string `json:"base_ref"`
	HeadRef string `json:"head_ref"`
	Title   string `json:"title"`
}
