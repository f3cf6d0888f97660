package review

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ids(comments []Comment) []int64 {
	out := make([]int64, len(comments))
	for i, c := range comments {
		out[i] = c.ID
	}
	return out
}

func TestGroupByFile(t *testing.T) {
	comments := []Comment{
		{ID: 5, Path: "main.go", Line: 10},
		{ID: 2, Path: "lib.go", Line: 3},
		{ID: 3, Path: "main.go", Line: 4},
		{ID: 7, Path: "main.go", Line: 10, InReplyTo: 5},
		{ID: 1, Path: "main.go", Line: 0},
		{ID: 6, Path: "main.go", Line: 4},
	}

	grouped := GroupByFile(comments)

	require.Len(t, grouped, 2)
	assert.Equal(t, []int64{3, 6, 5, 7, 1}, ids(grouped["main.go"]))
	assert.Equal(t, []int64{2}, ids(grouped["lib.go"]))
	assert.Equal(t, 6, grouped.Count())
}

func TestGroupByFile_PathsAreVerbatim(t *testing.T) {
	grouped := GroupByFile([]Comment{
		{ID: 1, Path: "src/a.go", Line: 1},
		{ID: 2, Path: "./src/a.go", Line: 1},
	})

	assert.Len(t, grouped, 2)
}

func TestGroupByFile_Empty(t *testing.T) {
	grouped := GroupByFile(nil)
	assert.Empty(t, grouped)
	assert.Equal(t, 0, grouped.Count())
}

func TestGroupByFile_IsOrderIndependent(t *testing.T) {
	a := []Comment{
		{ID: 1, Path: "x", Line: 2},
		{ID: 2, Path: "x", Line: 1},
		{ID: 3, Path: "x", Line: 2},
	}
	b := []Comment{a[2], a[0], a[1]}

	assert.Equal(t, GroupByFile(a), GroupByFile(b))
}

func TestForCommit(t *testing.T) {
	comments := []Comment{
		{ID: 1, OriginalCommitSHA: "aaa"},
		{ID: 2, OriginalCommitSHA: "bbb"},
		{ID: 3, OriginalCommitSHA: "aaa", CommitSHA: "bbb"},
	}

	assert.Equal(t, []int64{1, 3}, ids(ForCommit(comments, "aaa")))
	assert.Empty(t, ForCommit(comments, "ccc"))
}

func TestParseSide(t *testing.T) {
	tests := []struct {
		in   string
		want Side
	}{
		{"LEFT", SideLeft},
		{"left", SideLeft},
		{"RIGHT", SideRight},
		{"", SideRight},
		{"unknown", SideRight},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseSide(tt.in))
		})
	}
}

func TestCommit(t *testing.T) {
	c := NewCommit("0123456789abcdef", "", "Fix parser\n\nLonger body", "Ada")

	assert.Equal(t, "0123456", c.ShortSHA)
	assert.Equal(t, "Fix parser", c.Summary())
	assert.False(t, c.HasParent())

	c = NewCommit("abc", "def", "", "")
	assert.Equal(t, "abc", c.ShortSHA)
	assert.True(t, c.HasParent())
	assert.Empty(t, c.Summary())
}

func TestComment_Flags(t *testing.T) {
	assert.True(t, Comment{Line: 0}.IsFileLevel())
	assert.False(t, Comment{Line: 3}.IsFileLevel())
	assert.True(t, Comment{InReplyTo: 9}.IsReply())
	assert.False(t, Comment{}.IsReply())
}
