package diff

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sampleDiff = strings.Join([]string{
	"diff --git a/src/main.go b/src/main.go",
	"index 1111111..2222222 100644",
	"--- a/src/main.go",
	"+++ b/src/main.go",
	"@@ -1,3 +1,4 @@ package main",
	" package main",
	"-func old() {}",
	"+func new() {}",
	"+func extra() {}",
	" var x = 1",
	"@@ -10,2 +11,2 @@ func tail()",
	" a",
	"-b",
	"+c",
	"diff --git a/added.txt b/added.txt",
	"new file mode 100644",
	"index 0000000..3333333",
	"--- /dev/null",
	"+++ b/added.txt",
	"@@ -0,0 +1 @@",
	"+hello",
	"diff --git a/gone.txt b/gone.txt",
	"deleted file mode 100644",
	"index 4444444..0000000",
	"--- a/gone.txt",
	"+++ /dev/null",
	"@@ -1 +0,0 @@",
	"-bye",
	"diff --git a/old.txt b/new.txt",
	"similarity index 100%",
	"rename from old.txt",
	"rename to new.txt",
	"",
}, "\n")

func TestParse_Files(t *testing.T) {
	data, err := Parse(strings.NewReader(sampleDiff))
	require.NoError(t, err)

	assert.Equal(t, []ChangedFile{
		{Path: "src/main.go", Status: StatusModified, Additions: 3, Deletions: 2},
		{Path: "added.txt", Status: StatusAdded, Additions: 1},
		{Path: "gone.txt", Status: StatusDeleted, Deletions: 1},
		{Path: "new.txt", Status: StatusRenamed},
	}, data.Files)

	_, ok := data.Hunks["new.txt"]
	assert.False(t, ok, "pure rename has no hunks")
}

func TestParse_LineNumbers(t *testing.T) {
	data, err := Parse(strings.NewReader(sampleDiff))
	require.NoError(t, err)

	hunks := data.Hunks["src/main.go"]
	require.Len(t, hunks, 2)

	first := hunks[0]
	assert.Equal(t, "@@ -1,3 +1,4 @@ package main", first.Header)
	assert.Equal(t, 1, first.OldStart)
	assert.Equal(t, 3, first.OldLines)
	assert.Equal(t, 1, first.NewStart)
	assert.Equal(t, 4, first.NewLines)

	assert.Equal(t, []Line{
		{Type: LineTypeContext, OldLineNum: 1, NewLineNum: 1, Content: "package main"},
		{Type: LineTypeRemove, OldLineNum: 2, Content: "func old() {}"},
		{Type: LineTypeAdd, NewLineNum: 2, Content: "func new() {}"},
		{Type: LineTypeAdd, NewLineNum: 3, Content: "func extra() {}"},
		{Type: LineTypeContext, OldLineNum: 3, NewLineNum: 4, Content: "var x = 1"},
	}, first.Lines)

	second := hunks[1]
	assert.Equal(t, "@@ -10,2 +11,2 @@ func tail()", second.Header)
	assert.Equal(t, []Line{
		{Type: LineTypeContext, OldLineNum: 10, NewLineNum: 11, Content: "a"},
		{Type: LineTypeRemove, OldLineNum: 11, Content: "b"},
		{Type: LineTypeAdd, NewLineNum: 12, Content: "c"},
	}, second.Lines)
}

func TestParse_AddedAndDeletedHeaders(t *testing.T) {
	data, err := Parse(strings.NewReader(sampleDiff))
	require.NoError(t, err)

	added := data.Hunks["added.txt"]
	require.Len(t, added, 1)
	assert.Equal(t, "@@ -0,0 +1 @@", added[0].Header)
	assert.Equal(t, []Line{{Type: LineTypeAdd, NewLineNum: 1, Content: "hello"}}, added[0].Lines)

	gone := data.Hunks["gone.txt"]
	require.Len(t, gone, 1)
	assert.Equal(t, "@@ -1 +0,0 @@", gone[0].Header)
	assert.Equal(t, []Line{{Type: LineTypeRemove, OldLineNum: 1, Content: "bye"}}, gone[0].Lines)
}

func TestParse_Empty(t *testing.T) {
	data, err := Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, data.Files)
	assert.Empty(t, data.Hunks)
}

func TestData_File(t *testing.T) {
	data, err := Parse(strings.NewReader(sampleDiff))
	require.NoError(t, err)

	f, ok := data.File("added.txt")
	require.True(t, ok)
	assert.Equal(t, StatusAdded, f.Status)

	_, ok = data.File("missing.txt")
	assert.False(t, ok)
}

func TestFormatRange(t *testing.T) {
	assert.Equal(t, "5", formatRange(5, 1))
	assert.Equal(t, "5,3", formatRange(5, 3))
	assert.Equal(t, "0,0", formatRange(0, 0))
}

func TestLineType_String(t *testing.T) {
	tests := map[LineType]string{
		LineTypeContext: "context",
		LineTypeAdd:     "add",
		LineTypeRemove:  "remove",
		LineTypeHunk:    "hunk",
		LineTypeComment: "comment",
		LineType(99):    "unknown",
	}
	for typ, want := range tests {
		assert.Equal(t, want, typ.String())
	}

	assert.True(t, LineTypeAdd.IsCode())
	assert.False(t, LineTypeHunk.IsCode())
	assert.False(t, LineTypeComment.IsCode())

	var lt LineType
	require.NoError(t, lt.UnmarshalText([]byte("remove")))
	assert.Equal(t, LineTypeRemove, lt)
	assert.Error(t, lt.UnmarshalText([]byte("nope")))
}
