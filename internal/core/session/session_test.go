package session

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/colonyops/lado/internal/core/diff"
	"github.com/colonyops/lado/internal/core/git"
	"github.com/colonyops/lado/internal/core/review"
	"github.com/colonyops/lado/internal/core/target"
)

type fakeEngine struct {
	refs  map[string]string
	head  string
	diffs map[string]*diff.Data // keyed by "base..head"

	mu    sync.Mutex
	calls []string
}

func (f *fakeEngine) ResolveRef(_ context.Context, name string) (string, error) {
	if sha, ok := f.refs[name]; ok {
		return sha, nil
	}
	return "", fmt.Errorf("resolve %q: %w", name, git.ErrSnapshotNotFound)
}

func (f *fakeEngine) Head(context.Context) (string, error) { return f.head, nil }

func (f *fakeEngine) DefaultBranch(context.Context) (string, error) { return "main", nil }

func (f *fakeEngine) Diff(_ context.Context, base, head string) (*diff.Data, error) {
	key := base + ".." + head
	f.mu.Lock()
	f.calls = append(f.calls, key)
	f.mu.Unlock()

	if d, ok := f.diffs[key]; ok {
		return d, nil
	}
	return nil, fmt.Errorf("no diff for %s: %w", key, git.ErrDiffFailed)
}

type fakeHosting struct {
	calls int
}

func (f *fakeHosting) ChangeRequestInfo(context.Context, int) (review.ChangeRequestInfo, error) {
	f.calls++
	return review.ChangeRequestInfo{Number: 7, BaseRef: "main", HeadRef: "feature", Title: "Add thing"}, nil
}

func (f *fakeHosting) Commits(context.Context, int) ([]review.Commit, error) {
	return []review.Commit{
		review.NewCommit("c1", "", "first", "ada"),
		review.NewCommit("c2", "c1", "second", "ada"),
	}, nil
}

func (f *fakeHosting) ReviewComments(context.Context, int) ([]review.Comment, error) {
	return []review.Comment{
		{ID: 1, Path: "src/app.go", Line: 2, Side: review.SideRight, Body: "why?", OriginalCommitSHA: "c1"},
		{ID: 2, Path: "src/app.go", Line: 0, Body: "file note", OriginalCommitSHA: "c2"},
	}, nil
}

func sampleData(paths ...string) *diff.Data {
	d := &diff.Data{Hunks: map[string][]diff.Hunk{}}
	for _, p := range paths {
		d.Files = append(d.Files, diff.ChangedFile{Path: p, Status: diff.StatusModified, Additions: 1})
		d.Hunks[p] = []diff.Hunk{{
			Header: "@@ -1 +1,2 @@",
			Lines: []diff.Line{
				{Type: diff.LineTypeContext, OldLineNum: 1, NewLineNum: 1, Content: "a"},
				{Type: diff.LineTypeAdd, NewLineNum: 2, Content: "b"},
			},
		}}
	}
	return d
}

func newFixture() (*fakeEngine, *fakeHosting) {
	engine := &fakeEngine{
		refs: map[string]string{"main": "m", "feature": "f", "c1": "c1", "c2": "c2"},
		head: "h",
		diffs: map[string]*diff.Data{
			"m..h":   sampleData("README.md", "src/app.go", "go.sum"),
			"m..f":   sampleData("src/app.go", "src/lib/util.go"),
			"m..c1":  sampleData("src/app.go"),
			"c1..c2": sampleData("src/lib/util.go"),
		},
	}
	return engine, &fakeHosting{}
}

func TestSession_BeforeLoad(t *testing.T) {
	engine, _ := newFixture()
	s := New(Deps{Engine: engine})

	assert.Nil(t, s.Files())
	assert.Empty(t, s.Tree())
	assert.Empty(t, s.Title())
	assert.Nil(t, s.Warnings())

	_, err := s.Lines("README.md")
	require.ErrorIs(t, err, ErrNotLoaded)

	_, err = s.AllLines(context.Background())
	require.ErrorIs(t, err, ErrNotLoaded)

	require.ErrorIs(t, s.StepCommit(context.Background(), 1), ErrNotLoaded)
}

func TestSession_LoadDefaultBranch(t *testing.T) {
	engine, _ := newFixture()
	s := New(Deps{Engine: engine, Exclude: []string{"*.sum"}})

	require.NoError(t, s.Load(context.Background(), target.DefaultBranch(), target.AllChanges))

	assert.Equal(t, "HEAD vs main", s.Title())
	assert.Equal(t, []string{"m..h"}, engine.calls)

	files := s.Files()
	require.Len(t, files, 2)
	assert.Equal(t, "README.md", files[0].Path)
	assert.Equal(t, "src/app.go", files[1].Path)

	tree := s.Tree()
	require.Len(t, tree, 3)
	assert.Equal(t, "src", tree[0].Name)
	assert.True(t, tree[0].IsFolder)
	assert.Equal(t, "app.go", tree[1].Name)
	assert.Equal(t, 1, tree[1].Depth)
	assert.Equal(t, "README.md", tree[2].Name)

	require.ErrorIs(t, s.SelectCommit(context.Background(), target.CommitIndex(0)), ErrNotChangeRequest)
}

func TestSession_Lines(t *testing.T) {
	engine, _ := newFixture()
	s := New(Deps{Engine: engine})
	require.NoError(t, s.Load(context.Background(), target.Ref("main"), target.AllChanges))

	lines, err := s.Lines("src/app.go")
	require.NoError(t, err)
	require.Len(t, lines, 3)
	assert.Equal(t, diff.LineTypeHunk, lines[0].Type)
	assert.Equal(t, "b", lines[2].Content)

	again, err := s.Lines("src/app.go")
	require.NoError(t, err)
	assert.Equal(t, lines, again)

	_, err = s.Lines("missing.go")
	require.ErrorIs(t, err, ErrUnknownFile)
}

func TestSession_LoadFailureKeepsState(t *testing.T) {
	engine, _ := newFixture()
	s := New(Deps{Engine: engine})
	ctx := context.Background()

	require.NoError(t, s.Load(ctx, target.Ref("main"), target.AllChanges))

	err := s.Load(ctx, target.Ref("nope"), target.AllChanges)
	var unresolvable *target.UnresolvableRefError
	require.ErrorAs(t, err, &unresolvable)

	assert.Equal(t, "HEAD vs main", s.Title())
	assert.Len(t, s.Files(), 3)
}

func TestSession_BadExcludePattern(t *testing.T) {
	engine, _ := newFixture()
	s := New(Deps{Engine: engine, Exclude: []string{"[oops"}})

	require.Error(t, s.Load(context.Background(), target.Ref("main"), target.AllChanges))
	assert.Nil(t, s.Files())
}

func TestSession_ChangeRequest(t *testing.T) {
	engine, client := newFixture()
	s := New(Deps{Engine: engine, Hosting: client})
	ctx := context.Background()

	require.NoError(t, s.Load(ctx, target.ChangeRequest(7), target.AllChanges))

	assert.Equal(t, "PR #7: Add thing", s.Title())
	assert.Len(t, s.Commits(), 2)
	assert.Equal(t, target.AllChanges, s.Selector())

	lines, err := s.Lines("src/app.go")
	require.NoError(t, err)
	require.Len(t, lines, 4)
	assert.Equal(t, diff.LineTypeComment, lines[3].Type)
	assert.Equal(t, "why?", lines[3].Content)

	fileLevel := s.FileLevelComments("src/app.go")
	require.Len(t, fileLevel, 1)
	assert.Equal(t, "file note", fileLevel[0].Body)

	t.Run("select commit reuses fetched data", func(t *testing.T) {
		require.NoError(t, s.SelectCommit(ctx, target.CommitIndex(1)))

		assert.Equal(t, 1, client.calls)
		assert.Equal(t, "PR #7: Add thing @ c2", s.Title())
		require.Len(t, s.Files(), 1)
		assert.Equal(t, "src/lib/util.go", s.Files()[0].Path)
		assert.Empty(t, s.FileLevelComments("src/app.go"))
	})

	t.Run("out of range keeps selection", func(t *testing.T) {
		err := s.SelectCommit(ctx, target.CommitIndex(5))
		require.ErrorIs(t, err, target.ErrCommitOutOfRange)
		assert.Equal(t, target.CommitIndex(1), s.Selector())
	})
}

func TestSession_StepCommit(t *testing.T) {
	engine, client := newFixture()
	s := New(Deps{Engine: engine, Hosting: client})
	ctx := context.Background()

	require.NoError(t, s.Load(ctx, target.ChangeRequest(7), target.AllChanges))

	steps := []struct {
		delta int
		want  target.Selector
		title string
	}{
		{delta: -1, want: target.AllChanges, title: "PR #7: Add thing"},
		{delta: 1, want: target.CommitIndex(0), title: "PR #7: Add thing @ c1"},
		{delta: 1, want: target.CommitIndex(1), title: "PR #7: Add thing @ c2"},
		{delta: 1, want: target.CommitIndex(1), title: "PR #7: Add thing @ c2"},
		{delta: -5, want: target.AllChanges, title: "PR #7: Add thing"},
	}

	for _, step := range steps {
		require.NoError(t, s.StepCommit(ctx, step.delta))
		assert.Equal(t, step.want, s.Selector(), "delta %d", step.delta)
		assert.Equal(t, step.title, s.Title())
	}

	// clamped steps do not recompute the diff
	assert.Equal(t, []string{"m..f", "m..c1", "c1..c2", "m..f"}, engine.calls)
}

func TestSession_AllLines(t *testing.T) {
	engine, client := newFixture()
	s := New(Deps{Engine: engine, Hosting: client})
	require.NoError(t, s.Load(context.Background(), target.ChangeRequest(7), target.AllChanges))

	all, err := s.AllLines(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 2)

	assert.Equal(t, "src/app.go", all[0].File.Path)
	assert.Len(t, all[0].Lines, 4)
	assert.Equal(t, "src/lib/util.go", all[1].File.Path)
	assert.Len(t, all[1].Lines, 3)
}

func TestSession_AllLinesCanceled(t *testing.T) {
	engine, _ := newFixture()
	s := New(Deps{Engine: engine})
	require.NoError(t, s.Load(context.Background(), target.Ref("main"), target.AllChanges))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.AllLines(ctx)
	require.ErrorIs(t, err, context.Canceled)
}
