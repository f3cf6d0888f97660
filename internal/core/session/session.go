// Package session owns the state of one diff view: the resolved target, the
// computed diff, review comments, and the display lines derived from them.
// All access goes through a single mutex-guarded Session.
package session

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/colonyops/lado/internal/core/diff"
	"github.com/colonyops/lado/internal/core/filetree"
	"github.com/colonyops/lado/internal/core/highlight"
	"github.com/colonyops/lado/internal/core/hosting"
	"github.com/colonyops/lado/internal/core/logging"
	"github.com/colonyops/lado/internal/core/review"
	"github.com/colonyops/lado/internal/core/target"
)

var (
	// ErrNotLoaded is returned when the session is queried before Load.
	ErrNotLoaded = errors.New("session not loaded")
	// ErrUnknownFile is returned for a path that is not part of the diff.
	ErrUnknownFile = errors.New("file not in diff")
	// ErrNotChangeRequest is returned when selecting commits on a target that
	// is not a change request.
	ErrNotChangeRequest = errors.New("target is not a change request")
)

// DiffEngine resolves snapshots and diffs them.
type DiffEngine interface {
	target.RefResolver
	Diff(ctx context.Context, base, head string) (*diff.Data, error)
}

// Deps are the collaborators of a Session. Hosting and Highlighter are optional.
type Deps struct {
	Engine      DiffEngine
	Hosting     hosting.Client
	Highlighter highlight.Highlighter
	Exclude     []string // doublestar patterns removed from every diff
}

// FileLines pairs a file with its display lines.
type FileLines struct {
	File  diff.ChangedFile
	Lines []diff.DisplayLine
}

// Session is the owned state of one diff view.
type Session struct {
	deps     Deps
	resolver *target.Resolver
	log      zerolog.Logger

	mu         sync.Mutex
	gen        int
	target     target.Target
	selector   target.Selector
	resolution *target.Resolution
	data       *diff.Data
	lines      map[string][]diff.DisplayLine
}

// New creates an empty Session.
func New(deps Deps) *Session {
	return &Session{
		deps:     deps,
		resolver: target.NewResolver(deps.Engine, deps.Hosting),
		log:      logging.Component("session"),
		selector: target.AllChanges,
	}
}

// Load resolves t and computes its diff, replacing any previous state. On
// error the previous state is kept.
func (s *Session) Load(ctx context.Context, t target.Target, sel target.Selector) error {
	ctx = logging.WithTarget(ctx, t.String())

	res, err := s.resolver.Resolve(ctx, t, sel)
	if err != nil {
		return err
	}

	data, err := s.computeDiff(ctx, res)
	if err != nil {
		return err
	}

	s.log.Info().Ctx(ctx).
		Str("base", res.BaseLabel).
		Str("head", res.HeadLabel).
		Int("files", len(data.Files)).
		Int("comments", res.Comments.Count()).
		Msg("diff loaded")

	s.mu.Lock()
	defer s.mu.Unlock()
	s.target = t
	s.replace(sel, res, data)
	return nil
}

// SelectCommit narrows a loaded change request to sel, reusing the fetched
// commits and comments.
func (s *Session) SelectCommit(ctx context.Context, sel target.Selector) error {
	s.mu.Lock()
	res, t := s.resolution, s.target
	s.mu.Unlock()

	if res == nil {
		return ErrNotLoaded
	}
	if res.ChangeRequest == nil {
		return ErrNotChangeRequest
	}

	ctx = logging.WithTarget(ctx, t.String())

	next, err := s.resolver.ResolveChangeRequest(ctx, res.ChangeRequest, sel)
	if err != nil {
		return err
	}

	data, err := s.computeDiff(ctx, next)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.replace(sel, next, data)
	return nil
}

// StepCommit moves the selection delta positions along
// all changes, commit 0, ..., last commit, clamping at both ends.
func (s *Session) StepCommit(ctx context.Context, delta int) error {
	s.mu.Lock()
	res, sel := s.resolution, s.selector
	s.mu.Unlock()

	if res == nil {
		return ErrNotLoaded
	}
	if res.ChangeRequest == nil {
		return ErrNotChangeRequest
	}

	pos := -1
	if i, ok := sel.Index(); ok {
		pos = i
	}
	next := min(max(pos+delta, -1), len(res.ChangeRequest.Commits)-1)
	if next == pos {
		return nil
	}

	if next < 0 {
		return s.SelectCommit(ctx, target.AllChanges)
	}
	return s.SelectCommit(ctx, target.CommitIndex(next))
}

func (s *Session) computeDiff(ctx context.Context, res *target.Resolution) (*diff.Data, error) {
	data, err := s.deps.Engine.Diff(ctx, res.Base, res.Head)
	if err != nil {
		return nil, fmt.Errorf("diff %s..%s: %w", res.BaseLabel, res.HeadLabel, err)
	}
	return diff.Exclude(data, s.deps.Exclude)
}

// replace swaps in new state. Callers hold s.mu.
func (s *Session) replace(sel target.Selector, res *target.Resolution, data *diff.Data) {
	s.gen++
	s.selector = sel
	s.resolution = res
	s.data = data
	s.lines = make(map[string][]diff.DisplayLine, len(data.Files))
}

// Files returns the changed files in diff order.
func (s *Session) Files() []diff.ChangedFile {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data == nil {
		return nil
	}
	return s.data.Files
}

// Tree returns the flattened file tree of the changed files.
func (s *Session) Tree() []filetree.FlatEntry {
	return filetree.Flatten(filetree.Build(s.Files()), 0)
}

// Lines returns the display lines of path, computing and caching them on
// first use.
func (s *Session) Lines(path string) ([]diff.DisplayLine, error) {
	s.mu.Lock()
	if s.data == nil {
		s.mu.Unlock()
		return nil, ErrNotLoaded
	}
	if _, ok := s.data.File(path); !ok {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrUnknownFile, path)
	}
	if cached, ok := s.lines[path]; ok {
		s.mu.Unlock()
		return cached, nil
	}
	gen := s.gen
	hunks := s.data.Hunks[path]
	comments := s.resolution.Comments[path]
	s.mu.Unlock()

	lines := diff.Interleave(path, hunks, comments, s.deps.Highlighter)

	s.mu.Lock()
	if s.gen == gen {
		s.lines[path] = lines
	}
	s.mu.Unlock()
	return lines, nil
}

// AllLines computes the display lines of every changed file concurrently.
func (s *Session) AllLines(ctx context.Context) ([]FileLines, error) {
	files := s.Files()
	if files == nil {
		s.mu.Lock()
		loaded := s.data != nil
		s.mu.Unlock()
		if !loaded {
			return nil, ErrNotLoaded
		}
	}

	out := make([]FileLines, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, f := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			lines, err := s.Lines(f.Path)
			if err != nil {
				return err
			}
			out[i] = FileLines{File: f, Lines: lines}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// FileLevelComments returns the comments on path that target no line. They
// are never part of Lines.
func (s *Session) FileLevelComments(path string) []review.Comment {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.resolution == nil {
		return nil
	}

	var out []review.Comment
	for _, c := range s.resolution.Comments[path] {
		if c.IsFileLevel() {
			out = append(out, c)
		}
	}
	return out
}

// Title describes the current comparison.
func (s *Session) Title() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.resolution == nil {
		return ""
	}
	return s.resolution.Title
}

// Warnings returns non-fatal problems from the last load.
func (s *Session) Warnings() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.resolution == nil {
		return nil
	}
	return s.resolution.Warnings()
}

// Commits returns the change request's commits, or nil for other targets.
func (s *Session) Commits() []review.Commit {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.resolution == nil || s.resolution.ChangeRequest == nil {
		return nil
	}
	return s.resolution.ChangeRequest.Commits
}

// Selector returns the current commit selection.
func (s *Session) Selector() target.Selector {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selector
}

// Resolution returns the resolved snapshot pair, or nil before Load.
func (s *Session) Resolution() *target.Resolution {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resolution
}
