package target

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/colonyops/lado/internal/core/hosting"
	"github.com/colonyops/lado/internal/core/logging"
	"github.com/colonyops/lado/internal/core/review"
)

var (
	// ErrNoHostingClient is returned when a change request is requested
	// without a hosting client.
	ErrNoHostingClient = errors.New("no hosting client configured")
	// ErrCommitOutOfRange is returned when a selector names a commit the
	// change request does not have.
	ErrCommitOutOfRange = errors.New("commit index out of range")
)

// RefResolver resolves names to snapshot ids.
type RefResolver interface {
	ResolveRef(ctx context.Context, name string) (string, error)
	Head(ctx context.Context) (string, error)
	DefaultBranch(ctx context.Context) (string, error)
}

// ChangeRequestData is everything fetched for one change request. Commits and
// Comments are empty when fetching them failed; Warnings explains why.
type ChangeRequestData struct {
	Info     review.ChangeRequestInfo
	Commits  []review.Commit
	Comments []review.Comment
	Warnings []string
}

// Resolution is a concrete pair of snapshots and the comments relevant to it.
type Resolution struct {
	Base      string
	Head      string
	BaseLabel string
	HeadLabel string
	Title     string
	Comments  review.FileComments

	// Commit is the selected commit when a single commit was requested.
	Commit *review.Commit
	// ChangeRequest is set for change request targets.
	ChangeRequest *ChangeRequestData
}

// Warnings returns non-fatal problems met while resolving.
func (r *Resolution) Warnings() []string {
	if r.ChangeRequest == nil {
		return nil
	}
	return r.ChangeRequest.Warnings
}

// Resolver maps targets onto snapshot pairs.
type Resolver struct {
	refs    RefResolver
	hosting hosting.Client
	log     zerolog.Logger
}

// NewResolver creates a Resolver. client may be nil when change requests are
// not available.
func NewResolver(refs RefResolver, client hosting.Client) *Resolver {
	return &Resolver{
		refs:    refs,
		hosting: client,
		log:     logging.Component("target"),
	}
}

// Resolve resolves t, fetching change request data when needed. sel is only
// consulted for change request targets.
func (r *Resolver) Resolve(ctx context.Context, t Target, sel Selector) (*Resolution, error) {
	ctx = logging.WithTarget(ctx, t.String())

	switch t.Kind {
	case KindDefaultBranch:
		name, err := r.refs.DefaultBranch(ctx)
		if err != nil {
			return nil, fmt.Errorf("default branch: %w", err)
		}
		return r.resolveAgainstHead(ctx, name)
	case KindRef:
		return r.resolveAgainstHead(ctx, t.Ref)
	case KindChangeRequest:
		cr, err := r.Fetch(ctx, t.Number)
		if err != nil {
			return nil, err
		}
		return r.ResolveChangeRequest(ctx, cr, sel)
	default:
		return nil, fmt.Errorf("unknown target kind %d", t.Kind)
	}
}

func (r *Resolver) resolveAgainstHead(ctx context.Context, name string) (*Resolution, error) {
	base, err := r.resolveRef(ctx, name)
	if err != nil {
		return nil, err
	}

	head, err := r.refs.Head(ctx)
	if err != nil {
		return nil, &UnresolvableRefError{Ref: "HEAD", Err: err}
	}

	r.log.Debug().Ctx(ctx).Str("base", base).Str("head", head).Msg("resolved target")

	return &Resolution{
		Base:      base,
		Head:      head,
		BaseLabel: name,
		HeadLabel: "HEAD",
		Title:     "HEAD vs " + name,
	}, nil
}

// Fetch loads a change request's info, commits, and review comments
// concurrently. Failing to load the info is fatal; failing to load commits or
// comments is logged and recorded as a warning.
func (r *Resolver) Fetch(ctx context.Context, number int) (*ChangeRequestData, error) {
	if r.hosting == nil {
		return nil, ErrNoHostingClient
	}

	ctx = logging.WithChangeRequest(ctx, number)

	var (
		data = &ChangeRequestData{}
		mu   sync.Mutex
	)

	warn := func(what string, err error) {
		r.log.Warn().Ctx(ctx).Err(err).Msgf("fetch %s failed, continuing without them", what)
		mu.Lock()
		data.Warnings = append(data.Warnings, fmt.Sprintf("%s unavailable: %v", what, err))
		mu.Unlock()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		info, err := r.hosting.ChangeRequestInfo(gctx, number)
		if err != nil {
			return fmt.Errorf("change request #%d: %w", number, err)
		}
		data.Info = info
		return nil
	})
	g.Go(func() error {
		commits, err := r.hosting.Commits(gctx, number)
		if err != nil {
			warn("commits", err)
			return nil
		}
		data.Commits = commits
		return nil
	})
	g.Go(func() error {
		comments, err := r.hosting.ReviewComments(gctx, number)
		if err != nil {
			warn("review comments", err)
			return nil
		}
		data.Comments = comments
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	slices.Sort(data.Warnings)
	return data, nil
}

// ResolveChangeRequest resolves already fetched change request data for sel.
//
// AllChanges compares the recorded base and head refs with every comment.
// A single commit is compared against its parent, or against the base ref
// when it has none, and only keeps comments originally written on it.
func (r *Resolver) ResolveChangeRequest(ctx context.Context, cr *ChangeRequestData, sel Selector) (*Resolution, error) {
	ctx = logging.WithChangeRequest(ctx, cr.Info.Number)

	title := fmt.Sprintf("PR #%d", cr.Info.Number)
	if cr.Info.Title != "" {
		title += ": " + cr.Info.Title
	}

	idx, single := sel.Index()
	if !single {
		base, err := r.resolveRef(ctx, cr.Info.BaseRef)
		if err != nil {
			return nil, err
		}
		head, err := r.resolveRef(ctx, cr.Info.HeadRef)
		if err != nil {
			return nil, err
		}

		return &Resolution{
			Base:          base,
			Head:          head,
			BaseLabel:     cr.Info.BaseRef,
			HeadLabel:     cr.Info.HeadRef,
			Title:         title,
			Comments:      review.GroupByFile(cr.Comments),
			ChangeRequest: cr,
		}, nil
	}

	if idx >= len(cr.Commits) {
		return nil, fmt.Errorf("%w: %d of %d commits", ErrCommitOutOfRange, idx, len(cr.Commits))
	}
	commit := cr.Commits[idx]

	baseName, baseLabel := commit.ParentSHA, review.ShortSHA(commit.ParentSHA)
	if !commit.HasParent() {
		// approximates the commit's own delta when the base moved after it
		baseName, baseLabel = cr.Info.BaseRef, cr.Info.BaseRef
	}

	base, err := r.resolveRef(ctx, baseName)
	if err != nil {
		return nil, err
	}
	head, err := r.resolveRef(ctx, commit.SHA)
	if err != nil {
		return nil, err
	}

	r.log.Debug().Ctx(ctx).Str("commit", commit.ShortSHA).Bool("parentless", !commit.HasParent()).Msg("resolved commit")

	return &Resolution{
		Base:          base,
		Head:          head,
		BaseLabel:     baseLabel,
		HeadLabel:     commit.ShortSHA,
		Title:         title + " @ " + commit.ShortSHA,
		Comments:      review.GroupByFile(review.ForCommit(cr.Comments, commit.SHA)),
		Commit:        &commit,
		ChangeRequest: cr,
	}, nil
}

func (r *Resolver) resolveRef(ctx context.Context, name string) (string, error) {
	sha, err := r.refs.ResolveRef(ctx, name)
	if err != nil {
		return "", &UnresolvableRefError{Ref: name, Err: err}
	}
	return sha, nil
}
