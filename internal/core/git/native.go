package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	fdiff "github.com/go-git/go-git/v5/plumbing/format/diff"
	"github.com/go-git/go-git/v5/plumbing/object"

	"github.com/colonyops/lado/internal/core/diff"
)

// Native implements Engine in-process with go-git.
type Native struct {
	repo         *gogit.Repository
	contextLines int
}

// OpenNative opens the repository containing dir, searching parent
// directories for the .git folder.
func OpenNative(dir string, contextLines int) (*Native, error) {
	repo, err := gogit.PlainOpenWithOptions(dir, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("open repository %s: %w", dir, err)
	}
	return NewNative(repo, contextLines), nil
}

// NewNative wraps an already opened repository.
func NewNative(repo *gogit.Repository, contextLines int) *Native {
	return &Native{repo: repo, contextLines: contextLines}
}

func (n *Native) resolve(rev string) (*object.Commit, error) {
	hash, err := n.repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return nil, err
	}
	return n.repo.CommitObject(*hash)
}

func (n *Native) ResolveRef(ctx context.Context, name string) (string, error) {
	for _, candidate := range refCandidates(name) {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		if c, err := n.resolve(candidate); err == nil {
			return c.Hash.String(), nil
		}
	}
	return "", fmt.Errorf("resolve %q: %w", name, ErrSnapshotNotFound)
}

func (n *Native) Head(_ context.Context) (string, error) {
	ref, err := n.repo.Head()
	if err != nil {
		return "", fmt.Errorf("resolve HEAD: %w: %w", ErrSnapshotNotFound, err)
	}
	return ref.Hash().String(), nil
}

func (n *Native) DefaultBranch(_ context.Context) (string, error) {
	for _, name := range defaultBranchNames {
		if _, err := n.repo.Reference(plumbing.NewBranchReferenceName(name), true); err == nil {
			return name, nil
		}
	}
	for _, name := range defaultBranchNames {
		if _, err := n.repo.Reference(plumbing.NewRemoteReferenceName("origin", name), true); err == nil {
			return name, nil
		}
	}
	return "", ErrNoDefaultBranch
}

func (n *Native) Diff(ctx context.Context, base, head string) (*diff.Data, error) {
	baseTree, err := n.tree(base)
	if err != nil {
		return nil, err
	}
	headTree, err := n.tree(head)
	if err != nil {
		return nil, err
	}

	changes, err := object.DiffTreeWithOptions(ctx, baseTree, headTree, object.DefaultDiffTreeOptions)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDiffFailed, err)
	}

	patch, err := changes.PatchContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDiffFailed, err)
	}

	var buf bytes.Buffer
	if err := fdiff.NewUnifiedEncoder(&buf, n.contextLines).Encode(patch); err != nil {
		return nil, fmt.Errorf("%w: encode patch: %w", ErrDiffFailed, err)
	}

	data, err := diff.Parse(&buf)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDiffFailed, err)
	}
	return data, nil
}

func (n *Native) tree(rev string) (*object.Tree, error) {
	c, err := n.resolve(rev)
	if err != nil {
		return nil, fmt.Errorf("resolve %q: %w: %w", rev, ErrSnapshotNotFound, err)
	}
	t, err := c.Tree()
	if err != nil {
		return nil, fmt.Errorf("tree of %s: %w", c.Hash, err)
	}
	return t, nil
}

func (n *Native) RemoteURL(_ context.Context) (string, error) {
	remote, err := n.repo.Remote("origin")
	if err != nil {
		return "", fmt.Errorf("get remote url: %w", err)
	}
	urls := remote.Config().URLs
	if len(urls) == 0 {
		return "", errors.New("get remote url: origin has no url")
	}
	return urls[0], nil
}
