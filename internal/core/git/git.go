// Package git computes diffs between snapshots of a local repository.
package git

import (
	"context"
	"errors"
	"strings"

	"github.com/colonyops/lado/internal/core/diff"
)

var (
	// ErrSnapshotNotFound is returned when a ref or revision does not name a commit.
	ErrSnapshotNotFound = errors.New("snapshot not found")
	// ErrNoDefaultBranch is returned when neither a conventional branch name nor
	// its remote-tracking equivalent exists.
	ErrNoDefaultBranch = errors.New("no default branch found")
	// ErrDiffFailed is returned when the diff between two snapshots cannot be computed.
	ErrDiffFailed = errors.New("diff computation failed")
)

// Engine resolves snapshots and computes diffs between them.
type Engine interface {
	// ResolveRef returns the commit id named by a ref, branch, or revision.
	ResolveRef(ctx context.Context, name string) (string, error)
	// Head returns the commit id of the current checkout.
	Head(ctx context.Context) (string, error)
	// DefaultBranch returns the repository's default branch name.
	DefaultBranch(ctx context.Context) (string, error)
	// Diff computes the changed files and hunks between base and head.
	Diff(ctx context.Context, base, head string) (*diff.Data, error)
	// RemoteURL returns the origin remote URL.
	RemoteURL(ctx context.Context) (string, error)
}

var defaultBranchNames = []string{"main", "master"}

// refCandidates lists the names tried, in order, when resolving a user
// supplied ref: the full ref, the local branch, the origin branch, and
// finally the name as a revision expression.
func refCandidates(name string) []string {
	if strings.HasPrefix(name, "refs/") {
		return []string{name}
	}
	return []string{
		"refs/heads/" + name,
		"refs/remotes/origin/" + name,
		name,
	}
}

// ExtractOwnerRepo extracts the owner and repository name from a git remote
// URL. For nested groups the last two path segments are returned.
func ExtractOwnerRepo(remote string) (owner, repo string) {
	remote = strings.TrimSuffix(strings.TrimSpace(remote), ".git")

	if i := strings.Index(remote, "://"); i >= 0 {
		remote = remote[i+3:]
	} else if i := strings.Index(remote, ":"); i >= 0 {
		remote = remote[:i] + "/" + remote[i+1:]
	}

	parts := strings.Split(remote, "/")
	if len(parts) < 3 {
		return "", ""
	}
	return parts[len(parts)-2], parts[len(parts)-1]
}
