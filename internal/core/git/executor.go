package git

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/colonyops/lado/internal/core/diff"
	"github.com/colonyops/lado/pkg/executil"
)

// Executor implements Engine using the git command-line tool.
type Executor struct {
	gitPath      string
	dir          string
	contextLines int
	exec         executil.Executor
}

// NewExecutor creates a git executor running gitPath inside dir.
func NewExecutor(gitPath, dir string, contextLines int, exec executil.Executor) *Executor {
	return &Executor{gitPath: gitPath, dir: dir, contextLines: contextLines, exec: exec}
}

func (e *Executor) run(ctx context.Context, args ...string) (string, error) {
	out, err := e.exec.RunDir(ctx, e.dir, e.gitPath, args...)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// verify resolves rev to a commit id. An empty result means rev does not exist.
func (e *Executor) verify(ctx context.Context, rev string) (string, error) {
	return e.run(ctx, "rev-parse", "--verify", "--quiet", rev+"^{commit}")
}

func (e *Executor) ResolveRef(ctx context.Context, name string) (string, error) {
	for _, candidate := range refCandidates(name) {
		sha, err := e.verify(ctx, candidate)
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		if err == nil && sha != "" {
			return sha, nil
		}
	}
	return "", fmt.Errorf("resolve %q: %w", name, ErrSnapshotNotFound)
}

func (e *Executor) Head(ctx context.Context) (string, error) {
	sha, err := e.verify(ctx, "HEAD")
	if err != nil || sha == "" {
		return "", fmt.Errorf("resolve HEAD: %w", ErrSnapshotNotFound)
	}
	return sha, nil
}

func (e *Executor) DefaultBranch(ctx context.Context) (string, error) {
	for _, prefix := range []string{"refs/heads/", "refs/remotes/origin/"} {
		for _, name := range defaultBranchNames {
			sha, err := e.verify(ctx, prefix+name)
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			if err == nil && sha != "" {
				return name, nil
			}
		}
	}
	return "", ErrNoDefaultBranch
}

func (e *Executor) Diff(ctx context.Context, base, head string) (*diff.Data, error) {
	out, err := e.exec.RunDir(ctx, e.dir, e.gitPath,
		"diff",
		"--no-color",
		"--no-ext-diff",
		"--find-renames",
		"--src-prefix=a/",
		"--dst-prefix=b/",
		"-U"+strconv.Itoa(e.contextLines),
		base, head,
	)
	if err != nil {
		return nil, fmt.Errorf("git diff %s %s: %w: %w", base, head, ErrDiffFailed, err)
	}

	data, err := diff.Parse(bytes.NewReader(out))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDiffFailed, err)
	}
	return data, nil
}

func (e *Executor) RemoteURL(ctx context.Context) (string, error) {
	out, err := e.run(ctx, "remote", "get-url", "origin")
	if err != nil {
		return "", fmt.Errorf("get remote url: %w", err)
	}
	return out, nil
}
