// Package hosting fetches change request metadata, commits, and review
// comments from a code hosting service.
package hosting

import (
	"context"
	"errors"
	"fmt"

	"github.com/colonyops/lado/internal/core/config"
	"github.com/colonyops/lado/internal/core/git"
	"github.com/colonyops/lado/internal/core/review"
	"github.com/colonyops/lado/pkg/executil"
)

// ErrRequestFailed is returned for network, authentication, and missing tool
// failures. Callers degrade instead of aborting.
var ErrRequestFailed = errors.New("request failed")

// Client reads change requests from a hosting service.
type Client interface {
	ChangeRequestInfo(ctx context.Context, number int) (review.ChangeRequestInfo, error)
	Commits(ctx context.Context, number int) ([]review.Commit, error)
	ReviewComments(ctx context.Context, number int) ([]review.Comment, error)
}

// RemoteLocator reports the URL of the repository's origin remote.
type RemoteLocator interface {
	RemoteURL(ctx context.Context) (string, error)
}

// FromConfig builds the Client selected by cfg.Hosting.Backend. The gh
// backend runs inside dir and lets gh infer the repository; the api backend
// derives owner and repository from the origin remote.
func FromConfig(ctx context.Context, cfg *config.Config, dir string, remote RemoteLocator, exec executil.Executor) (Client, error) {
	switch cfg.Hosting.Backend {
	case config.HostingBackendGH, "":
		return NewGH(cfg.Hosting.GHPath, dir, exec), nil
	case config.HostingBackendAPI:
		url, err := remote.RemoteURL(ctx)
		if err != nil {
			return nil, err
		}
		owner, repo := git.ExtractOwnerRepo(url)
		if owner == "" || repo == "" {
			return nil, fmt.Errorf("cannot determine owner/repo from remote %q", url)
		}
		return NewAPIFromToken(cfg.Hosting.APIURL, cfg.Hosting.Token(), owner, repo)
	default:
		return nil, fmt.Errorf("unknown hosting backend %q", cfg.Hosting.Backend)
	}
}
