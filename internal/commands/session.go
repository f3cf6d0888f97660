package commands

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/colonyops/lado/internal/core/git"
	"github.com/colonyops/lado/internal/core/highlight"
	"github.com/colonyops/lado/internal/core/hosting"
	"github.com/colonyops/lado/internal/core/session"
	"github.com/colonyops/lado/internal/core/target"
	"github.com/colonyops/lado/pkg/executil"
)

// openSession wires the configured diff engine, hosting client, and
// highlighter into a new session. A hosting client that cannot be built only
// disables change request targets.
func openSession(ctx context.Context, flags *Flags, exec executil.Executor) (*session.Session, error) {
	cfg := flags.Config

	engine, err := git.FromConfig(cfg, flags.RepoDir, exec)
	if err != nil {
		return nil, fmt.Errorf("open repository: %w", err)
	}

	deps := session.Deps{
		Engine:      engine,
		Highlighter: highlight.NewChroma(cfg.UI.SyntaxTheme),
		Exclude:     cfg.Diff.Exclude,
	}

	client, err := hosting.FromConfig(ctx, cfg, flags.RepoDir, engine, exec)
	if err != nil {
		log.Warn().Err(err).Str("backend", string(cfg.Hosting.Backend)).Msg("hosting client unavailable")
	} else {
		deps.Hosting = client
	}

	return session.New(deps), nil
}

// loadTarget parses the positional target and loads it with the 1-based
// commit number, where 0 selects all changes.
func loadTarget(ctx context.Context, s *session.Session, arg string, commit int) error {
	t, err := target.Parse(arg)
	if err != nil {
		return err
	}
	return s.Load(ctx, t, commitSelector(commit))
}

func commitSelector(n int) target.Selector {
	if n <= 0 {
		return target.AllChanges
	}
	return target.CommitIndex(n - 1)
}
