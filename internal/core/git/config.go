package git

import (
	"fmt"

	"github.com/colonyops/lado/internal/core/config"
	"github.com/colonyops/lado/pkg/executil"
)

// FromConfig builds the Engine selected by cfg.Diff.Backend for the
// repository containing dir.
func FromConfig(cfg *config.Config, dir string, exec executil.Executor) (Engine, error) {
	switch cfg.Diff.Backend {
	case config.DiffBackendCLI:
		return NewExecutor(cfg.GitPath, dir, cfg.Diff.ContextLines, exec), nil
	case config.DiffBackendNative, "":
		return OpenNative(dir, cfg.Diff.ContextLines)
	default:
		return nil, fmt.Errorf("unknown diff backend %q", cfg.Diff.Backend)
	}
}
