package commands

import (
	"io"
	"os"
	"path/filepath"

	"golang.org/x/term"

	"github.com/colonyops/lado/internal/core/config"
)

// Color modes accepted by --color.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string
	RepoDir    string
	Color      string

	// Config is loaded in the Before hook and available to all commands
	Config *config.Config
}

// DefaultConfigPath returns the default config file path using XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "lado", "config.yaml")
}

// UseColor reports whether output written to w should be styled.
func (f *Flags) UseColor(w io.Writer) bool {
	switch f.Color {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	}

	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	file, ok := w.(*os.File)
	return ok && term.IsTerminal(int(file.Fd()))
}
