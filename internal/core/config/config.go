// Package config handles configuration loading, validation, and persistence for lado.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DiffBackend selects the engine used to compute diffs.
type DiffBackend string

const (
	DiffBackendNative DiffBackend = "native" // in-process go-git
	DiffBackendCLI    DiffBackend = "cli"    // git binary
)

// HostingBackend selects the client used to fetch change requests.
type HostingBackend string

const (
	HostingBackendGH  HostingBackend = "gh"  // gh binary
	HostingBackendAPI HostingBackend = "api" // GitHub REST API
)

// IconStyle determines which icon set is used for file tree rendering.
type IconStyle string

const (
	IconStyleNerdFonts IconStyle = "nerd-fonts"
	IconStyleUnicode   IconStyle = "unicode"
	IconStyleASCII     IconStyle = "ascii"
	IconStyleNone      IconStyle = "none"
)

// Config holds the application configuration.
type Config struct {
	GitPath string        `yaml:"git_path"`
	Diff    DiffConfig    `yaml:"diff"`
	Hosting HostingConfig `yaml:"hosting"`
	UI      UIConfig      `yaml:"ui"`
}

// DiffConfig holds diff computation options.
type DiffConfig struct {
	Backend      DiffBackend `yaml:"backend"`
	ContextLines int         `yaml:"context_lines"`
	Exclude      []string    `yaml:"exclude,omitempty"` // doublestar globs matched against file paths
}

// HostingConfig holds change request hosting options.
type HostingConfig struct {
	Backend  HostingBackend `yaml:"backend"`
	GHPath   string         `yaml:"gh_path"`
	APIURL   string         `yaml:"api_url"`   // empty means api.github.com
	TokenEnv string         `yaml:"token_env"` // environment variable holding the API token
}

// Token reads the API token from the configured environment variable.
func (h HostingConfig) Token() string {
	if h.TokenEnv == "" {
		return ""
	}
	return os.Getenv(h.TokenEnv)
}

// UIConfig holds rendering options.
type UIConfig struct {
	Theme       string    `yaml:"theme"`        // dark or light
	SyntaxTheme string    `yaml:"syntax_theme"` // chroma style name
	TabWidth    int       `yaml:"tab_width"`
	Icons       IconStyle `yaml:"icons"`
	LineWrap    bool      `yaml:"line_wrap"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		GitPath: "git",
		Diff: DiffConfig{
			Backend:      DiffBackendNative,
			ContextLines: 3,
		},
		Hosting: HostingConfig{
			Backend:  HostingBackendGH,
			GHPath:   "gh",
			TokenEnv: "GITHUB_TOKEN",
		},
		UI: UIConfig{
			Theme:       "dark",
			SyntaxTheme: "base16-snazzy",
			TabWidth:    4,
			Icons:       IconStyleUnicode,
		},
	}
}

// Load reads configuration from the given path.
// If configPath is empty or doesn't exist, returns defaults.
func Load(configPath string) (*Config, error) {
	cfg := DefaultConfig()

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config file: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	// Apply defaults for zero values
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// Save writes the configuration to path, creating parent directories.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// applyDefaults sets default values for any unset configuration options.
// A context_lines of 0 is treated as unset.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.GitPath == "" {
		c.GitPath = defaults.GitPath
	}
	if c.Diff.Backend == "" {
		c.Diff.Backend = defaults.Diff.Backend
	}
	if c.Diff.ContextLines == 0 {
		c.Diff.ContextLines = defaults.Diff.ContextLines
	}
	if c.Hosting.Backend == "" {
		c.Hosting.Backend = defaults.Hosting.Backend
	}
	if c.Hosting.GHPath == "" {
		c.Hosting.GHPath = defaults.Hosting.GHPath
	}
	if c.Hosting.TokenEnv == "" {
		c.Hosting.TokenEnv = defaults.Hosting.TokenEnv
	}
	if c.UI.Theme == "" {
		c.UI.Theme = defaults.UI.Theme
	}
	if c.UI.SyntaxTheme == "" {
		c.UI.SyntaxTheme = defaults.UI.SyntaxTheme
	}
	if c.UI.TabWidth == 0 {
		c.UI.TabWidth = defaults.UI.TabWidth
	}
	if c.UI.Icons == "" {
		c.UI.Icons = defaults.UI.Icons
	}
}

// Validate checks that the configuration is structurally valid.
func (c *Config) Validate() error {
	if c.GitPath == "" {
		return fmt.Errorf("git_path cannot be empty")
	}

	if !c.Diff.Backend.IsValid() {
		return fmt.Errorf("diff.backend %q must be one of native, cli", c.Diff.Backend)
	}

	if c.Diff.ContextLines < 0 {
		return fmt.Errorf("diff.context_lines cannot be negative")
	}

	if !c.Hosting.Backend.IsValid() {
		return fmt.Errorf("hosting.backend %q must be one of gh, api", c.Hosting.Backend)
	}

	if c.Hosting.Backend == HostingBackendGH && c.Hosting.GHPath == "" {
		return fmt.Errorf("hosting.gh_path cannot be empty when hosting.backend is gh")
	}

	if c.Hosting.APIURL != "" {
		u, err := url.Parse(c.Hosting.APIURL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("hosting.api_url %q must be an absolute URL", c.Hosting.APIURL)
		}
	}

	if c.UI.Theme != "dark" && c.UI.Theme != "light" {
		return fmt.Errorf("ui.theme %q must be one of dark, light", c.UI.Theme)
	}

	if c.UI.TabWidth < 1 || c.UI.TabWidth > 16 {
		return fmt.Errorf("ui.tab_width must be between 1 and 16")
	}

	if !c.UI.Icons.IsValid() {
		return fmt.Errorf("ui.icons %q must be one of nerd-fonts, unicode, ascii, none", c.UI.Icons)
	}

	return nil
}

// IsValid reports whether b is a known diff backend.
func (b DiffBackend) IsValid() bool {
	switch b {
	case DiffBackendNative, DiffBackendCLI:
		return true
	default:
		return false
	}
}

// IsValid reports whether b is a known hosting backend.
func (b HostingBackend) IsValid() bool {
	switch b {
	case HostingBackendGH, HostingBackendAPI:
		return true
	default:
		return false
	}
}

// IsValid reports whether s is a known icon style.
func (s IconStyle) IsValid() bool {
	switch s {
	case IconStyleNerdFonts, IconStyleUnicode, IconStyleASCII, IconStyleNone:
		return true
	default:
		return false
	}
}
