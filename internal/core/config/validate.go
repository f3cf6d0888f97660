package config

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hay-kot/criterio"

	"github.com/colonyops/lado/internal/core/highlight"
)

// ValidationWarning represents a non-fatal configuration issue.
type ValidationWarning struct {
	Category string `json:"category"`
	Item     string `json:"item,omitempty"`
	Message  string `json:"message"`
}

// ValidateDeep performs comprehensive validation of the configuration including
// glob syntax, syntax theme names, and file accessibility. The configPath argument
// specifies the config file location to validate (empty string skips config file check).
// This calls Validate() first for basic structural validation, then adds I/O checks.
func (c *Config) ValidateDeep(configPath string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	return criterio.ValidateStruct(
		c.validateFileAccess(configPath),
		c.validateExclude(),
		criterio.Run("ui.syntax_theme", c.UI.SyntaxTheme, syntaxThemeExists),
	)
}

// Warnings returns non-fatal configuration issues. Missing hosting
// prerequisites only disable review comments, so they never fail validation.
func (c *Config) Warnings() []ValidationWarning {
	var warnings []ValidationWarning

	switch c.Hosting.Backend {
	case HostingBackendGH:
		if _, err := exec.LookPath(c.Hosting.GHPath); err != nil {
			warnings = append(warnings, ValidationWarning{
				Category: "Hosting",
				Item:     "gh_path",
				Message:  fmt.Sprintf("%s not found on PATH; pull request data will be unavailable", c.Hosting.GHPath),
			})
		}
	case HostingBackendAPI:
		if c.Hosting.Token() == "" {
			warnings = append(warnings, ValidationWarning{
				Category: "Hosting",
				Item:     "token_env",
				Message:  fmt.Sprintf("$%s is not set; requests will be unauthenticated", c.Hosting.TokenEnv),
			})
		}
	}

	return warnings
}

// validateFileAccess checks the config file and git executable.
func (c *Config) validateFileAccess(configPath string) error {
	err := criterio.ValidateStruct(validateConfigFile(configPath))
	if c.Diff.Backend != DiffBackendCLI {
		return err
	}
	return criterio.ValidateStruct(err, criterio.Run("git_path", c.GitPath, executableExists))
}

func validateConfigFile(configPath string) error {
	if configPath == "" {
		return nil
	}

	info, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		return nil // not found is fine, using defaults
	}
	if err != nil {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("cannot access: %w", err))
	}
	if info.IsDir() {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
	}
	return nil
}

// executableExists validates that path resolves to an executable.
func executableExists(path string) error {
	if path == "" {
		return nil
	}
	if _, err := exec.LookPath(path); err != nil {
		return fmt.Errorf("executable not found: %s", path)
	}
	return nil
}

func (c *Config) validateExclude() error {
	var errs criterio.FieldErrorsBuilder
	for i, pattern := range c.Diff.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			errs = errs.Append(fmt.Sprintf("diff.exclude[%d]", i), fmt.Errorf("invalid glob %q", pattern))
		}
	}
	return errs.ToError()
}

func syntaxThemeExists(name string) error {
	if !highlight.StyleExists(name) {
		return fmt.Errorf("unknown chroma style %q", name)
	}
	return nil
}
