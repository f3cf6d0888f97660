package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/hay-kot/criterio"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/lado/internal/core/config"
	"github.com/colonyops/lado/internal/printer"
	"github.com/colonyops/lado/pkg/iojson"
)

type ConfigCmd struct {
	flags  *Flags
	format string
	force  bool
}

// NewConfigCmd creates a new config command.
func NewConfigCmd(flags *Flags) *ConfigCmd {
	return &ConfigCmd{flags: flags}
}

// Register adds the config commands to the application.
func (cmd *ConfigCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "config",
		Usage: "Configuration management commands",
		Commands: []*cli.Command{
			{
				Name:        "validate",
				Usage:       "Validate configuration file",
				UsageText:   "lado config validate [options]",
				Description: "Validates the configuration file, checking glob patterns, the syntax theme, and executable paths.",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "format",
						Usage:       "output format (text, json)",
						Value:       "text",
						Destination: &cmd.format,
					},
				},
				Action: cmd.validate,
			},
			{
				Name:        "init",
				Usage:       "Write the default configuration file",
				UsageText:   "lado config init [--force]",
				Description: "Writes the default configuration to the config path. Refuses to overwrite an existing file unless --force is set.",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:        "force",
						Usage:       "overwrite an existing config file",
						Destination: &cmd.force,
					},
				},
				Action: cmd.init,
			},
		},
	})

	return app
}

// validationIssue is one failed check.
type validationIssue struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

func (cmd *ConfigCmd) validate(ctx context.Context, c *cli.Command) error {
	issues := validationIssues(cmd.flags.Config.ValidateDeep(cmd.flags.ConfigPath))
	warnings := cmd.flags.Config.Warnings()

	if cmd.format == "json" {
		out := struct {
			Valid    bool                       `json:"valid"`
			Errors   []validationIssue          `json:"errors,omitempty"`
			Warnings []config.ValidationWarning `json:"warnings,omitempty"`
		}{
			Valid:    len(issues) == 0,
			Errors:   issues,
			Warnings: warnings,
		}
		if err := iojson.New(c.Root().Writer, c.Root().ErrWriter).Write(out); err != nil {
			return err
		}
		if len(issues) > 0 {
			return cli.Exit("", 1)
		}
		return nil
	}

	p := printer.Ctx(ctx)

	for _, warn := range warnings {
		p.Infof("%s: %s", warn.Category, warn.Message)
		if warn.Item != "" {
			p.Printf("  Item: %s", warn.Item)
		}
	}

	for _, issue := range issues {
		if issue.Field != "" {
			p.Errorf("%s: %s", issue.Field, issue.Message)
			continue
		}
		p.Errorf("%s", issue.Message)
	}

	p.Printf("")
	if len(issues) == 0 {
		p.Successf("Configuration is valid")
		return nil
	}

	p.Errorf("%d error(s) found", len(issues))
	return cli.Exit("", 1)
}

// validationIssues flattens a validation error into per-field issues.
func validationIssues(err error) []validationIssue {
	if err == nil {
		return nil
	}

	var fieldErrs criterio.FieldErrors
	if !errors.As(err, &fieldErrs) {
		return []validationIssue{{Message: err.Error()}}
	}

	issues := make([]validationIssue, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		issues = append(issues, validationIssue{Field: fe.Field, Message: fe.Err.Error()})
	}
	return issues
}

func (cmd *ConfigCmd) init(ctx context.Context, c *cli.Command) error {
	path := cmd.flags.ConfigPath

	if _, err := os.Stat(path); err == nil && !cmd.force {
		return fmt.Errorf("%s already exists, use --force to overwrite", path)
	}

	cfg := config.DefaultConfig()
	if err := cfg.Save(path); err != nil {
		return err
	}

	printer.Ctx(ctx).Successf("Wrote %s", path)
	return nil
}
