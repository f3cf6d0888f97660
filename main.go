package main

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/lado/internal/commands"
	"github.com/colonyops/lado/internal/core/config"
	"github.com/colonyops/lado/internal/core/logging"
	"github.com/colonyops/lado/internal/printer"
	"github.com/colonyops/lado/pkg/executil"
	"github.com/colonyops/lado/pkg/logutils"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	// When installed via `go install module@version`, build() reads
	// runtime/debug.BuildInfo instead.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	v, c, d := version, commit, date

	if v == "dev" {
		if info, ok := debug.ReadBuildInfo(); ok {
			if mv := info.Main.Version; mv != "" && mv != "(devel)" {
				v = mv
			}
			for _, s := range info.Settings {
				switch s.Key {
				case "vcs.revision":
					c = s.Value
				case "vcs.time":
					d = s.Value
				}
			}
		}
	}

	short := c
	if len(c) > 7 {
		short = c[:7]
	}

	return fmt.Sprintf("%s (%s) %s", v, short, d)
}

func main() {
	ctx := context.Background()

	var logCloser func()

	flags := &commands.Flags{}
	exec := &executil.RealExecutor{}

	app := &cli.Command{
		Name:      "lado",
		Usage:     "Review git diffs and pull requests in the terminal",
		UsageText: "lado [global options] [branch | ref | #PR]",
		Description: `Lado shows what changed between two snapshots of a repository.

With no argument it compares HEAD against the default branch (main or master).
A branch or ref compares HEAD against it, and #N shows pull request N with its
review comments placed under the lines they refer to.`,
		Version:               build(),
		EnableShellCompletion: true,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("LADO_LOG_LEVEL"),
				Value:       "warn",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (logs go to stderr when unset)",
				Sources:     cli.EnvVars("LADO_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("LADO_CONFIG"),
				Value:       commands.DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "repo",
				Aliases:     []string{"C"},
				Usage:       "path inside the git repository",
				Sources:     cli.EnvVars("LADO_REPO"),
				Value:       ".",
				Destination: &flags.RepoDir,
			},
			&cli.StringFlag{
				Name:        "color",
				Usage:       "colorize output (auto, always, never)",
				Sources:     cli.EnvVars("LADO_COLOR"),
				Value:       commands.ColorAuto,
				Destination: &flags.Color,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			logger, closer, err := logutils.New(flags.LogLevel, flags.LogFile)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger.Hook(logging.ContextHook{})
			logCloser = closer

			cfg, err := config.Load(flags.ConfigPath)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}
			flags.Config = cfg

			p := printer.New(c.Root().ErrWriter, flags.UseColor(c.Root().ErrWriter))
			return printer.WithPrinter(ctx, p), nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if logCloser != nil {
				logCloser()
			}
			return nil
		},
	}

	showCmd := commands.NewShowCmd(flags, exec)

	app = showCmd.Register(app)
	app = commands.NewFilesCmd(flags, exec).Register(app)
	app = commands.NewCommitsCmd(flags, exec).Register(app)
	app = commands.NewConfigCmd(flags).Register(app)

	// Register show flags on root command
	app.Flags = append(app.Flags, showCmd.Flags()...)

	// Show the diff when no subcommand is provided
	app.Action = showCmd.Run

	exitCode := 0
	runErr := app.Run(ctx, os.Args)
	if runErr != nil {
		fmt.Fprintln(os.Stderr, runErr.Error())
		exitCode = 1
	}

	os.Exit(exitCode)
}
