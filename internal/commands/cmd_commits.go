package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/lado/internal/core/review"
	"github.com/colonyops/lado/internal/core/target"
	"github.com/colonyops/lado/internal/render"
	"github.com/colonyops/lado/pkg/executil"
	"github.com/colonyops/lado/pkg/iojson"
)

type CommitsCmd struct {
	flags *Flags
	exec  executil.Executor

	// flags
	jsonOutput bool
}

// NewCommitsCmd creates a new commits command
func NewCommitsCmd(flags *Flags, exec executil.Executor) *CommitsCmd {
	return &CommitsCmd{flags: flags, exec: exec}
}

// Register adds the commits command to the application
func (cmd *CommitsCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "commits",
		Usage:     "List the commits of a pull request",
		UsageText: "lado commits [--json] #PR",
		Description: `Lists the commits of a pull request in order. The numbers shown are the
values accepted by --commit on show and files.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "json",
				Usage:       "output as JSON",
				Destination: &cmd.jsonOutput,
			},
		},
		Action: cmd.run,
	})

	return app
}

type commitsOutput struct {
	Title    string          `json:"title"`
	Commits  []review.Commit `json:"commits"`
	Warnings []string        `json:"warnings,omitempty"`
}

func (cmd *CommitsCmd) run(ctx context.Context, c *cli.Command) error {
	t, err := target.Parse(c.Args().First())
	if err != nil {
		return err
	}
	if t.Kind != target.KindChangeRequest {
		return errors.New("commits requires a pull request target such as #42")
	}

	s, err := openSession(ctx, cmd.flags, cmd.exec)
	if err != nil {
		return err
	}
	if err := s.Load(ctx, t, target.AllChanges); err != nil {
		return err
	}

	out := c.Root().Writer

	if cmd.jsonOutput {
		return iojson.New(out, c.Root().ErrWriter).Write(commitsOutput{
			Title:    s.Title(),
			Commits:  s.Commits(),
			Warnings: s.Warnings(),
		})
	}

	r := render.New(out, render.OptionsFromConfig(cmd.flags.Config, cmd.flags.UseColor(out)))
	if err := r.Header(s.Title(), s.Warnings()); err != nil {
		return err
	}
	if len(s.Commits()) == 0 {
		_, _ = fmt.Fprintln(c.Root().ErrWriter, "No commits found")
		return nil
	}
	return r.Commits(s.Commits(), s.Selector())
}
