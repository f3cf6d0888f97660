package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/lado/internal/core/diff"
	"github.com/colonyops/lado/internal/core/review"
	"github.com/colonyops/lado/internal/core/session"
	"github.com/colonyops/lado/internal/render"
	"github.com/colonyops/lado/pkg/executil"
	"github.com/colonyops/lado/pkg/iojson"
)

type ShowCmd struct {
	flags *Flags
	exec  executil.Executor

	// flags
	commit     int
	file       string
	jsonOutput bool
}

// NewShowCmd creates a new show command
func NewShowCmd(flags *Flags, exec executil.Executor) *ShowCmd {
	return &ShowCmd{flags: flags, exec: exec}
}

// Flags returns the show flags so the root command can run show by default.
func (cmd *ShowCmd) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.IntFlag{
			Name:        "commit",
			Usage:       "show only the Nth commit of a pull request (1-based, 0 for all changes)",
			Destination: &cmd.commit,
		},
		&cli.StringFlag{
			Name:        "file",
			Usage:       "show only this path",
			Destination: &cmd.file,
		},
		&cli.BoolFlag{
			Name:        "json",
			Usage:       "output display lines as JSON",
			Destination: &cmd.jsonOutput,
		},
	}
}

// Register adds the show command to the application
func (cmd *ShowCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "show",
		Usage:     "Show the annotated diff of a target",
		UsageText: "lado show [options] [branch | ref | #PR]",
		Description: `Compares HEAD against the default branch, a branch or ref, or shows a pull request.

Pull request review comments are placed below the lines they refer to.
Use --commit to step through a pull request one commit at a time.`,
		Flags:  cmd.Flags(),
		Action: cmd.Run,
	})

	return app
}

type fileOutput struct {
	diff.ChangedFile
	FileComments []review.Comment  `json:"file_comments,omitempty"`
	Lines        []diff.DisplayLine `json:"lines"`
}

type showOutput struct {
	Title    string       `json:"title"`
	Base     string       `json:"base"`
	Head     string       `json:"head"`
	Warnings []string     `json:"warnings,omitempty"`
	Files    []fileOutput `json:"files"`
}

// Run loads the target named by the first argument and prints every file.
func (cmd *ShowCmd) Run(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() > 1 {
		return fmt.Errorf("expected at most one target, got %d", c.Args().Len())
	}

	s, err := openSession(ctx, cmd.flags, cmd.exec)
	if err != nil {
		return err
	}
	if err := loadTarget(ctx, s, c.Args().First(), cmd.commit); err != nil {
		return err
	}

	files, err := cmd.collect(ctx, s)
	if err != nil {
		return err
	}

	out := c.Root().Writer

	if cmd.jsonOutput {
		res := s.Resolution()
		return iojson.New(out, c.Root().ErrWriter).Write(showOutput{
			Title:    s.Title(),
			Base:     res.Base,
			Head:     res.Head,
			Warnings: s.Warnings(),
			Files:    files,
		})
	}

	r := render.New(out, render.OptionsFromConfig(cmd.flags.Config, cmd.flags.UseColor(out)))
	if err := r.Header(s.Title(), s.Warnings()); err != nil {
		return err
	}
	if len(files) == 0 {
		_, _ = fmt.Fprintln(c.Root().ErrWriter, "No changes")
		return nil
	}
	for _, f := range files {
		if err := r.File(f.ChangedFile, f.FileComments, f.Lines); err != nil {
			return err
		}
	}
	return nil
}

func (cmd *ShowCmd) collect(ctx context.Context, s *session.Session) ([]fileOutput, error) {
	if cmd.file != "" {
		f, ok := findFile(s.Files(), cmd.file)
		if !ok {
			return nil, fmt.Errorf("%w: %s", session.ErrUnknownFile, cmd.file)
		}
		lines, err := s.Lines(f.Path)
		if err != nil {
			return nil, err
		}
		return []fileOutput{{ChangedFile: f, FileComments: s.FileLevelComments(f.Path), Lines: lines}}, nil
	}

	all, err := s.AllLines(ctx)
	if err != nil {
		return nil, err
	}

	files := make([]fileOutput, len(all))
	for i, fl := range all {
		files[i] = fileOutput{
			ChangedFile:  fl.File,
			FileComments: s.FileLevelComments(fl.File.Path),
			Lines:        fl.Lines,
		}
	}
	return files, nil
}

func findFile(files []diff.ChangedFile, path string) (diff.ChangedFile, bool) {
	for _, f := range files {
		if f.Path == path {
			return f, true
		}
	}
	return diff.ChangedFile{}, false
}
