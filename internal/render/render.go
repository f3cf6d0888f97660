// Package render draws the file tree and display lines of a diff to a
// terminal with lipgloss.
package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/colonyops/lado/internal/core/config"
	"github.com/colonyops/lado/internal/core/diff"
	"github.com/colonyops/lado/internal/core/filetree"
	"github.com/colonyops/lado/internal/core/review"
	"github.com/colonyops/lado/internal/core/target"
)

// Options control how a Renderer draws.
type Options struct {
	Icons    config.IconStyle
	Theme    string
	TabWidth int
	Color    bool
}

// OptionsFromConfig derives Options from the ui section of cfg.
func OptionsFromConfig(cfg *config.Config, color bool) Options {
	return Options{
		Icons:    cfg.UI.Icons,
		Theme:    cfg.UI.Theme,
		TabWidth: cfg.UI.TabWidth,
		Color:    color,
	}
}

// Renderer writes styled diff output to w.
type Renderer struct {
	w        io.Writer
	lg       *lipgloss.Renderer
	st       styles
	icons    config.IconStyle
	tabs     string
	colorful bool
}

// New creates a Renderer writing to w.
func New(w io.Writer, opts Options) *Renderer {
	lg := lipgloss.NewRenderer(w)
	if opts.Color {
		lg.SetColorProfile(termenv.TrueColor)
	} else {
		lg.SetColorProfile(termenv.Ascii)
	}

	width := opts.TabWidth
	if width < 1 {
		width = 4
	}

	return &Renderer{
		w:        w,
		lg:       lg,
		st:       newStyles(lg, opts.Theme),
		icons:    opts.Icons,
		tabs:     strings.Repeat(" ", width),
		colorful: opts.Color,
	}
}

// Header writes the diff title followed by any warnings.
func (r *Renderer) Header(title string, warnings []string) error {
	if _, err := fmt.Fprintln(r.w, r.st.Title.Render(title)); err != nil {
		return err
	}
	for _, w := range warnings {
		if _, err := fmt.Fprintln(r.w, r.st.Warning.Render("! "+w)); err != nil {
			return err
		}
	}
	return nil
}

// Tree writes one row per flattened entry. stats supplies the +/- counts of
// file entries keyed by path.
func (r *Renderer) Tree(entries []filetree.FlatEntry, stats map[string]diff.ChangedFile) error {
	for _, e := range entries {
		if _, err := fmt.Fprintln(r.w, r.TreeLine(e, stats[e.Path])); err != nil {
			return err
		}
	}
	return nil
}

// TreeLine formats a single tree row.
func (r *Renderer) TreeLine(e filetree.FlatEntry, f diff.ChangedFile) string {
	var sb strings.Builder
	sb.WriteString(strings.Repeat("  ", e.Depth))

	if e.IsFolder {
		if icon := folderIcon(r.icons, e.IsExpanded); icon != "" {
			sb.WriteString(r.st.Folder.Render(icon))
			sb.WriteString(" ")
		}
		sb.WriteString(r.st.Folder.Render(e.Name + "/"))
		return sb.String()
	}

	if icon := fileIcon(r.icons, e.Path); icon != "" {
		sb.WriteString(r.st.File.Render(icon))
		sb.WriteString(" ")
	}
	sb.WriteString(r.statusStyle(e.Status).Render(statusMark(e.Status)))
	sb.WriteString(" ")
	sb.WriteString(r.st.File.Render(e.Name))
	sb.WriteString(" ")
	sb.WriteString(r.st.Add.Render("+" + strconv.Itoa(f.Additions)))
	sb.WriteString(" ")
	sb.WriteString(r.st.Remove.Render("-" + strconv.Itoa(f.Deletions)))
	return sb.String()
}

func statusMark(s diff.FileStatus) string {
	switch s {
	case diff.StatusAdded:
		return "A"
	case diff.StatusDeleted:
		return "D"
	case diff.StatusRenamed:
		return "R"
	default:
		return "M"
	}
}

func (r *Renderer) statusStyle(s diff.FileStatus) lipgloss.Style {
	switch s {
	case diff.StatusAdded:
		return r.st.Add
	case diff.StatusDeleted:
		return r.st.Remove
	default:
		return r.st.Muted
	}
}

// File writes a file header, its file-level comments, and its display lines.
func (r *Renderer) File(f diff.ChangedFile, fileComments []review.Comment, lines []diff.DisplayLine) error {
	header := fmt.Sprintf("%s %s %s %s",
		r.statusStyle(f.Status).Render(statusMark(f.Status)),
		r.st.Title.Render(f.Path),
		r.st.Add.Render("+"+strconv.Itoa(f.Additions)),
		r.st.Remove.Render("-"+strconv.Itoa(f.Deletions)),
	)
	if _, err := fmt.Fprintln(r.w, header); err != nil {
		return err
	}

	for _, c := range fileComments {
		if _, err := fmt.Fprintln(r.w, r.commentLine(c.Author, c.Body, c.IsReply())); err != nil {
			return err
		}
	}

	for _, l := range lines {
		if _, err := fmt.Fprintln(r.w, r.DisplayLine(l)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(r.w)
	return err
}

// DisplayLine formats one display line with a two-column line number gutter.
func (r *Renderer) DisplayLine(l diff.DisplayLine) string {
	switch l.Type {
	case diff.LineTypeHunk:
		return r.st.Hunk.Render(l.Content)
	case diff.LineTypeComment:
		if l.Comment == nil {
			return r.commentLine("", l.Content, false)
		}
		return r.commentLine(l.Comment.Author, l.Comment.Body, l.Comment.IsReply)
	}

	gutter := r.st.Muted.Render(lineNum(l.OldLineNum) + " " + lineNum(l.NewLineNum) + " │")

	marker, style := " ", r.st.File
	switch l.Type {
	case diff.LineTypeAdd:
		marker, style = "+", r.st.Add
	case diff.LineTypeRemove:
		marker, style = "-", r.st.Remove
	}

	return gutter + style.Render(marker) + r.code(l, style)
}

// code renders highlighted spans when colors are on and spans exist, falling
// back to the plain line content.
func (r *Renderer) code(l diff.DisplayLine, fallback lipgloss.Style) string {
	if !r.colorful || len(l.Spans) == 0 {
		return fallback.Render(r.expandTabs(l.Content))
	}

	var sb strings.Builder
	for _, s := range l.Spans {
		sb.WriteString(r.lg.NewStyle().Foreground(lipgloss.Color(s.Color)).Render(r.expandTabs(s.Text)))
	}
	return sb.String()
}

func (r *Renderer) commentLine(author, body string, reply bool) string {
	prefix := "      ┃ "
	if reply {
		prefix = "      ┃   ↳ "
	}

	var sb strings.Builder
	for i, line := range strings.Split(body, "\n") {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(r.st.Comment.Render(prefix))
		if i == 0 && author != "" {
			sb.WriteString(r.st.Author.Render(author))
			sb.WriteString(r.st.Comment.Render(": "))
		}
		sb.WriteString(r.st.Comment.Render(r.expandTabs(line)))
	}
	return sb.String()
}

// Commits lists the commits of a change request, marking the selected one.
func (r *Renderer) Commits(commits []review.Commit, sel target.Selector) error {
	idx, single := sel.Index()

	mark := func(on bool) string {
		if on {
			return r.st.Title.Render(">")
		}
		return " "
	}

	if _, err := fmt.Fprintf(r.w, "%s %s\n", mark(!single), r.st.File.Render("all changes")); err != nil {
		return err
	}
	for i, c := range commits {
		_, err := fmt.Fprintf(r.w, "%s %s %s %s\n",
			mark(single && i == idx),
			r.st.Hunk.Render(c.ShortSHA),
			r.st.File.Render(c.Summary()),
			r.st.Muted.Render(c.Author),
		)
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", r.tabs)
}

func lineNum(n int) string {
	if n <= 0 {
		return "    "
	}
	return fmt.Sprintf("%4d", n)
}
