// Package printer writes human-facing status messages for commands.
package printer

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

type ctxKey struct{}

// Printer writes prefixed, styled status lines.
type Printer struct {
	w       io.Writer
	success lipgloss.Style
	info    lipgloss.Style
	err     lipgloss.Style
}

// New creates a Printer. color disables styling when false.
func New(w io.Writer, color bool) *Printer {
	r := lipgloss.NewRenderer(w)
	if color {
		r.SetColorProfile(termenv.TrueColor)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}

	return &Printer{
		w:       w,
		success: r.NewStyle().Foreground(lipgloss.Color("#9ece6a")).Bold(true),
		info:    r.NewStyle().Foreground(lipgloss.Color("#7aa2f7")).Bold(true),
		err:     r.NewStyle().Foreground(lipgloss.Color("#f7768e")).Bold(true),
	}
}

// WithPrinter stores p in ctx.
func WithPrinter(ctx context.Context, p *Printer) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// Ctx returns the Printer stored in ctx, or an uncolored stderr printer.
func Ctx(ctx context.Context) *Printer {
	if p, ok := ctx.Value(ctxKey{}).(*Printer); ok {
		return p
	}
	return New(os.Stderr, false)
}

func (p *Printer) Successf(format string, args ...any) {
	p.line(p.success.Render("✔"), format, args...)
}

func (p *Printer) Infof(format string, args ...any) {
	p.line(p.info.Render("•"), format, args...)
}

func (p *Printer) Errorf(format string, args ...any) {
	p.line(p.err.Render("✘"), format, args...)
}

// Printf writes an unprefixed line.
func (p *Printer) Printf(format string, args ...any) {
	_, _ = fmt.Fprintf(p.w, format+"\n", args...)
}

func (p *Printer) line(prefix, format string, args ...any) {
	_, _ = fmt.Fprintf(p.w, "%s %s\n", prefix, fmt.Sprintf(format, args...))
}
