package render

import "github.com/charmbracelet/lipgloss"

type palette struct {
	Primary lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Add     lipgloss.Color
	Remove  lipgloss.Color
	Hunk    lipgloss.Color
	Comment lipgloss.Color
	Warning lipgloss.Color
}

var palettes = map[string]palette{
	"dark": {
		Primary: "#7aa2f7",
		Text:    "#c0caf5",
		Muted:   "#565f89",
		Add:     "#9ece6a",
		Remove:  "#f7768e",
		Hunk:    "#7dcfff",
		Comment: "#bb9af7",
		Warning: "#e0af68",
	},
	"light": {
		Primary: "#2e7de9",
		Text:    "#3760bf",
		Muted:   "#8990b3",
		Add:     "#587539",
		Remove:  "#f52a65",
		Hunk:    "#007197",
		Comment: "#9854f1",
		Warning: "#8c6c3e",
	},
}

type styles struct {
	Title   lipgloss.Style
	Folder  lipgloss.Style
	File    lipgloss.Style
	Muted   lipgloss.Style
	Add     lipgloss.Style
	Remove  lipgloss.Style
	Hunk    lipgloss.Style
	Author  lipgloss.Style
	Comment lipgloss.Style
	Warning lipgloss.Style
}

func newStyles(r *lipgloss.Renderer, theme string) styles {
	p, ok := palettes[theme]
	if !ok {
		p = palettes["dark"]
	}

	return styles{
		Title:   r.NewStyle().Foreground(p.Primary).Bold(true),
		Folder:  r.NewStyle().Foreground(p.Primary),
		File:    r.NewStyle().Foreground(p.Text),
		Muted:   r.NewStyle().Foreground(p.Muted),
		Add:     r.NewStyle().Foreground(p.Add),
		Remove:  r.NewStyle().Foreground(p.Remove),
		Hunk:    r.NewStyle().Foreground(p.Hunk).Faint(true),
		Author:  r.NewStyle().Foreground(p.Comment).Bold(true),
		Comment: r.NewStyle().Foreground(p.Comment),
		Warning: r.NewStyle().Foreground(p.Warning),
	}
}
