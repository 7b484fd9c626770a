package report

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

type styles struct {
	Header  lipgloss.Style
	Axis    lipgloss.Style
	Line    lipgloss.Style
	Label   lipgloss.Style
	Value   lipgloss.Style
	Average lipgloss.Style
	Border  lipgloss.Style
}

// newRenderer returns a renderer for w. Without color every style renders as
// plain text.
func newRenderer(w io.Writer, color bool) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(w)
	if !color {
		r.SetColorProfile(termenv.Ascii)
	}
	return r
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		Header: r.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Bold(true).
			Padding(0, 1),
		Axis: r.NewStyle().
			Foreground(lipgloss.Color("#626262")),
		Line: r.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true),
		Label: r.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true),
		Value: r.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")),
		Average: r.NewStyle().
			Foreground(lipgloss.Color("#FFEAA7")).
			Bold(true),
		Border: r.NewStyle().
			Foreground(lipgloss.Color("#626262")),
	}
}
