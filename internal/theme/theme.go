// Package theme styles jiractl's terminal output.
package theme

import (
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Adaptive color pairs (dark terminal value, light terminal value).
var (
	ColorBlue    = lipgloss.AdaptiveColor{Dark: "#5B9BD5", Light: "#2B6CB0"}
	ColorGreen   = lipgloss.AdaptiveColor{Dark: "#6BCB77", Light: "#2F855A"}
	ColorYellow  = lipgloss.AdaptiveColor{Dark: "#FFD93D", Light: "#B7791F"}
	ColorRed     = lipgloss.AdaptiveColor{Dark: "#FF6B6B", Light: "#C53030"}
	ColorMagenta = lipgloss.AdaptiveColor{Dark: "#CC5DE8", Light: "#805AD5"}
	ColorGray    = lipgloss.AdaptiveColor{Dark: "#868E96", Light: "#718096"}
)

// Styles renders text for one output stream. Colors are dropped when the
// stream is not a terminal, so piped output stays plain.
type Styles struct {
	renderer *lipgloss.Renderer

	// Error marks failure prefixes.
	Error lipgloss.Style
	// Key highlights issue keys.
	Key lipgloss.Style
	// Muted is used for secondary text such as timestamps and URLs.
	Muted lipgloss.Style
}

// New returns styles bound to w.
func New(w io.Writer) *Styles {
	return NewWithRenderer(lipgloss.NewRenderer(w))
}

// NewWithRenderer returns styles bound to an existing renderer.
func NewWithRenderer(r *lipgloss.Renderer) *Styles {
	return &Styles{
		renderer: r,
		Error:    r.NewStyle().Bold(true).Foreground(ColorRed),
		Key:      r.NewStyle().Bold(true).Foreground(ColorBlue),
		Muted:    r.NewStyle().Foreground(ColorGray),
	}
}

// StatusStyle returns a color-coded style for a Jira status. A name containing
// "review" wins over the category key (new, indeterminate, done).
func (s *Styles) StatusStyle(name, category string) lipgloss.Style {
	base := s.renderer.NewStyle()

	if strings.Contains(strings.ToLower(name), "review") {
		return base.Foreground(ColorMagenta)
	}

	switch strings.ToLower(category) {
	case "new":
		return base.Foreground(ColorBlue)
	case "indeterminate":
		return base.Foreground(ColorYellow)
	case "done":
		return base.Foreground(ColorGreen)
	default:
		return base.Foreground(ColorGray)
	}
}
