package theme

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

func TestPlainWhenNotTerminal(t *testing.T) {
	s := New(&bytes.Buffer{})

	assert.Equal(t, "Error", s.Error.Render("Error"))
	assert.Equal(t, "In Review", s.StatusStyle("In Review", "indeterminate").Render("In Review"))
	assert.Equal(t, "PROJ-1", s.Key.Render("PROJ-1"))
}

func TestStatusColors(t *testing.T) {
	r := lipgloss.NewRenderer(&bytes.Buffer{})
	r.SetColorProfile(termenv.TrueColor)
	r.SetHasDarkBackground(true)
	s := NewWithRenderer(r)

	tests := []struct {
		name     string
		category string
		want     lipgloss.TerminalColor
	}{
		{"To Do", "new", ColorBlue},
		{"In Progress", "indeterminate", ColorYellow},
		{"Code Review", "indeterminate", ColorMagenta},
		{"Done", "done", ColorGreen},
		{"Custom", "", ColorGray},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.StatusStyle(tt.name, tt.category)
			assert.Equal(t, tt.want, got.GetForeground())
			assert.NotEqual(t, tt.name, got.Render(tt.name), "expected escape codes")
			assert.Contains(t, got.Render(tt.name), tt.name)
		})
	}
}
