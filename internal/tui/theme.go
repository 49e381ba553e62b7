package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/DoyleJ11/vote-reveal/internal/view"
)

// Theme uses ANSI 256-color codes, close to the web display's palette.
type Theme struct {
	Text        lipgloss.Color
	Faint       lipgloss.Color
	Timestamp   lipgloss.Color
	Candidate   lipgloss.Color
	Glow        lipgloss.Color
	Border      lipgloss.Color
	Success     lipgloss.Color
	Error       lipgloss.Color
	ButtonStart string
	ButtonEnd   string
}

var DefaultTheme = Theme{
	Text:        lipgloss.Color("255"),
	Faint:       lipgloss.Color("245"),
	Timestamp:   lipgloss.Color("220"),
	Candidate:   lipgloss.Color("231"),
	Glow:        lipgloss.Color("201"),
	Border:      lipgloss.Color("238"),
	Success:     lipgloss.Color("42"),
	Error:       lipgloss.Color("203"),
	ButtonStart: "#6a11cb",
	ButtonEnd:   "#2575fc",
}

// ThemeFor overrides the default palette with the display's accent colors.
// lipgloss degrades hex values on terminals without true color.
func ThemeFor(c view.Colors) Theme {
	t := DefaultTheme
	if c.Accent != "" {
		t.Error = lipgloss.Color(c.Accent)
	}
	if c.Glow != "" {
		t.Glow = lipgloss.Color(c.Glow)
	}
	if c.Timestamp != "" {
		t.Timestamp = lipgloss.Color(c.Timestamp)
	}
	if c.ButtonStart != "" {
		t.ButtonStart = c.ButtonStart
	}
	if c.ButtonEnd != "" {
		t.ButtonEnd = c.ButtonEnd
	}
	return t
}
