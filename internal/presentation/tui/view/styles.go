package view

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/tesso57/gazette/internal/infrastructure/theme"
)

// Styles carries the colors components derive from the active theme.
type Styles struct {
	Accent     lipgloss.Color
	Primary    lipgloss.Color
	Foreground lipgloss.Color
	Muted      lipgloss.Color
}

// NewStyles maps a theme onto component colors.
func NewStyles(t theme.Theme) Styles {
	return Styles{
		Accent:     lipgloss.Color(t.Accent),
		Primary:    lipgloss.Color(t.Primary),
		Foreground: lipgloss.Color(t.Foreground),
		Muted:      lipgloss.Color("240"),
	}
}
