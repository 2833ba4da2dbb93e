// Package sidebar provides the sections sidebar component.
package sidebar

import (
	"github.com/charmbracelet/lipgloss"
)

// Props defines the properties for the sidebar component.
type Props struct {
	View        string
	Width       int
	Height      int
	Title       string
	Active      bool
	AccentColor lipgloss.Color
	BorderColor lipgloss.Color
}

// Render renders the sidebar component. A zero width collapses it
// entirely so the main pane can take the full terminal.
func Render(p Props) string {
	if p.Width <= 0 {
		return ""
	}

	sidebarStyle := lipgloss.NewStyle().
		Width(p.Width).
		Height(p.Height).
		Border(lipgloss.NormalBorder(), false, true, false, false).
		BorderForeground(p.BorderColor)

	if p.Active {
		sidebarStyle = sidebarStyle.BorderForeground(p.AccentColor)
	}

	titleStyle := lipgloss.NewStyle().
		PaddingLeft(2).
		PaddingBottom(1).
		Foreground(p.AccentColor)

	return sidebarStyle.Render(lipgloss.JoinVertical(
		lipgloss.Left,
		titleStyle.Render(p.Title),
		p.View,
	))
}
