// Package modal provides modal dialog components.
package modal

import (
	"github.com/charmbracelet/lipgloss"
)

// Kind represents the type of modal.
type Kind int

const (
	// None indicates no modal.
	None Kind = iota
	// Help shows the keybinding reference.
	Help
	// Themes shows the theme picker.
	Themes
	// Palette shows the command palette.
	Palette
)

// Props defines the properties for the modal component.
type Props struct {
	Visible     bool
	Kind        Kind
	Body        string
	Width       int
	Height      int
	BorderColor lipgloss.Color
}

// Render renders the modal centered over the full terminal area. The
// palette draws its own frame, so only its placement happens here.
func Render(p Props) string {
	if !p.Visible {
		return ""
	}

	content := p.Body
	if p.Kind != Palette {
		content = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.BorderColor).
			Padding(1, 2).
			Render(p.Body)
	}

	return lipgloss.Place(p.Width, p.Height, lipgloss.Center, lipgloss.Center, content)
}
