// Package mainview provides the main content area component.
package mainview

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Props defines the properties for the main view component.
type Props struct {
	Width  int
	Height int
	Header string
	Filter string
	Body   string
}

// Render renders the main view component. Header and filter rows, when
// present, stack above the body.
func Render(p Props) string {
	mainStyle := lipgloss.NewStyle().
		Width(p.Width).
		Height(p.Height).
		PaddingLeft(1)

	rows := make([]string, 0, 3)
	if p.Header != "" {
		rows = append(rows, p.Header)
	}
	if p.Filter != "" {
		rows = append(rows, p.Filter)
	}
	if p.Body != "" {
		rows = append(rows, p.Body)
	}
	return mainStyle.Render(strings.Join(rows, "\n"))
}
