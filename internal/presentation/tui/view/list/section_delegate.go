package listview

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// SectionItem interface for items that can be rendered by
// SectionDelegate.
type SectionItem interface {
	list.Item
	Title() string
	IsMeta() bool
	StatusMarker() string
}

// SectionDelegate handles rendering of sidebar section items. Meta
// sections render italic to set them apart from physical sections.
type SectionDelegate struct {
	Styles list.DefaultItemStyles
	Accent lipgloss.Color
}

// NewSectionDelegate creates a new SectionDelegate.
func NewSectionDelegate(accent lipgloss.Color) *SectionDelegate {
	styles := list.NewDefaultItemStyles()
	if accent != "" {
		styles.SelectedTitle = styles.SelectedTitle.
			Foreground(accent).
			BorderForeground(accent)
	}
	return &SectionDelegate{Styles: styles, Accent: accent}
}

// Height returns the height of the item.
func (d *SectionDelegate) Height() int {
	return 1
}

// Spacing returns the spacing between items.
func (d *SectionDelegate) Spacing() int {
	return 0
}

// Update handles messages for the delegate.
func (d *SectionDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render renders the item.
func (d *SectionDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	i, ok := item.(SectionItem)
	if !ok {
		return
	}

	title := i.Title()
	if marker := i.StatusMarker(); marker != "" {
		title = fmt.Sprintf("%s %s", title, marker)
	}

	style := itemStyle(d.Styles, m, index)
	if i.IsMeta() {
		style = style.Italic(true)
	}
	title = truncateItemText(m, style, title)

	renderItemText(w, style, title)
}
