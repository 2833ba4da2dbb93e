// Package listview provides list item delegates for the view layer.
package listview

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// StoryItem interface for items that can be rendered by StoryDelegate.
type StoryItem interface {
	list.Item
	Title() string
	IsRead() bool
	IsBookmarked() bool
	Badge() string
}

// StoryDelegate handles rendering of headline items.
type StoryDelegate struct {
	Styles list.DefaultItemStyles
}

// NewStoryDelegate creates a new StoryDelegate themed with the accent
// color for the selected row.
func NewStoryDelegate(accent lipgloss.Color) *StoryDelegate {
	styles := withItemPadding(list.NewDefaultItemStyles())
	if accent != "" {
		styles.SelectedTitle = styles.SelectedTitle.
			Foreground(accent).
			BorderForeground(accent)
	}
	return &StoryDelegate{Styles: styles}
}

// Height returns the height of the item.
func (d *StoryDelegate) Height() int {
	return 1
}

// Spacing returns the spacing between items.
func (d *StoryDelegate) Spacing() int {
	return 0
}

// Update handles messages for the delegate.
func (d *StoryDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render renders the item.
func (d *StoryDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	i, ok := item.(StoryItem)
	if !ok {
		return
	}

	title := i.Title()
	if badge := i.Badge(); badge != "" {
		title = fmt.Sprintf("[%s] %s", badge, title)
	}
	if i.IsBookmarked() {
		title = fmt.Sprintf("[B] %s", title)
	}

	style := itemStyle(d.Styles, m, index)
	title = truncateItemText(m, style, title)

	if i.IsRead() {
		title = lipgloss.NewStyle().Faint(true).Render(title)
	}

	renderItemText(w, style, title)
}
