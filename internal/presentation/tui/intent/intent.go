// Package intent parses user input into UI intents.
package intent

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/tesso57/gazette/internal/presentation/tui/state"
)

// Type represents a user intent.
type Type int

const (
	None Type = iota
	Quit
	ToggleHelp
	Open
	Back
	Refresh
	Bookmark
	Bookmarks
	Filter
	Palette
	Settings
	ToggleSidebar
	OpenBrowser
	Top
	Bottom
)

// Intent represents a parsed user intent.
type Intent struct {
	Type Type
}

// FromKeyMsg maps a key message to an intent.
func FromKeyMsg(msg tea.KeyMsg, keys state.KeyMap) Intent {
	switch {
	case key.Matches(msg, keys.Quit):
		return Intent{Type: Quit}
	case key.Matches(msg, keys.Help):
		return Intent{Type: ToggleHelp}
	case key.Matches(msg, keys.Right) || key.Matches(msg, keys.Open):
		return Intent{Type: Open}
	case key.Matches(msg, keys.Left) || key.Matches(msg, keys.Back):
		return Intent{Type: Back}
	case key.Matches(msg, keys.Refresh):
		return Intent{Type: Refresh}
	case key.Matches(msg, keys.Bookmark):
		return Intent{Type: Bookmark}
	case key.Matches(msg, keys.Bookmarks):
		return Intent{Type: Bookmarks}
	case key.Matches(msg, keys.Filter):
		return Intent{Type: Filter}
	case key.Matches(msg, keys.Palette):
		return Intent{Type: Palette}
	case key.Matches(msg, keys.Settings):
		return Intent{Type: Settings}
	case key.Matches(msg, keys.ToggleSidebar):
		return Intent{Type: ToggleSidebar}
	case key.Matches(msg, keys.OpenBrowser):
		return Intent{Type: OpenBrowser}
	case key.Matches(msg, keys.Top):
		return Intent{Type: Top}
	case key.Matches(msg, keys.Bottom):
		return Intent{Type: Bottom}
	default:
		return Intent{Type: None}
	}
}
