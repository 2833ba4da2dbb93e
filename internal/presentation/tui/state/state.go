// Package state holds UI state types for the TUI.
package state

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/tesso57/gazette/internal/application/settings"
	"github.com/tesso57/gazette/internal/domain/news"
)

// Mode represents the current input mode.
type Mode int

const (
	NormalMode Mode = iota
	FilterMode
	PaletteMode
	SettingsMode
	BookmarksMode
)

// Pane identifies the focused pane in normal mode.
type Pane int

const (
	SectionsPane Pane = iota
	HeadlinesPane
	StoryPane
)

// FetchPhase tracks where a section is in its fetch lifecycle.
type FetchPhase int

const (
	PhaseIdle FetchPhase = iota
	PhaseLoading
	PhaseOK
	PhaseDegraded
	PhaseFailed
)

// SectionStatus is the per-section fetch status shown in the sidebar.
type SectionStatus struct {
	Phase FetchPhase
	Kind  news.ErrKind
}

// KeyMap defines the keybindings for the application.
type KeyMap struct {
	Up            key.Binding
	Down          key.Binding
	Left          key.Binding
	Right         key.Binding
	UpPage        key.Binding
	DownPage      key.Binding
	Top           key.Binding
	Bottom        key.Binding
	Open          key.Binding
	Back          key.Binding
	Quit          key.Binding
	Refresh       key.Binding
	Bookmark      key.Binding
	Bookmarks     key.Binding
	Filter        key.Binding
	Palette       key.Binding
	Settings      key.Binding
	ToggleSidebar key.Binding
	OpenBrowser   key.Binding
	Help          key.Binding
}

// ShortHelp returns a subset of keybindings for the help view.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit, k.Refresh, k.Filter, k.Bookmark}
}

// FullHelp returns all keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Top, k.Bottom, k.UpPage, k.DownPage},
		{k.Open, k.Back, k.Quit},
		{k.Refresh, k.Bookmark, k.Bookmarks, k.Filter},
		{k.Palette, k.Settings, k.ToggleSidebar, k.OpenBrowser},
	}
}

// NewKeyMap creates a new KeyMap from the configuration.
func NewKeyMap(cfg settings.KeyMapConfig) KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys(splitKeys(cfg.Up)...),
			key.WithHelp(cfg.Up, "up"),
		),
		Down: key.NewBinding(
			key.WithKeys(splitKeys(cfg.Down)...),
			key.WithHelp(cfg.Down, "down"),
		),
		Left: key.NewBinding(
			key.WithKeys(splitKeys(cfg.Left)...),
			key.WithHelp(cfg.Left, "pane left"),
		),
		Right: key.NewBinding(
			key.WithKeys(splitKeys(cfg.Right)...),
			key.WithHelp(cfg.Right, "pane right"),
		),
		UpPage: key.NewBinding(
			key.WithKeys(splitKeys(cfg.UpPage)...),
			key.WithHelp(cfg.UpPage, "pgup"),
		),
		DownPage: key.NewBinding(
			key.WithKeys(splitKeys(cfg.DownPage)...),
			key.WithHelp(cfg.DownPage, "pgdn"),
		),
		Top: key.NewBinding(
			key.WithKeys(splitKeys(cfg.Top)...),
			key.WithHelp(cfg.Top, "top"),
		),
		Bottom: key.NewBinding(
			key.WithKeys(splitKeys(cfg.Bottom)...),
			key.WithHelp(cfg.Bottom, "bottom"),
		),
		Open: key.NewBinding(
			key.WithKeys(splitKeys(cfg.Open)...),
			key.WithHelp(cfg.Open, "open"),
		),
		Back: key.NewBinding(
			key.WithKeys(splitKeys(cfg.Back)...),
			key.WithHelp(cfg.Back, "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys(splitKeys(cfg.Quit)...),
			key.WithHelp(cfg.Quit, "quit"),
		),
		Refresh: key.NewBinding(
			key.WithKeys(splitKeys(cfg.Refresh)...),
			key.WithHelp(cfg.Refresh, "refresh"),
		),
		Bookmark: key.NewBinding(
			key.WithKeys(splitKeys(cfg.Bookmark)...),
			key.WithHelp(cfg.Bookmark, "bookmark"),
		),
		Bookmarks: key.NewBinding(
			key.WithKeys(splitKeys(cfg.Bookmarks)...),
			key.WithHelp(cfg.Bookmarks, "bookmarks"),
		),
		Filter: key.NewBinding(
			key.WithKeys(splitKeys(cfg.Filter)...),
			key.WithHelp(cfg.Filter, "filter"),
		),
		Palette: key.NewBinding(
			key.WithKeys(splitKeys(cfg.Palette)...),
			key.WithHelp(cfg.Palette, "palette"),
		),
		Settings: key.NewBinding(
			key.WithKeys(splitKeys(cfg.Settings)...),
			key.WithHelp(cfg.Settings, "themes"),
		),
		ToggleSidebar: key.NewBinding(
			key.WithKeys(splitKeys(cfg.ToggleSidebar)...),
			key.WithHelp(cfg.ToggleSidebar, "sections pane"),
		),
		OpenBrowser: key.NewBinding(
			key.WithKeys(splitKeys(cfg.OpenBrowser)...),
			key.WithHelp(cfg.OpenBrowser, "browser"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
	}
}

func splitKeys(keys string) []string {
	parts := strings.Split(keys, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		keyName := strings.TrimSpace(part)
		if keyName == "" {
			continue
		}
		out = append(out, keyName)
		switch keyName {
		case "pgdn":
			out = append(out, "pgdown")
		case "pgdown":
			out = append(out, "pgdn")
		}
	}
	return out
}
