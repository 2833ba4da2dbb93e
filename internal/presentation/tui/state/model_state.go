// Package state holds UI state types for the TUI.
package state

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/tesso57/gazette/internal/domain/news"
	"github.com/tesso57/gazette/internal/infrastructure/theme"
	"github.com/tesso57/gazette/internal/presentation/tui/palette"
)

// ModelState holds the presentation state for the TUI.
type ModelState struct {
	Mode Mode
	Pane Pane

	SectionList  list.Model
	StoryList    list.Model
	BookmarkList list.Model
	FilterInput  textinput.Model
	Viewport     viewport.Model
	Help         help.Model
	Spinner      spinner.Model
	Palette      palette.Palette
	Keys         KeyMap

	Width         int
	Height        int
	SidebarHidden bool
	// SidebarReturn remembers that hiding the sidebar moved focus off
	// the sections pane, so showing it again can move focus back.
	SidebarReturn bool

	// Sections is the sidebar order: physical sections, then metas.
	Sections       []string
	CurrentSection string
	Stories        map[string][]news.Story
	Status         map[string]SectionStatus
	// Seq and Applied hold per-section fetch sequence numbers. A result
	// whose sequence is not the latest issued one is stale and dropped.
	Seq     map[string]int
	Applied map[string]int

	// Read holds story ids opened during this session.
	Read map[string]bool

	Story         *news.Story
	StoryMarkdown string
	StoryErr      error
	StoryLoading  bool

	FilterText      string
	FilterSavedIdx  int
	FilterSavedText string

	Theme      theme.Theme
	ThemeDirty bool
	ThemeNames []string
	ThemeIndex int
	ThemePrior string

	Loading       bool
	StatusMessage string
	Err           error
}

// InFlight counts sections whose latest fetch has not reported yet.
func (s *ModelState) InFlight() int {
	n := 0
	for name, issued := range s.Seq {
		if issued > s.Applied[name] {
			n++
		}
	}
	return n
}

// SectionInFlight reports whether the latest fetch for name is pending.
func (s *ModelState) SectionInFlight(name string) bool {
	return s.Seq[name] > s.Applied[name]
}
