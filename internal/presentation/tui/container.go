// Package tui provides the main user interface model and view components.
package tui

import (
	"fmt"
	"strings"

	"github.com/tesso57/gazette/internal/presentation/tui/components/header"
	main_view "github.com/tesso57/gazette/internal/presentation/tui/components/main"
	"github.com/tesso57/gazette/internal/presentation/tui/components/modal"
	"github.com/tesso57/gazette/internal/presentation/tui/components/sidebar"
	"github.com/tesso57/gazette/internal/presentation/tui/metrics"
	"github.com/tesso57/gazette/internal/presentation/tui/presenter"
	"github.com/tesso57/gazette/internal/presentation/tui/state"
	"github.com/tesso57/gazette/internal/presentation/tui/textutil"
	"github.com/tesso57/gazette/internal/presentation/tui/view"
)

func (m *Model) buildProps() view.Props {
	return view.Props{
		Sidebar: m.buildSidebarProps(),
		Header:  m.buildHeaderProps(),
		Main:    m.buildMainProps(),
		Modal:   m.buildModalProps(),
		Footer:  m.buildFooterProps(),
	}
}

func (m *Model) buildSidebarProps() sidebar.Props {
	if m.state.SidebarHidden || m.state.Mode == state.BookmarksMode {
		return sidebar.Props{}
	}
	return sidebar.Props{
		View:        m.state.SectionList.View(),
		Width:       m.state.SectionList.Width(),
		Height:      m.state.SectionList.Height(),
		Active:      m.state.Pane == state.SectionsPane,
		Title:       "Sections",
		AccentColor: m.styles.Accent,
		BorderColor: m.styles.Primary,
	}
}

func (m *Model) buildHeaderProps() header.Props {
	item, visible := m.headerItem()
	if !visible {
		return header.Props{}
	}

	availableWidth := m.headerWidth()
	sectionLabel := item.Section
	if sectionLabel == "" {
		sectionLabel = m.state.CurrentSection
	}
	return header.Props{
		Visible: true,
		Link:    headerLine(item.Link, availableWidth),
		Section: headerLine(sectionLabel, availableWidth),
		Color:   m.styles.Muted,
	}
}

// headerItem picks the story whose link and section the header shows:
// the opened story on the story pane, otherwise the row under the
// cursor.
func (m *Model) headerItem() (presenter.Item, bool) {
	switch m.state.Mode {
	case state.BookmarksMode:
		if i, ok := m.state.BookmarkList.SelectedItem().(*presenter.Item); ok && i != nil {
			return *i, true
		}
		return presenter.Item{}, false
	case state.NormalMode, state.FilterMode:
		if m.state.Pane == state.StoryPane && m.state.Story != nil {
			return presenter.Item{Link: m.state.Story.Link, Section: m.state.Story.Section}, true
		}
		if m.state.Pane == state.HeadlinesPane {
			if i, ok := m.state.StoryList.SelectedItem().(*presenter.Item); ok && i != nil {
				return *i, true
			}
		}
	}
	return presenter.Item{}, false
}

func (m *Model) headerWidth() int {
	sidebarWidth := 0
	if !m.state.SidebarHidden && m.state.Mode != state.BookmarksMode {
		sidebarWidth = m.state.Width/3 + metrics.SidebarRightBorderWidth
	}
	return m.state.Width - sidebarWidth - metrics.HeaderWidthPadding
}

func (m *Model) buildMainProps() main_view.Props {
	var body string
	width := m.state.StoryList.Width()

	switch {
	case m.state.Mode == state.BookmarksMode:
		width = m.state.BookmarkList.Width()
		if len(m.state.BookmarkList.Items()) == 0 {
			body = "\n  No bookmarks yet. Press b on a headline to add one."
		} else {
			body = m.state.BookmarkList.View()
		}
	case m.state.Pane == state.StoryPane:
		body = m.state.Viewport.View()
	case m.state.Loading && len(m.state.StoryList.Items()) == 0:
		body = fmt.Sprintf("\n\n   %s Loading %s...", m.state.Spinner.View(), m.state.CurrentSection)
	default:
		body = m.state.StoryList.View()
	}

	if m.state.Err != nil && m.state.Pane != state.StoryPane && !m.state.Loading {
		body = fmt.Sprintf("Error: %v\n\n%s", m.state.Err, body)
	}

	headerHeight := 0
	if _, visible := m.headerItem(); visible {
		headerHeight = metrics.HeaderLines
	}

	return main_view.Props{
		Width:  width,
		Height: m.state.StoryList.Height() + headerHeight,
		Filter: m.buildFilterLine(),
		Body:   body,
	}
}

func (m *Model) buildFilterLine() string {
	switch {
	case m.state.Mode == state.FilterMode:
		return m.state.FilterInput.View()
	case m.state.FilterText != "":
		return fmt.Sprintf("/ %s (%d)", m.state.FilterText, len(m.state.StoryList.Items()))
	}
	return ""
}

func (m *Model) buildModalProps() modal.Props {
	if m.state.Mode == state.PaletteMode {
		return modal.Props{
			Visible:     true,
			Kind:        modal.Palette,
			Body:        m.state.Palette.View(),
			Width:       m.state.Width,
			Height:      m.state.Height,
			BorderColor: m.styles.Accent,
		}
	}
	if m.state.Mode == state.SettingsMode {
		return modal.Props{
			Visible:     true,
			Kind:        modal.Themes,
			Body:        buildThemesBody(m.state),
			Width:       m.state.Width,
			Height:      m.state.Height,
			BorderColor: m.styles.Accent,
		}
	}
	if m.state.Help.ShowAll {
		return modal.Props{
			Visible:     true,
			Kind:        modal.Help,
			Body:        m.state.Help.View(&m.state.Keys),
			Width:       m.state.Width,
			Height:      m.state.Height,
			BorderColor: m.styles.Primary,
		}
	}
	return modal.Props{Visible: false}
}

func (m *Model) buildFooterProps() string {
	helpText := m.state.Help.View(&m.state.Keys)
	bookmarks := 0
	if m.bookmarks != nil {
		bookmarks = len(m.bookmarks.List())
	}
	return state.FooterText(m.state.Mode, m.state.StatusLine(bookmarks), helpText)
}

func buildThemesBody(st *state.ModelState) string {
	var b strings.Builder
	b.WriteString("Theme\n\n")
	for i, name := range st.ThemeNames {
		cursor := "  "
		if i == st.ThemeIndex {
			cursor = "> "
		}
		current := ""
		if name == st.ThemePrior {
			current = " *"
		}
		fmt.Fprintf(&b, "%s%s%s\n", cursor, name, current)
	}
	b.WriteString("\n(enter to apply, esc to cancel)")
	return b.String()
}

func headerLine(text string, width int) string {
	return textutil.Truncate(textutil.SingleLine(text), width)
}
