// Package update holds UI update logic for the TUI.
package update

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/tesso57/gazette/internal/application/usecase"
	"github.com/tesso57/gazette/internal/domain/news"
	"github.com/tesso57/gazette/internal/infrastructure/theme"
	"github.com/tesso57/gazette/internal/presentation/tui/intent"
	"github.com/tesso57/gazette/internal/presentation/tui/palette"
	"github.com/tesso57/gazette/internal/presentation/tui/presenter"
	"github.com/tesso57/gazette/internal/presentation/tui/state"
)

// Deps groups external dependencies for updates.
type Deps struct {
	Aggregate   usecase.AggregateService
	Content     usecase.ContentService
	Bookmarks   *usecase.BookmarkService
	LoadTheme   func(name string) (theme.Theme, bool)
	SaveTheme   func(name string) error
	ThemeNames  func() []string
	OpenBrowser func(url string) error
	Logger      *log.Logger
}

// SectionFetchedMsg is emitted when one section fetch reports back.
// Seq carries the sequence number the fetch was issued under; results
// from superseded fetches are discarded.
type SectionFetchedMsg struct {
	Name    string
	Seq     int
	Outcome news.FetchOutcome
}

// StoryContentLoadedMsg is emitted after loading one story body.
type StoryContentLoadedMsg struct {
	StoryID string
	Content string
	Err     error
}

// ThemeChangedMsg carries a freshly reloaded theme. The theme watcher
// posts it from outside the program loop.
type ThemeChangedMsg struct {
	Theme theme.Theme
}

// FetchSectionCmd creates a command that fetches one section and tags
// the result with the issuing sequence number.
func FetchSectionCmd(svc usecase.AggregateService, name string, seq int) tea.Cmd {
	return func() tea.Msg {
		outcome := svc.FetchSection(context.Background(), name)
		return SectionFetchedMsg{Name: name, Seq: seq, Outcome: outcome}
	}
}

// LoadStoryCmd creates a command that loads one story body.
func LoadStoryCmd(svc usecase.ContentService, story news.Story) tea.Cmd {
	return func() tea.Msg {
		content, err := svc.Load(context.Background(), story)
		return StoryContentLoadedMsg{StoryID: story.ID, Content: content, Err: err}
	}
}

// RefreshSections issues fetches for every physical section behind the
// selection, bumping each section's sequence number so in-flight
// results from older rounds are discarded on arrival.
func RefreshSections(s *state.ModelState, deps Deps, selection []string) tea.Cmd {
	physical := deps.Aggregate.Expand(selection)
	if len(physical) == 0 {
		return nil
	}

	cmds := make([]tea.Cmd, 0, len(physical)+1)
	for _, name := range physical {
		s.Seq[name]++
		s.Status[name] = state.SectionStatus{Phase: state.PhaseLoading}
		presenter.SetSectionMarker(&s.SectionList, name, markerFor(s.Status[name]))
		cmds = append(cmds, FetchSectionCmd(deps.Aggregate, name, s.Seq[name]))
	}
	s.Loading = true
	cmds = append(cmds, s.Spinner.Tick)
	return tea.Batch(cmds...)
}

// HandleSectionFetchedMsg applies one fetch result, recomposes any meta
// sections whose constituents have all settled, and refreshes the
// headline list when the visible section changed.
func HandleSectionFetchedMsg(s *state.ModelState, msg SectionFetchedMsg, deps Deps) {
	if msg.Seq != s.Seq[msg.Name] {
		return
	}
	s.Applied[msg.Name] = msg.Seq

	if msg.Outcome.Ok() {
		s.Stories[msg.Name] = msg.Outcome.Stories
		s.Status[msg.Name] = state.SectionStatus{Phase: state.PhaseOK}
	} else {
		// Keep the last good stories; only the status changes.
		s.Status[msg.Name] = state.SectionStatus{Phase: state.PhaseFailed, Kind: msg.Outcome.Err.Kind}
		s.StatusMessage = fmt.Sprintf("%s: %s", msg.Name, msg.Outcome.Err.Kind)
		if deps.Logger != nil {
			deps.Logger.Warn("section fetch failed", "section", msg.Name, "kind", msg.Outcome.Err.Kind.String(), "err", msg.Outcome.Err.Err)
		}
	}
	presenter.SetSectionMarker(&s.SectionList, msg.Name, markerFor(s.Status[msg.Name]))

	changed := map[string]bool{msg.Name: true}
	for _, meta := range recomposeMetas(s, deps, msg.Name) {
		changed[meta] = true
	}

	s.Loading = s.InFlight() > 0
	if changed[s.CurrentSection] {
		applyCurrentHeadlines(s, deps)
	}
}

// recomposeMetas recomputes every meta section that contains the
// changed section and has no constituent fetch still in flight.
// Composition is deferred while any constituent is pending so a meta
// never shows a half-refreshed union.
func recomposeMetas(s *state.ModelState, deps Deps, changedSection string) []string {
	var recomposed []string
	for _, name := range s.Sections {
		constituents, ok := deps.Aggregate.Constituents(name)
		if !ok || !contains(constituents, changedSection) {
			continue
		}
		if anyInFlight(s, constituents) {
			continue
		}

		outcomes := make(map[string]news.FetchOutcome, len(constituents))
		for _, c := range constituents {
			switch s.Status[c].Phase {
			case state.PhaseOK:
				outcomes[c] = news.FetchOutcome{Stories: s.Stories[c]}
			case state.PhaseFailed:
				outcomes[c] = news.FetchOutcome{Err: &news.FetchError{Kind: s.Status[c].Kind, Section: c}}
			}
		}
		stories, degraded := news.ComposeMeta(constituents, outcomes)
		s.Stories[name] = stories
		if degraded {
			s.Status[name] = state.SectionStatus{Phase: state.PhaseDegraded}
		} else {
			s.Status[name] = state.SectionStatus{Phase: state.PhaseOK}
		}
		presenter.SetSectionMarker(&s.SectionList, name, markerFor(s.Status[name]))
		recomposed = append(recomposed, name)
	}
	return recomposed
}

// HandleStoryContentLoadedMsg fills the story pane once its body
// arrives. Results for a story the user has moved away from are
// dropped.
func HandleStoryContentLoadedMsg(s *state.ModelState, msg StoryContentLoadedMsg) {
	if s.Story == nil || s.Story.ID != msg.StoryID {
		return
	}
	s.StoryLoading = false
	s.StoryMarkdown = msg.Content
	s.StoryErr = msg.Err
	RefreshStoryViewport(s)
}

// HandleThemeChangedMsg adopts an externally reloaded theme. Edits to
// themes other than the active one are ignored.
func HandleThemeChangedMsg(s *state.ModelState, msg ThemeChangedMsg) {
	if msg.Theme.Name != s.Theme.Name {
		return
	}
	s.Theme = msg.Theme
	s.ThemeDirty = true
	s.StatusMessage = fmt.Sprintf("theme reloaded: %s", msg.Theme.Name)
}

// HandleWindowSize updates layout sizing based on terminal size.
func HandleWindowSize(s *state.ModelState, msg tea.WindowSizeMsg) {
	s.Width = msg.Width
	s.Height = msg.Height

	UpdateListSizes(s)
	if s.Story != nil {
		RefreshStoryViewport(s)
	}
}

// HandleKeyMsg processes key input based on the current mode.
func HandleKeyMsg(s *state.ModelState, msg tea.KeyMsg, deps Deps) (tea.Cmd, bool) {
	if msg.String() == "ctrl+c" {
		return tea.Quit, true
	}

	switch s.Mode {
	case state.FilterMode:
		return handleFilterMode(s, msg, deps)
	case state.PaletteMode:
		return handlePaletteMode(s, msg, deps)
	case state.SettingsMode:
		return handleSettingsMode(s, msg, deps)
	case state.BookmarksMode:
		return handleBookmarksMode(s, msg, deps)
	}

	parsed := intent.FromKeyMsg(msg, s.Keys)
	if parsed.Type == intent.Quit {
		return tea.Quit, true
	}
	return handleNormalIntent(s, parsed, deps)
}

func handleNormalIntent(s *state.ModelState, in intent.Intent, deps Deps) (tea.Cmd, bool) {
	switch in.Type {
	case intent.Open:
		return handleOpen(s, deps)
	case intent.Back:
		return nil, handleBack(s)
	case intent.Refresh:
		return RefreshSections(s, deps, []string{s.CurrentSection}), true
	case intent.Bookmark:
		return nil, toggleBookmark(s, deps)
	case intent.Bookmarks:
		enterBookmarksMode(s, deps)
		return nil, true
	case intent.Filter:
		return enterFilterMode(s), true
	case intent.Palette:
		s.Mode = state.PaletteMode
		return s.Palette.Activate(), true
	case intent.Settings:
		enterSettingsMode(s, deps)
		return nil, true
	case intent.ToggleSidebar:
		toggleSidebar(s)
		return nil, true
	case intent.OpenBrowser:
		openStoryInBrowser(s, deps)
		return nil, true
	case intent.ToggleHelp:
		s.Help.ShowAll = !s.Help.ShowAll
		return nil, true
	case intent.Top:
		if s.Pane == state.StoryPane {
			s.Viewport.GotoTop()
			return nil, true
		}
		return nil, false
	case intent.Bottom:
		if s.Pane == state.StoryPane {
			s.Viewport.GotoBottom()
			return nil, true
		}
		return nil, false
	}
	return nil, false
}

// handleOpen advances one pane to the right: a section presents its
// headlines, a headline opens its story. The story pane is the end of
// the line.
func handleOpen(s *state.ModelState, deps Deps) (tea.Cmd, bool) {
	switch s.Pane {
	case state.SectionsPane:
		item, ok := selectedSectionItem(s)
		if !ok {
			return nil, true
		}
		cmd := presentSection(s, deps, item.Section)
		s.Pane = state.HeadlinesPane
		return cmd, true
	case state.HeadlinesPane:
		return openSelectedStory(s, deps), true
	default:
		return nil, true
	}
}

// handleBack retreats one pane to the left, clamped at the sections
// pane. With the sidebar hidden the headlines pane is the left edge.
func handleBack(s *state.ModelState) bool {
	switch s.Pane {
	case state.StoryPane:
		s.Pane = state.HeadlinesPane
	case state.HeadlinesPane:
		if !s.SidebarHidden {
			s.Pane = state.SectionsPane
		}
	}
	return true
}

// presentSection makes name the visible section, clearing any filter
// and fetching the section if it has never loaded.
func presentSection(s *state.ModelState, deps Deps, name string) tea.Cmd {
	if name == "" {
		return nil
	}
	s.CurrentSection = name
	s.FilterText = ""
	applyCurrentHeadlines(s, deps)
	s.StoryList.ResetSelected()

	if s.Status[name].Phase == state.PhaseIdle && !s.SectionInFlight(name) {
		return RefreshSections(s, deps, []string{name})
	}
	return nil
}

// PresentSelectedSection syncs the visible headlines with the sidebar
// cursor. The model calls it when the sidebar selection moves.
func PresentSelectedSection(s *state.ModelState, deps Deps) tea.Cmd {
	item, ok := selectedSectionItem(s)
	if !ok || item.Section == s.CurrentSection {
		return nil
	}
	return presentSection(s, deps, item.Section)
}

func openSelectedStory(s *state.ModelState, deps Deps) tea.Cmd {
	item, ok := selectedStoryItem(s)
	if !ok {
		return nil
	}
	story := storyByID(s, s.CurrentSection, item.ID)

	s.Story = &story
	s.StoryMarkdown = ""
	s.StoryErr = nil
	s.StoryLoading = true
	s.Pane = state.StoryPane

	if !s.Read[story.ID] {
		s.Read[story.ID] = true
		item.Read = true
		s.StoryList.SetItem(s.StoryList.Index(), item)
	}

	RefreshStoryViewport(s)
	return tea.Batch(s.Spinner.Tick, LoadStoryCmd(deps.Content, story))
}

// toggleBookmark flips the bookmark on the story under the cursor, or
// on the opened story when the story pane has focus.
func toggleBookmark(s *state.ModelState, deps Deps) bool {
	if deps.Bookmarks == nil {
		return true
	}

	var story news.Story
	switch {
	case s.Pane == state.StoryPane && s.Story != nil:
		story = *s.Story
	default:
		item, ok := selectedStoryItem(s)
		if !ok {
			return true
		}
		story = storyByID(s, s.CurrentSection, item.ID)
	}

	added := deps.Bookmarks.Toggle(story)
	if added {
		s.StatusMessage = "bookmarked"
	} else {
		s.StatusMessage = "bookmark removed"
	}
	if item, ok := selectedStoryItem(s); ok && item.ID == story.ID {
		item.Bookmarked = added
		s.StoryList.SetItem(s.StoryList.Index(), item)
	}
	return true
}

func enterBookmarksMode(s *state.ModelState, deps Deps) {
	if deps.Bookmarks == nil {
		return
	}
	presenter.ApplyBookmarkList(&s.BookmarkList, deps.Bookmarks.List())
	s.Mode = state.BookmarksMode
}

func enterFilterMode(s *state.ModelState) tea.Cmd {
	if s.Pane == state.StoryPane {
		s.Pane = state.HeadlinesPane
	}
	s.FilterSavedIdx = s.StoryList.Index()
	s.FilterSavedText = s.FilterText
	s.FilterInput.SetValue(s.FilterText)
	s.FilterInput.CursorEnd()
	s.FilterInput.Focus()
	s.Mode = state.FilterMode
	return textinput.Blink
}

func enterSettingsMode(s *state.ModelState, deps Deps) {
	if deps.ThemeNames == nil {
		return
	}
	s.ThemeNames = deps.ThemeNames()
	if len(s.ThemeNames) == 0 {
		return
	}
	s.ThemePrior = s.Theme.Name
	s.ThemeIndex = 0
	for i, name := range s.ThemeNames {
		if name == s.Theme.Name {
			s.ThemeIndex = i
			break
		}
	}
	s.Mode = state.SettingsMode
}

func toggleSidebar(s *state.ModelState) {
	if s.SidebarHidden {
		s.SidebarHidden = false
		if s.SidebarReturn {
			s.Pane = state.SectionsPane
			s.SidebarReturn = false
		}
	} else {
		s.SidebarHidden = true
		if s.Pane == state.SectionsPane {
			s.Pane = state.HeadlinesPane
			s.SidebarReturn = true
		}
	}
	UpdateListSizes(s)
}

// openStoryInBrowser hands the opened story's link to the OS. It only
// applies while the story pane has focus and never blocks on the
// spawned process.
func openStoryInBrowser(s *state.ModelState, deps Deps) {
	if s.Pane != state.StoryPane || s.Story == nil || deps.OpenBrowser == nil {
		return
	}
	if err := deps.OpenBrowser(s.Story.Link); err != nil {
		s.StatusMessage = fmt.Sprintf("browser: %v", err)
	}
}

func handleFilterMode(s *state.ModelState, msg tea.KeyMsg, deps Deps) (tea.Cmd, bool) {
	switch msg.String() {
	case "enter":
		s.FilterInput.Blur()
		s.Mode = state.NormalMode
		s.Pane = state.HeadlinesPane
		return nil, true
	case "esc":
		s.FilterInput.Blur()
		s.FilterText = s.FilterSavedText
		applyCurrentHeadlines(s, deps)
		s.StoryList.Select(clampTo(s.FilterSavedIdx, len(s.StoryList.Items())))
		s.Mode = state.NormalMode
		return nil, true
	}

	before := s.FilterInput.Value()
	var cmd tea.Cmd
	s.FilterInput, cmd = s.FilterInput.Update(msg)
	if s.FilterInput.Value() != before {
		s.FilterText = s.FilterInput.Value()
		applyCurrentHeadlines(s, deps)
	}
	return cmd, true
}

func handlePaletteMode(s *state.ModelState, msg tea.KeyMsg, deps Deps) (tea.Cmd, bool) {
	var cmd tea.Cmd
	var action string
	s.Palette, cmd, action = s.Palette.Update(msg)
	if !s.Palette.IsActive() {
		s.Mode = state.NormalMode
	}
	if action == "" {
		return cmd, true
	}
	actionCmd := executePaletteAction(s, deps, action)
	if actionCmd == nil {
		return cmd, true
	}
	return tea.Batch(cmd, actionCmd), true
}

func executePaletteAction(s *state.ModelState, deps Deps, action string) tea.Cmd {
	switch action {
	case palette.ActionRefresh:
		return RefreshSections(s, deps, []string{s.CurrentSection})
	case palette.ActionRefreshAll:
		return RefreshSections(s, deps, s.Sections)
	case palette.ActionBookmarks:
		enterBookmarksMode(s, deps)
	case palette.ActionThemes:
		enterSettingsMode(s, deps)
	case palette.ActionToggleSidebar:
		toggleSidebar(s)
	case palette.ActionOpenBrowser:
		openStoryInBrowser(s, deps)
	case palette.ActionHelp:
		s.Help.ShowAll = !s.Help.ShowAll
	case palette.ActionQuit:
		return tea.Quit
	}
	return nil
}

func handleSettingsMode(s *state.ModelState, msg tea.KeyMsg, deps Deps) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, s.Keys.Up) || msg.String() == "up":
		if s.ThemeIndex > 0 {
			s.ThemeIndex--
			previewTheme(s, deps)
		}
		return nil, true
	case key.Matches(msg, s.Keys.Down) || msg.String() == "down":
		if s.ThemeIndex < len(s.ThemeNames)-1 {
			s.ThemeIndex++
			previewTheme(s, deps)
		}
		return nil, true
	case key.Matches(msg, s.Keys.Open):
		name := s.ThemeNames[s.ThemeIndex]
		if deps.SaveTheme != nil {
			if err := deps.SaveTheme(name); err != nil {
				s.StatusMessage = fmt.Sprintf("saving theme: %v", err)
			} else {
				s.StatusMessage = fmt.Sprintf("theme set to %s", name)
			}
		}
		s.Mode = state.NormalMode
		return nil, true
	case key.Matches(msg, s.Keys.Back):
		if deps.LoadTheme != nil {
			restored, _ := deps.LoadTheme(s.ThemePrior)
			s.Theme = restored
			s.ThemeDirty = true
		}
		s.Mode = state.NormalMode
		return nil, true
	case key.Matches(msg, s.Keys.Quit):
		return tea.Quit, true
	}
	return nil, true
}

func previewTheme(s *state.ModelState, deps Deps) {
	if deps.LoadTheme == nil {
		return
	}
	t, _ := deps.LoadTheme(s.ThemeNames[s.ThemeIndex])
	s.Theme = t
	s.ThemeDirty = true
}

func handleBookmarksMode(s *state.ModelState, msg tea.KeyMsg, deps Deps) (tea.Cmd, bool) {
	parsed := intent.FromKeyMsg(msg, s.Keys)
	switch parsed.Type {
	case intent.Quit:
		return tea.Quit, true
	case intent.Back, intent.Bookmarks:
		s.Mode = state.NormalMode
		return nil, true
	case intent.Open:
		item, ok := selectedBookmarkItem(s)
		if !ok {
			return nil, true
		}
		story := item.Story()
		s.Story = &story
		s.StoryMarkdown = ""
		s.StoryErr = nil
		s.StoryLoading = true
		s.Read[story.ID] = true
		s.Mode = state.NormalMode
		s.Pane = state.StoryPane
		RefreshStoryViewport(s)
		return tea.Batch(s.Spinner.Tick, LoadStoryCmd(deps.Content, story)), true
	case intent.Bookmark:
		item, ok := selectedBookmarkItem(s)
		if !ok || deps.Bookmarks == nil {
			return nil, true
		}
		deps.Bookmarks.Toggle(item.Story())
		presenter.ApplyBookmarkList(&s.BookmarkList, deps.Bookmarks.List())
		applyCurrentHeadlines(s, deps)
		s.StatusMessage = "bookmark removed"
		return nil, true
	case intent.ToggleHelp:
		s.Help.ShowAll = !s.Help.ShowAll
		return nil, true
	}
	return nil, false
}

// applyCurrentHeadlines re-presents the visible section through the
// active filter, with read and bookmark flags attached.
func applyCurrentHeadlines(s *state.ModelState, deps Deps) {
	stories := presenter.FilterStories(s.Stories[s.CurrentSection], s.FilterText)
	presenter.ApplyHeadlines(&s.StoryList, stories,
		func(id string) bool { return s.Read[id] },
		func(id string) bool { return deps.Bookmarks != nil && deps.Bookmarks.Contains(id) },
	)
}

func markerFor(status state.SectionStatus) string {
	switch status.Phase {
	case state.PhaseLoading:
		return "…"
	case state.PhaseFailed:
		return "!"
	case state.PhaseDegraded:
		return "~"
	default:
		return ""
	}
}

// storyByID finds the full story behind a headline item, falling back
// to the item's own fields when the backing list has moved on.
func storyByID(s *state.ModelState, section, id string) news.Story {
	for _, story := range s.Stories[section] {
		if story.ID == id {
			return story
		}
	}
	if item, ok := selectedStoryItem(s); ok && item.ID == id {
		return item.Story()
	}
	return news.Story{ID: id, Section: section}
}

func selectedSectionItem(s *state.ModelState) (*presenter.Item, bool) {
	item, ok := s.SectionList.SelectedItem().(*presenter.Item)
	if !ok || item == nil {
		return nil, false
	}
	return item, true
}

func selectedStoryItem(s *state.ModelState) (*presenter.Item, bool) {
	item, ok := s.StoryList.SelectedItem().(*presenter.Item)
	if !ok || item == nil {
		return nil, false
	}
	return item, true
}

func selectedBookmarkItem(s *state.ModelState) (*presenter.Item, bool) {
	item, ok := s.BookmarkList.SelectedItem().(*presenter.Item)
	if !ok || item == nil {
		return nil, false
	}
	return item, true
}

func anyInFlight(s *state.ModelState, names []string) bool {
	for _, name := range names {
		if s.SectionInFlight(name) {
			return true
		}
	}
	return false
}

func contains(names []string, target string) bool {
	for _, name := range names {
		if name == target {
			return true
		}
	}
	return false
}

func clampTo(idx, length int) int {
	if idx >= length {
		idx = length - 1
	}
	if idx < 0 {
		idx = 0
	}
	return idx
}
