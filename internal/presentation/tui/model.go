package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/tesso57/gazette/internal/application/settings"
	"github.com/tesso57/gazette/internal/application/usecase"
	"github.com/tesso57/gazette/internal/domain/news"
	"github.com/tesso57/gazette/internal/infrastructure/theme"
	"github.com/tesso57/gazette/internal/presentation/tui/palette"
	"github.com/tesso57/gazette/internal/presentation/tui/presenter"
	"github.com/tesso57/gazette/internal/presentation/tui/state"
	"github.com/tesso57/gazette/internal/presentation/tui/update"
	"github.com/tesso57/gazette/internal/presentation/tui/view"
	listview "github.com/tesso57/gazette/internal/presentation/tui/view/list"
)

// Model represents the main application state.
type Model struct {
	settings  settings.Settings
	aggregate usecase.AggregateService
	content   usecase.ContentService
	bookmarks *usecase.BookmarkService
	options   Options
	styles    view.Styles
	state     *state.ModelState
}

// Options carries the optional collaborators the model needs beyond
// the core services.
type Options struct {
	LoadTheme  func(name string) (theme.Theme, bool)
	SaveTheme  func(name string) error
	ThemeNames func() []string
	Logger     *log.Logger

	// Notices are configuration warnings surfaced once at startup.
	Notices []string
}

// NewModel creates a new application model.
func NewModel(cfg settings.Settings, aggregate usecase.AggregateService, content usecase.ContentService, bookmarks *usecase.BookmarkService, opts Options) *Model {
	m := &Model{
		settings:  cfg,
		aggregate: aggregate,
		content:   content,
		bookmarks: bookmarks,
		options:   opts,
		state:     newModelState(cfg, aggregate, opts),
	}
	m.styles = view.NewStyles(m.state.Theme)
	m.applyStyles()
	return m
}

// Init initializes the model and starts the first refresh of every
// configured section.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.state.Spinner.Tick,
		textinput.Blink,
		update.RefreshSections(m.state, m.deps(), m.state.Sections),
	)
}

// Update handles messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd, handled := update.HandleKeyMsg(m.state, msg, m.deps())
		if handled {
			m.refreshStyles()
			update.UpdateListSizes(m.state)
			return m, cmd
		}
	case tea.WindowSizeMsg:
		update.HandleWindowSize(m.state, msg)
	case update.SectionFetchedMsg:
		update.HandleSectionFetchedMsg(m.state, msg, m.deps())
	case update.StoryContentLoadedMsg:
		update.HandleStoryContentLoadedMsg(m.state, msg)
	case update.ThemeChangedMsg:
		update.HandleThemeChangedMsg(m.state, msg)
		m.refreshStyles()
	}

	if m.state.Loading || m.state.StoryLoading {
		m.state.Spinner, cmd = m.state.Spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	switch m.state.Mode {
	case state.FilterMode:
		m.state.FilterInput, cmd = m.state.FilterInput.Update(msg)
		cmds = append(cmds, cmd)
	case state.PaletteMode:
		m.state.Palette, cmd, _ = m.state.Palette.Update(msg)
		cmds = append(cmds, cmd)
	case state.BookmarksMode:
		m.state.BookmarkList, cmd = m.state.BookmarkList.Update(msg)
		cmds = append(cmds, cmd)
	case state.NormalMode:
		switch m.state.Pane {
		case state.SectionsPane:
			prevIdx := m.state.SectionList.Index()
			m.state.SectionList, cmd = m.state.SectionList.Update(msg)
			cmds = append(cmds, cmd)
			if m.state.SectionList.Index() != prevIdx {
				m.state.Err = nil
				cmds = append(cmds, update.PresentSelectedSection(m.state, m.deps()))
				update.UpdateListSizes(m.state)
			}
		case state.HeadlinesPane:
			m.state.StoryList, cmd = m.state.StoryList.Update(msg)
			cmds = append(cmds, cmd)
		case state.StoryPane:
			m.state.Viewport, cmd = m.state.Viewport.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	return m, tea.Batch(cmds...)
}

// View renders the application view.
func (m *Model) View() string {
	return view.Render(m.buildProps())
}

func (m *Model) deps() update.Deps {
	return update.Deps{
		Aggregate:   m.aggregate,
		Content:     m.content,
		Bookmarks:   m.bookmarks,
		LoadTheme:   m.options.LoadTheme,
		SaveTheme:   m.options.SaveTheme,
		ThemeNames:  m.options.ThemeNames,
		OpenBrowser: openBrowser,
		Logger:      m.options.Logger,
	}
}

// refreshStyles rebuilds delegates and spinner styling after a theme
// change. Only this package may touch the view layer, so the update
// package flags the change and the model applies it.
func (m *Model) refreshStyles() {
	if !m.state.ThemeDirty {
		return
	}
	m.styles = view.NewStyles(m.state.Theme)
	m.applyStyles()
	if m.state.Story != nil {
		update.RefreshStoryViewport(m.state)
	}
	m.state.ThemeDirty = false
}

func (m *Model) applyStyles() {
	m.state.SectionList.SetDelegate(listview.NewSectionDelegate(m.styles.Accent))
	m.state.StoryList.SetDelegate(listview.NewStoryDelegate(m.styles.Accent))
	m.state.BookmarkList.SetDelegate(listview.NewStoryDelegate(m.styles.Accent))
	m.state.Spinner.Style = lipgloss.NewStyle().Foreground(m.styles.Accent)
}

func newModelState(cfg settings.Settings, aggregate usecase.AggregateService, opts Options) *state.ModelState {
	st := &state.ModelState{
		Mode:         state.NormalMode,
		Pane:         state.SectionsPane,
		SectionList:  newSectionList(),
		StoryList:    newStoryList(),
		BookmarkList: newBookmarkList(),
		FilterInput:  newFilterInput(),
		Viewport:     newViewport(),
		Help:         help.New(),
		Spinner:      newSpinner(),
		Palette:      palette.New(nil),
		Keys:         state.NewKeyMap(cfg.KeyMap),
		Sections:     aggregate.Sections(),
		Stories:      make(map[string][]news.Story),
		Status:       make(map[string]state.SectionStatus),
		Seq:          make(map[string]int),
		Applied:      make(map[string]int),
		Read:         make(map[string]bool),
		Theme:        loadInitialTheme(cfg, opts),
	}

	st.SectionList.KeyMap.PrevPage = st.Keys.UpPage
	st.SectionList.KeyMap.NextPage = st.Keys.DownPage
	st.StoryList.KeyMap.PrevPage = st.Keys.UpPage
	st.StoryList.KeyMap.NextPage = st.Keys.DownPage
	st.BookmarkList.KeyMap.PrevPage = st.Keys.UpPage
	st.BookmarkList.KeyMap.NextPage = st.Keys.DownPage

	presenter.ApplySectionList(&st.SectionList, st.Sections, aggregate.IsMeta)
	if len(st.Sections) > 0 {
		st.CurrentSection = st.Sections[0]
	}
	if len(opts.Notices) > 0 {
		st.StatusMessage = strings.Join(opts.Notices, "; ")
	}

	return st
}

func newSectionList() list.Model {
	l := list.New([]list.Item{}, listview.NewSectionDelegate(""), 0, 0)
	l.Title = "Sections"
	l.SetShowHelp(false)
	l.SetShowTitle(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()
	return l
}

func newStoryList() list.Model {
	l := list.New([]list.Item{}, listview.NewStoryDelegate(""), 0, 0)
	l.Title = "Headlines"
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()
	return l
}

func newBookmarkList() list.Model {
	l := list.New([]list.Item{}, listview.NewStoryDelegate(""), 0, 0)
	l.Title = "Bookmarks"
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()
	return l
}

func newFilterInput() textinput.Model {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "filter titles"
	ti.CharLimit = 80
	ti.Width = 40
	return ti
}

func newSpinner() spinner.Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	return s
}

func newViewport() viewport.Model {
	vp := viewport.New(0, 0)
	vp.Style = lipgloss.NewStyle().
		PaddingLeft(1).
		PaddingRight(1)
	return vp
}

func loadInitialTheme(cfg settings.Settings, opts Options) theme.Theme {
	if opts.LoadTheme != nil {
		t, _ := opts.LoadTheme(cfg.Theme)
		return t
	}
	t, _ := theme.Load("", cfg.Theme)
	return t
}
