// Package palette implements the fuzzy-searchable command palette.
package palette

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"
)

// Action names are stable identifiers the update layer dispatches on.
const (
	ActionRefresh       = "refresh"
	ActionRefreshAll    = "refresh-all"
	ActionBookmarks     = "bookmarks"
	ActionThemes        = "themes"
	ActionToggleSidebar = "toggle-sections"
	ActionOpenBrowser   = "open-browser"
	ActionHelp          = "help"
	ActionQuit          = "quit"
)

// Action represents an entry in the command palette.
type Action struct {
	Name        string
	Aliases     []string
	Description string
	Key         string
}

// DefaultActions returns the built-in palette entries.
func DefaultActions() []Action {
	return []Action{
		{Name: ActionRefresh, Description: "Refresh the focused section", Key: "r"},
		{Name: ActionRefreshAll, Aliases: []string{"reload"}, Description: "Refresh every section"},
		{Name: ActionBookmarks, Aliases: []string{"saved"}, Description: "Show bookmarked stories", Key: "B"},
		{Name: ActionThemes, Aliases: []string{"settings", "theme"}, Description: "Pick a color theme", Key: "s"},
		{Name: ActionToggleSidebar, Aliases: []string{"sidebar"}, Description: "Hide or show the sections pane", Key: "t"},
		{Name: ActionOpenBrowser, Aliases: []string{"browser"}, Description: "Open the current story in the browser", Key: "o"},
		{Name: ActionHelp, Description: "Toggle the help overlay", Key: "?"},
		{Name: ActionQuit, Aliases: []string{"exit"}, Description: "Quit gazette", Key: "q"},
	}
}

type actionSource []Action

func (s actionSource) String(i int) string {
	if len(s[i].Aliases) == 0 {
		return s[i].Name
	}
	return s[i].Name + " " + strings.Join(s[i].Aliases, " ")
}

func (s actionSource) Len() int { return len(s) }

// Palette is a command palette with fuzzy matching.
type Palette struct {
	input    textinput.Model
	actions  []Action
	filtered []Action
	cursor   int
	width    int
	active   bool
}

// New creates a command palette over the given actions. A nil slice
// installs the defaults.
func New(actions []Action) Palette {
	if actions == nil {
		actions = DefaultActions()
	}
	ti := textinput.New()
	ti.Placeholder = "Type a command..."
	ti.Prompt = "> "
	ti.CharLimit = 32

	return Palette{
		input:    ti,
		actions:  actions,
		filtered: actions,
	}
}

// Activate shows the palette with an empty query.
func (p *Palette) Activate() tea.Cmd {
	p.active = true
	p.input.SetValue("")
	p.input.Focus()
	p.filtered = p.actions
	p.cursor = 0
	return textinput.Blink
}

// Deactivate hides the palette.
func (p *Palette) Deactivate() {
	p.active = false
	p.input.Blur()
}

// IsActive returns whether the palette is showing.
func (p Palette) IsActive() bool {
	return p.active
}

// SetWidth sets the palette width.
func (p *Palette) SetWidth(w int) {
	p.width = w
	p.input.Width = w - 10
}

// Selected returns the currently highlighted action name.
func (p Palette) Selected() string {
	if p.cursor >= 0 && p.cursor < len(p.filtered) {
		return p.filtered[p.cursor].Name
	}
	return ""
}

// Update handles input. The returned string is the chosen action name,
// empty until the user confirms a selection.
func (p Palette) Update(msg tea.Msg) (Palette, tea.Cmd, string) {
	if !p.active {
		return p, nil, ""
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc":
			p.Deactivate()
			return p, nil, ""
		case "enter":
			chosen := p.Selected()
			p.Deactivate()
			return p, nil, chosen
		case "up", "ctrl+p":
			if p.cursor > 0 {
				p.cursor--
			}
			return p, nil, ""
		case "down", "ctrl+n":
			if p.cursor < len(p.filtered)-1 {
				p.cursor++
			}
			return p, nil, ""
		case "tab":
			if len(p.filtered) > 0 {
				p.input.SetValue(p.filtered[p.cursor].Name)
				p.input.CursorEnd()
			}
			return p, nil, ""
		}
	}

	before := p.input.Value()
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	if p.input.Value() != before {
		p.filter()
	}
	return p, cmd, ""
}

// Rank returns the actions matching the query, best match first. An
// empty query returns every action in declaration order.
func Rank(actions []Action, query string) []Action {
	query = strings.TrimSpace(query)
	if query == "" {
		return actions
	}
	matches := fuzzy.FindFrom(query, actionSource(actions))
	out := make([]Action, 0, len(matches))
	for _, m := range matches {
		out = append(out, actions[m.Index])
	}
	return out
}

func (p *Palette) filter() {
	p.filtered = Rank(p.actions, p.input.Value())
	if p.cursor >= len(p.filtered) {
		p.cursor = max(len(p.filtered)-1, 0)
	}
}

// View renders the palette box.
func (p Palette) View() string {
	if !p.active {
		return ""
	}

	width := p.width
	if width < 24 {
		width = 24
	}

	itemStyle := lipgloss.NewStyle().Padding(0, 1)
	selectedStyle := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	descStyle := lipgloss.NewStyle().Faint(true)

	var b strings.Builder
	b.WriteString(p.input.View())
	b.WriteString("\n")
	b.WriteString(descStyle.Render(strings.Repeat("─", max(width-8, 0))))
	b.WriteString("\n")

	for i, action := range p.filtered {
		line := itemStyle.Render("  " + action.Name)
		if i == p.cursor {
			line = selectedStyle.Render("> " + action.Name)
		}
		line += descStyle.Render(" " + action.Description)
		if action.Key != "" {
			pad := width - 8 - lipgloss.Width(line) - lipgloss.Width(action.Key)
			if pad > 0 {
				line += strings.Repeat(" ", pad) + descStyle.Render(action.Key)
			}
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	if len(p.filtered) == 0 {
		b.WriteString(descStyle.Render("  No matching commands"))
		b.WriteString("\n")
	}
	b.WriteString(descStyle.Render("enter run  tab complete  esc cancel"))

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1).
		Width(width - 4).
		Render(b.String())
}
