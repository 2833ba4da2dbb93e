package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tesso57/gazette/internal/presentation/tui/state"
)

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestQuitReachableFromEveryMode(t *testing.T) {
	m := newTestModel(newDefaultRegistry(), &stubContentProvider{}, &stubBookmarkRepo{})

	tm, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	m = tm.(*Model)

	// 1. Normal mode: 'q' quits directly.
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if !isQuit(cmd) {
		t.Error("Expected tea.Quit from normal mode on 'q'")
	}

	// 2. Bookmarks mode: 'q' quits.
	tm, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'B'}})
	m = tm.(*Model)
	if m.state.Mode != state.BookmarksMode {
		t.Fatal("Expected bookmarks mode")
	}
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if !isQuit(cmd) {
		t.Error("Expected tea.Quit from bookmarks mode on 'q'")
	}
	m.state.Mode = state.NormalMode

	// 3. Settings mode: 'q' quits, and esc only cancels.
	tm, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})
	m = tm.(*Model)
	if m.state.Mode != state.SettingsMode {
		t.Fatal("Expected settings mode")
	}
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if isQuit(cmd) {
		t.Error("Esc in settings should cancel, not quit")
	}
	tm, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})
	m = tm.(*Model)
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if !isQuit(cmd) {
		t.Error("Expected tea.Quit from settings mode on 'q'")
	}
	m.state.Mode = state.NormalMode

	// 4. Filter mode captures 'q' as text; ctrl+c still quits.
	tm, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
	m = tm.(*Model)
	if m.state.Mode != state.FilterMode {
		t.Fatal("Expected filter mode")
	}
	tm, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	m = tm.(*Model)
	if isQuit(cmd) {
		t.Error("'q' should be filter text, not quit")
	}
	if m.state.FilterInput.Value() != "q" {
		t.Errorf("Expected filter text %q, got %q", "q", m.state.FilterInput.Value())
	}
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if !isQuit(cmd) {
		t.Error("Expected tea.Quit from filter mode on ctrl+c")
	}
	m.state.Mode = state.NormalMode

	// 5. Palette mode captures 'q' as query; ctrl+c still quits.
	tm, _ = m.Update(tea.KeyMsg{Type: tea.KeyCtrlP})
	m = tm.(*Model)
	if m.state.Mode != state.PaletteMode {
		t.Fatal("Expected palette mode")
	}
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if isQuit(cmd) {
		t.Error("'q' should be palette input, not quit")
	}
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if !isQuit(cmd) {
		t.Error("Expected tea.Quit from palette mode on ctrl+c")
	}
}
