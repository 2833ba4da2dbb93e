package update

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/tesso57/gazette/internal/presentation/tui/state"
)

// RefreshStoryViewport rebuilds the story pane from the current story
// state. Called when content arrives and again on resize or theme
// change, since rendering depends on width and palette.
func RefreshStoryViewport(s *state.ModelState) {
	s.Viewport.SetContent(buildStoryContent(s))
	s.Viewport.GotoTop()
}

func buildStoryContent(s *state.ModelState) string {
	if s.Story == nil {
		return ""
	}

	header := strings.TrimSpace(s.Story.Title)
	if !s.Story.Published.IsZero() {
		header = fmt.Sprintf("%s\n%s", header, s.Story.Published.Format("2006-01-02 15:04"))
	}

	switch {
	case s.StoryLoading:
		return fmt.Sprintf("%s\n\n%s Loading...", header, s.Spinner.View())
	case s.StoryErr != nil:
		return fmt.Sprintf("%s\n\nCould not load this story: %v\n\nPress o to open it in the browser.", header, s.StoryErr)
	}

	body := strings.TrimSpace(s.StoryMarkdown)
	if body == "" {
		body = strings.TrimSpace(s.Story.Summary)
	}
	if body == "" {
		return fmt.Sprintf("%s\n\n(No story body available. Press o to open it in the browser.)", header)
	}

	rendered, err := renderMarkdown(body, s)
	if err != nil {
		return fmt.Sprintf("%s\n\n%s", header, body)
	}
	return fmt.Sprintf("%s\n%s", header, rendered)
}

func renderMarkdown(body string, s *state.ModelState) (string, error) {
	style := "dark"
	if !s.Theme.Dark {
		style = "light"
	}
	width := s.Viewport.Width - 2
	if width < 20 {
		width = 20
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}
	return renderer.Render(body)
}
