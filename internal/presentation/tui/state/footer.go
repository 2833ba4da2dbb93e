package state

import (
	"fmt"
	"strings"
)

// FooterText returns the footer content for the current mode.
func FooterText(mode Mode, statusLine, helpText string) string {
	status := strings.TrimSpace(statusLine)
	if status != "" && mode != FilterMode && mode != PaletteMode {
		if helpText == "" {
			return status
		}
		return status + "\n" + helpText
	}
	return helpText
}

// StatusLine summarizes refresh progress, failures, bookmarks, and the
// active theme for the footer.
func (s *ModelState) StatusLine(bookmarks int) string {
	parts := make([]string, 0, 4)

	if pending := s.InFlight(); pending > 0 {
		parts = append(parts, fmt.Sprintf("refreshing %d/%d", len(s.Seq)-pending, len(s.Seq)))
	}
	failed := 0
	for _, status := range s.Status {
		if status.Phase == PhaseFailed {
			failed++
		}
	}
	if failed > 0 {
		parts = append(parts, fmt.Sprintf("%d failed", failed))
	}
	if msg := strings.TrimSpace(s.StatusMessage); msg != "" {
		parts = append(parts, msg)
	}
	if bookmarks > 0 {
		parts = append(parts, fmt.Sprintf("%d bookmarked", bookmarks))
	}
	if s.Theme.Name != "" {
		parts = append(parts, s.Theme.Name)
	}
	return strings.Join(parts, " · ")
}
