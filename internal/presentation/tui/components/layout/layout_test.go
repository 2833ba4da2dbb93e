package layout

import (
	"strings"
	"testing"
)

func TestRender(t *testing.T) {
	props := Props{
		Sidebar: "SIDEBAR",
		Main:    "MAIN",
		Footer:  "FOOTER",
	}

	got := Render(props)

	if !strings.Contains(got, "SIDEBAR") {
		t.Error("Missing sidebar content")
	}
	if !strings.Contains(got, "MAIN") {
		t.Error("Missing main content")
	}
	if !strings.Contains(got, "FOOTER") {
		t.Error("Missing footer content")
	}
}

func TestRenderEmptySidebar(t *testing.T) {
	got := Render(Props{Sidebar: "", Main: "MAIN", Footer: "FOOTER"})

	lines := strings.Split(got, "\n")
	if !strings.HasPrefix(lines[0], "MAIN") {
		t.Errorf("main should start at the left edge, got %q", lines[0])
	}
}
