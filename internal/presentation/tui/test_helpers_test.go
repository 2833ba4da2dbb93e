package tui

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/tesso57/gazette/internal/application/settings"
	"github.com/tesso57/gazette/internal/application/usecase"
	"github.com/tesso57/gazette/internal/domain/bookmark"
	"github.com/tesso57/gazette/internal/domain/news"
	"github.com/tesso57/gazette/internal/infrastructure/theme"
)

type stubRegistry struct {
	mock.Mock
	physical []string
	metas    map[string][]string
	stories  map[string][]news.Story
	errs     map[string]error
}

func (s *stubRegistry) PhysicalSections() []string {
	if len(s.ExpectedCalls) > 0 {
		args := s.Called()
		sections, _ := args.Get(0).([]string)
		return sections
	}
	return s.physical
}

func (s *stubRegistry) MetaSections() []string {
	if len(s.ExpectedCalls) > 0 {
		args := s.Called()
		sections, _ := args.Get(0).([]string)
		return sections
	}
	names := make([]string, 0, len(s.metas))
	for name := range s.metas {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *stubRegistry) IsMeta(name string) bool {
	_, ok := s.metas[name]
	return ok
}

func (s *stubRegistry) Constituents(name string) ([]string, bool) {
	constituents, ok := s.metas[name]
	return constituents, ok
}

func (s *stubRegistry) Expand(selection []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, name := range selection {
		constituents, ok := s.metas[name]
		if !ok {
			constituents = []string{name}
		}
		for _, c := range constituents {
			if !seen[c] {
				seen[c] = true
				out = append(out, c)
			}
		}
	}
	return out
}

func (s *stubRegistry) Fetch(_ context.Context, section string) ([]news.Story, error) {
	if len(s.ExpectedCalls) > 0 {
		args := s.Called(section)
		stories, _ := args.Get(0).([]news.Story)
		return stories, args.Error(1)
	}
	if err := s.errs[section]; err != nil {
		return nil, err
	}
	return s.stories[section], nil
}

type stubContentProvider struct {
	mock.Mock
	bodies map[string]string
	err    error
}

func (s *stubContentProvider) Content(_ context.Context, story news.Story) (string, error) {
	if len(s.ExpectedCalls) > 0 {
		args := s.Called(story)
		return args.String(0), args.Error(1)
	}
	if s.err != nil {
		return "", s.err
	}
	return s.bodies[story.ID], nil
}

type stubBookmarkRepo struct {
	mock.Mock
	items map[string]bookmark.Bookmark
}

func (s *stubBookmarkRepo) Add(b bookmark.Bookmark) error {
	if len(s.ExpectedCalls) > 0 {
		args := s.Called(b)
		return args.Error(0)
	}
	if s.items == nil {
		s.items = make(map[string]bookmark.Bookmark)
	}
	s.items[b.ID] = b
	return nil
}

func (s *stubBookmarkRepo) Remove(id string) error {
	if len(s.ExpectedCalls) > 0 {
		args := s.Called(id)
		return args.Error(0)
	}
	delete(s.items, id)
	return nil
}

func (s *stubBookmarkRepo) All() ([]bookmark.Bookmark, error) {
	if len(s.ExpectedCalls) > 0 {
		args := s.Called()
		items, _ := args.Get(0).([]bookmark.Bookmark)
		return items, args.Error(1)
	}
	out := make([]bookmark.Bookmark, 0, len(s.items))
	for _, b := range s.items {
		out = append(out, b)
	}
	return out, nil
}

func testStory(id, title, section string, published time.Time) news.Story {
	return news.Story{
		ID:        id,
		Title:     title,
		Link:      fmt.Sprintf("https://example.com/%s", id),
		Section:   section,
		Published: published,
		Summary:   fmt.Sprintf("Summary of %s.", title),
	}
}

func newDefaultRegistry() *stubRegistry {
	base := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	return &stubRegistry{
		physical: []string{"Politics", "World"},
		metas:    map[string][]string{"All News": {"Politics", "World"}},
		stories: map[string][]news.Story{
			"Politics": {
				testStory("p1", "Climate targets revised", "Politics", base),
				testStory("p2", "Interest rates hold steady", "Politics", base.Add(-time.Hour)),
			},
			"World": {
				testStory("w1", "Summit opens in Geneva", "World", base.Add(-30*time.Minute)),
			},
		},
	}
}

func testSettings() settings.Settings {
	return settings.Settings{
		Theme:  "dracula",
		Source: "cbc",
		KeyMap: settings.KeyMapConfig{
			Up: "k", Down: "j", Left: "h", Right: "l",
			UpPage: "ctrl+u", DownPage: "ctrl+d", Top: "g", Bottom: "G",
			Open: "enter", Back: "esc", Quit: "q",
			Refresh: "r", Bookmark: "b", Bookmarks: "B",
			Filter: "/", Palette: "ctrl+p", Settings: "s",
			ToggleSidebar: "t", OpenBrowser: "o",
		},
	}
}

func newTestModel(reg usecase.SectionRegistry, provider usecase.ContentProvider, repo usecase.BookmarkRepository) *Model {
	aggregate := usecase.NewAggregateService(reg, time.Second, 2)
	content := usecase.NewContentService(provider, time.Second)
	bookmarks := usecase.NewBookmarkService(repo, nil, nil)
	return NewModel(testSettings(), aggregate, content, bookmarks, Options{
		LoadTheme:  func(name string) (theme.Theme, bool) { return theme.Load("", name) },
		SaveTheme:  func(string) error { return nil },
		ThemeNames: func() []string { return theme.Names("") },
	})
}
