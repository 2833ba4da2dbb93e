// Package presenter builds view models for the TUI.
package presenter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/tesso57/gazette/internal/domain/bookmark"
	"github.com/tesso57/gazette/internal/domain/news"
)

// Item is a view model for list items. The same type backs the
// sections sidebar, the headlines list, and the bookmarks list.
type Item struct {
	TitleText  string
	Desc       string
	ID         string
	Link       string
	Section    string
	Published  string
	Flag       string
	Read       bool
	Bookmarked bool
	Meta       bool
	Marker     string
}

// FilterValue implements list.Item.
func (i *Item) FilterValue() string { return i.TitleText }

// Title returns the item title.
func (i *Item) Title() string { return i.TitleText }

// URL returns the item's URL.
func (i *Item) URL() string { return i.Link }

// IsRead returns the session read state.
func (i *Item) IsRead() bool { return i.Read }

// IsBookmarked returns the bookmark state.
func (i *Item) IsBookmarked() bool { return i.Bookmarked }

// IsMeta reports whether the item is a composed meta section.
func (i *Item) IsMeta() bool { return i.Meta }

// Badge returns the source's story flag, e.g. a live coverage marker.
func (i *Item) Badge() string { return i.Flag }

// StatusMarker returns the sidebar fetch status marker.
func (i *Item) StatusMarker() string { return i.Marker }

// Description returns a formatted description for list display.
func (i *Item) Description() string {
	if i.Published != "" && i.Desc != "" {
		return fmt.Sprintf("%s - %s", i.Published, i.Desc)
	}
	if i.Published != "" {
		return i.Published
	}
	return i.Desc
}

// Story rebuilds the domain story the item was presented from.
func (i *Item) Story() news.Story {
	return news.Story{
		ID:      i.ID,
		Title:   i.TitleText,
		Link:    i.Link,
		Section: i.Section,
		Summary: i.Desc,
	}
}

// BuildSectionItems builds sidebar items for the section list.
func BuildSectionItems(names []string, isMeta func(string) bool) []list.Item {
	items := make([]list.Item, len(names))
	for i, name := range names {
		meta := isMeta != nil && isMeta(name)
		items[i] = &Item{TitleText: name, Section: name, Meta: meta}
	}
	return items
}

// ApplySectionList replaces the sidebar items, keeping the selection
// clamped to the new length.
func ApplySectionList(model *list.Model, names []string, isMeta func(string) bool) {
	idx := model.Index()
	model.SetItems(BuildSectionItems(names, isMeta))
	model.Select(clampIndex(idx, len(names)))
}

// SetSectionMarker updates the status marker on one sidebar entry.
func SetSectionMarker(model *list.Model, name, marker string) {
	for idx, listItem := range model.Items() {
		item, ok := listItem.(*Item)
		if !ok || item == nil || item.Section != name {
			continue
		}
		item.Marker = marker
		model.SetItem(idx, item)
		return
	}
}

// BuildHeadlineItems builds list items for one section's stories.
func BuildHeadlineItems(stories []news.Story, read, bookmarked func(id string) bool) []list.Item {
	items := make([]list.Item, len(stories))
	for i, story := range stories {
		published := ""
		if !story.Published.IsZero() {
			published = story.Published.Format("2006-01-02 15:04")
		}
		items[i] = &Item{
			TitleText:  story.Title,
			Desc:       story.Summary,
			ID:         story.ID,
			Link:       story.Link,
			Section:    story.Section,
			Published:  published,
			Flag:       story.Flag,
			Read:       read != nil && read(story.ID),
			Bookmarked: bookmarked != nil && bookmarked(story.ID),
		}
	}
	return items
}

// ApplyHeadlines replaces the headline items and clamps the selection.
func ApplyHeadlines(model *list.Model, stories []news.Story, read, bookmarked func(id string) bool) {
	idx := model.Index()
	model.SetItems(BuildHeadlineItems(stories, read, bookmarked))
	model.Select(clampIndex(idx, len(stories)))
}

// FilterStories keeps the stories whose title contains the query,
// compared case-insensitively. An empty query keeps everything.
func FilterStories(stories []news.Story, query string) []news.Story {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return stories
	}
	out := make([]news.Story, 0, len(stories))
	for _, story := range stories {
		if strings.Contains(strings.ToLower(story.Title), query) {
			out = append(out, story)
		}
	}
	return out
}

// BuildBookmarkItems builds list items for the bookmarks view,
// most recently added first.
func BuildBookmarkItems(marks []bookmark.Bookmark) []list.Item {
	items := make([]list.Item, len(marks))
	for i, mark := range marks {
		desc := mark.Section
		if mark.Summary != "" {
			desc = fmt.Sprintf("%s - %s", mark.Section, mark.Summary)
		}
		items[i] = &Item{
			TitleText:  mark.Title,
			Desc:       desc,
			ID:         mark.ID,
			Link:       mark.Link,
			Section:    mark.Section,
			Bookmarked: true,
		}
	}
	return items
}

// ApplyBookmarkList replaces the bookmark items and clamps the selection.
func ApplyBookmarkList(model *list.Model, marks []bookmark.Bookmark) {
	idx := model.Index()
	model.SetItems(BuildBookmarkItems(marks))
	model.Select(clampIndex(idx, len(marks)))
}

func clampIndex(idx, length int) int {
	if idx >= length {
		idx = length - 1
	}
	if idx < 0 {
		idx = 0
	}
	return idx
}
