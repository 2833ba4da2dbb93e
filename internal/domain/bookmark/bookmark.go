// Package bookmark defines the bookmarked-story model.
package bookmark

import (
	"time"

	"github.com/tesso57/gazette/internal/domain/news"
)

// Bookmark caches enough story metadata to render the bookmarks view
// even after the story has left the live fetch window.
type Bookmark struct {
	ID      string
	Title   string
	Link    string
	Section string
	Summary string
	AddedAt time.Time
}

// FromStory builds a bookmark from a live story.
func FromStory(s news.Story, at time.Time) Bookmark {
	return Bookmark{
		ID:      s.ID,
		Title:   s.Title,
		Link:    s.Link,
		Section: s.Section,
		Summary: s.Summary,
		AddedAt: at,
	}
}

// Set is an in-memory bookmark collection. All returns entries most
// recently bookmarked first; re-adding an existing ID refreshes its
// recency.
type Set struct {
	items []Bookmark // oldest first
	index map[string]int
}

// NewSet builds a set from existing bookmarks in most-recent-first
// order, as returned by All.
func NewSet(existing []Bookmark) *Set {
	s := &Set{index: make(map[string]int, len(existing))}
	for i := len(existing) - 1; i >= 0; i-- {
		s.Add(existing[i])
	}
	return s
}

// Add inserts or refreshes a bookmark.
func (s *Set) Add(b Bookmark) {
	if b.ID == "" {
		return
	}
	s.Remove(b.ID)
	s.index[b.ID] = len(s.items)
	s.items = append(s.items, b)
}

// Remove deletes a bookmark by ID. Returns true if it existed.
func (s *Set) Remove(id string) bool {
	pos, ok := s.index[id]
	if !ok {
		return false
	}
	s.items = append(s.items[:pos], s.items[pos+1:]...)
	delete(s.index, id)
	for i := pos; i < len(s.items); i++ {
		s.index[s.items[i].ID] = i
	}
	return true
}

// Contains reports whether the ID is bookmarked.
func (s *Set) Contains(id string) bool {
	_, ok := s.index[id]
	return ok
}

// All returns the bookmarks, most recently added first.
func (s *Set) All() []Bookmark {
	out := make([]Bookmark, len(s.items))
	for i, b := range s.items {
		out[len(s.items)-1-i] = b
	}
	return out
}

// Len returns the number of bookmarks.
func (s *Set) Len() int { return len(s.items) }
