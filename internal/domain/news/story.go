// Package news defines the core story model and section composition rules.
package news

import (
	"sort"
	"time"
)

// HomeSection is the synthetic section backed by the CBC front page.
const HomeSection = "Home"

// Story is one normalized news item from any source.
type Story struct {
	ID        string
	Title     string
	Link      string
	Published time.Time // zero when the source gave no usable timestamp
	Section   string
	Summary   string
	Flag      string
}

// SortStories orders stories newest first. Stories without a published
// time keep their fetch order after all dated stories.
func SortStories(stories []Story) {
	sort.SliceStable(stories, func(i, j int) bool {
		a, b := stories[i].Published, stories[j].Published
		if a.IsZero() || b.IsZero() {
			return !a.IsZero() && b.IsZero()
		}
		return a.After(b)
	})
}

// DedupeByID drops stories whose ID already appeared, keeping the first
// occurrence. Stories without an ID are dropped.
func DedupeByID(stories []Story) []Story {
	seen := make(map[string]struct{}, len(stories))
	out := make([]Story, 0, len(stories))
	for _, s := range stories {
		if s.ID == "" {
			continue
		}
		if _, dup := seen[s.ID]; dup {
			continue
		}
		seen[s.ID] = struct{}{}
		out = append(out, s)
	}
	return out
}
