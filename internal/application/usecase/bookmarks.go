package usecase

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tesso57/gazette/internal/domain/bookmark"
	"github.com/tesso57/gazette/internal/domain/news"
)

// BookmarkRepository abstracts bookmark persistence.
type BookmarkRepository interface {
	Add(b bookmark.Bookmark) error
	Remove(id string) error
	All() ([]bookmark.Bookmark, error)
}

// BookmarkService keeps the in-memory bookmark set in sync with the
// persistent store. A failing store degrades the service to
// memory-only operation instead of blocking the reader.
type BookmarkService struct {
	Repo   BookmarkRepository
	Logger *log.Logger
	Now    func() time.Time

	set      *bookmark.Set
	degraded bool
}

// NewBookmarkService constructs a BookmarkService, loading the
// persisted bookmarks. A load failure starts the service empty and
// degraded.
func NewBookmarkService(repo BookmarkRepository, logger *log.Logger, now func() time.Time) *BookmarkService {
	s := &BookmarkService{Repo: repo, Logger: logger, Now: now}
	s.load()
	return s
}

func (s *BookmarkService) load() {
	if s.Repo == nil {
		s.set = bookmark.NewSet(nil)
		s.degraded = true
		return
	}
	existing, err := s.Repo.All()
	if err != nil {
		s.logger().Warn("bookmark store unavailable, continuing in memory", "err", err)
		s.degraded = true
		existing = nil
	}
	s.set = bookmark.NewSet(existing)
}

// Toggle flips a story's bookmark state, persisting the change, and
// reports the new state. Write failures are logged; the in-memory
// state stays authoritative for the session.
func (s *BookmarkService) Toggle(story news.Story) bool {
	if s.set.Contains(story.ID) {
		s.set.Remove(story.ID)
		if !s.degraded {
			if err := s.Repo.Remove(story.ID); err != nil {
				s.logger().Warn("failed to remove bookmark", "id", story.ID, "err", err)
			}
		}
		return false
	}

	b := bookmark.FromStory(story, s.now())
	s.set.Add(b)
	if !s.degraded {
		if err := s.Repo.Add(b); err != nil {
			s.logger().Warn("failed to save bookmark", "id", story.ID, "err", err)
		}
	}
	return true
}

// Contains reports whether a story is bookmarked.
func (s *BookmarkService) Contains(id string) bool {
	return s.set.Contains(id)
}

// List returns the bookmarks, most recently added first.
func (s *BookmarkService) List() []bookmark.Bookmark {
	return s.set.All()
}

// Degraded reports whether persistence is unavailable.
func (s *BookmarkService) Degraded() bool {
	return s.degraded
}

func (s *BookmarkService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *BookmarkService) logger() *log.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return log.New(io.Discard)
}
