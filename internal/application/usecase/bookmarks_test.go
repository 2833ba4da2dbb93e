package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/tesso57/gazette/internal/domain/bookmark"
	"github.com/tesso57/gazette/internal/domain/news"
)

type stubBookmarkRepo struct {
	mock.Mock
	items map[string]bookmark.Bookmark
}

func newStubBookmarkRepo() *stubBookmarkRepo {
	return &stubBookmarkRepo{items: map[string]bookmark.Bookmark{}}
}

func (r *stubBookmarkRepo) Add(b bookmark.Bookmark) error {
	if len(r.ExpectedCalls) > 0 {
		args := r.Called(b)
		return args.Error(0)
	}
	r.items[b.ID] = b
	return nil
}

func (r *stubBookmarkRepo) Remove(id string) error {
	if len(r.ExpectedCalls) > 0 {
		args := r.Called(id)
		return args.Error(0)
	}
	delete(r.items, id)
	return nil
}

func (r *stubBookmarkRepo) All() ([]bookmark.Bookmark, error) {
	if len(r.ExpectedCalls) > 0 {
		args := r.Called()
		items, _ := args.Get(0).([]bookmark.Bookmark)
		return items, args.Error(1)
	}
	out := make([]bookmark.Bookmark, 0, len(r.items))
	for _, b := range r.items {
		out = append(out, b)
	}
	return out, nil
}

func TestBookmarkToggleAddsThenRemoves(t *testing.T) {
	repo := newStubBookmarkRepo()
	svc := NewBookmarkService(repo, nil, nil)
	story := news.Story{ID: "s1", Title: "Headline", Link: "https://x/s1", Section: "World"}

	if !svc.Toggle(story) {
		t.Fatal("Toggle() = false, want bookmarked")
	}
	if !svc.Contains("s1") {
		t.Error("Contains() = false after toggle on")
	}
	if _, ok := repo.items["s1"]; !ok {
		t.Error("repository missing the bookmark after toggle on")
	}

	if svc.Toggle(story) {
		t.Fatal("Toggle() = true, want removed on second toggle")
	}
	if svc.Contains("s1") {
		t.Error("Contains() = true after toggle off")
	}
	if _, ok := repo.items["s1"]; ok {
		t.Error("repository still has the bookmark after toggle off")
	}
}

func TestBookmarkToggleCachesStoryMetadata(t *testing.T) {
	repo := newStubBookmarkRepo()
	now := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	svc := NewBookmarkService(repo, nil, func() time.Time { return now })

	svc.Toggle(news.Story{ID: "s1", Title: "Headline", Link: "https://x/s1", Section: "World", Summary: "Sum"})

	saved := repo.items["s1"]
	if saved.Title != "Headline" || saved.Link != "https://x/s1" || saved.Section != "World" || saved.Summary != "Sum" {
		t.Errorf("saved bookmark = %+v, want the story metadata cached", saved)
	}
	if !saved.AddedAt.Equal(now) {
		t.Errorf("AddedAt = %v, want %v", saved.AddedAt, now)
	}
}

func TestBookmarkListMostRecentFirst(t *testing.T) {
	repo := newStubBookmarkRepo()
	current := time.Date(2026, 6, 1, 10, 0, 0, 0, time.UTC)
	svc := NewBookmarkService(repo, nil, func() time.Time {
		current = current.Add(time.Minute)
		return current
	})

	svc.Toggle(news.Story{ID: "first"})
	svc.Toggle(news.Story{ID: "second"})
	svc.Toggle(news.Story{ID: "third"})

	list := svc.List()
	if len(list) != 3 {
		t.Fatalf("List() returned %d bookmarks, want 3", len(list))
	}
	if list[0].ID != "third" || list[2].ID != "first" {
		t.Errorf("List() order = [%s %s %s], want most recent first", list[0].ID, list[1].ID, list[2].ID)
	}
}

func TestBookmarkServiceLoadsExisting(t *testing.T) {
	repo := newStubBookmarkRepo()
	repo.items["s1"] = bookmark.Bookmark{ID: "s1", Title: "Kept"}

	svc := NewBookmarkService(repo, nil, nil)
	if !svc.Contains("s1") {
		t.Error("Contains() = false, want persisted bookmark loaded")
	}
	if svc.Degraded() {
		t.Error("Degraded() = true, want healthy store")
	}
}

func TestBookmarkServiceDegradesOnLoadFailure(t *testing.T) {
	repo := newStubBookmarkRepo()
	repo.On("All").Return(nil, errors.New("disk gone"))

	svc := NewBookmarkService(repo, nil, nil)
	if !svc.Degraded() {
		t.Fatal("Degraded() = false, want degraded after load failure")
	}

	// Still works in memory, without touching the store again.
	if !svc.Toggle(news.Story{ID: "s1"}) {
		t.Error("Toggle() = false, want in-memory bookmarking to work")
	}
	if !svc.Contains("s1") {
		t.Error("Contains() = false, want the in-memory bookmark kept")
	}
	repo.AssertNotCalled(t, "Add", mock.Anything)
}

func TestBookmarkServiceNilRepoRunsInMemory(t *testing.T) {
	svc := NewBookmarkService(nil, nil, nil)
	if !svc.Degraded() {
		t.Error("Degraded() = false, want degraded with no repository")
	}
	svc.Toggle(news.Story{ID: "s1"})
	if !svc.Contains("s1") {
		t.Error("Contains() = false, want memory-only operation")
	}
}
