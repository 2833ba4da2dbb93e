package rss

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/tesso57/gazette/internal/domain/news"
	"github.com/tesso57/gazette/internal/infrastructure/source"
)

func stubParser(t *testing.T, feeds map[string]*gofeed.Feed, errs map[string]error) func() {
	t.Helper()
	orig := ParserFunc
	ParserFunc = func(_ context.Context, url string) (*gofeed.Feed, error) {
		if err, ok := errs[url]; ok {
			return nil, err
		}
		if feed, ok := feeds[url]; ok {
			return feed, nil
		}
		return nil, fmt.Errorf("unexpected url %q", url)
	}
	return func() { ParserFunc = orig }
}

func TestFetchNormalizesEntries(t *testing.T) {
	published := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	updated := time.Date(2026, 3, 15, 10, 0, 0, 0, time.UTC)
	restore := stubParser(t, map[string]*gofeed.Feed{
		"https://hn.example/rss": {Items: []*gofeed.Item{
			{
				GUID:            "item-1",
				Title:           "Show HN: a tiny reader",
				Link:            "https://hn.example/1",
				Description:     "<p>A <b>tiny</b> reader.</p>",
				PublishedParsed: &published,
			},
			{
				Title:         "No GUID entry",
				Link:          "https://hn.example/2",
				UpdatedParsed: &updated,
			},
		}},
	}, nil)
	defer restore()

	s := New(map[string]string{"HN": "https://hn.example/rss"}, []string{"HN"})
	stories, err := s.Fetch(context.Background(), "HN")
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if len(stories) != 2 {
		t.Fatalf("Fetch() returned %d stories, want 2", len(stories))
	}

	first := stories[0]
	if first.ID != "item-1" {
		t.Errorf("ID = %q, want the GUID", first.ID)
	}
	if first.Summary != "A tiny reader." {
		t.Errorf("Summary = %q, want tags stripped", first.Summary)
	}
	if !first.Published.Equal(published) {
		t.Errorf("Published = %v, want %v", first.Published, published)
	}
	if first.Section != "HN" {
		t.Errorf("Section = %q, want %q", first.Section, "HN")
	}

	second := stories[1]
	if second.ID != "https://hn.example/2" {
		t.Errorf("ID = %q, want the link when no GUID", second.ID)
	}
	if !second.Published.Equal(updated) {
		t.Errorf("Published = %v, want the updated date fallback", second.Published)
	}
}

func TestFetchSkipsMalformedEntries(t *testing.T) {
	restore := stubParser(t, map[string]*gofeed.Feed{
		"https://hn.example/rss": {Items: []*gofeed.Item{
			{Title: "Good", Link: "https://hn.example/good"},
			{Title: "", Link: "https://hn.example/untitled"},
			{Title: "No link", Link: "   "},
			nil,
		}},
	}, nil)
	defer restore()

	s := New(map[string]string{"HN": "https://hn.example/rss"}, []string{"HN"})
	stories, err := s.Fetch(context.Background(), "HN")
	if err != nil {
		t.Fatalf("Fetch() error = %v", err)
	}
	if len(stories) != 1 || stories[0].Title != "Good" {
		t.Errorf("Fetch() = %v, want only the well-formed entry", stories)
	}
}

func TestFetchUnknownSection(t *testing.T) {
	s := New(map[string]string{}, nil)
	if _, err := s.Fetch(context.Background(), "Nope"); err == nil {
		t.Fatal("Fetch() error = nil, want unknown feed error")
	}
}

func TestFetchWrapsHTTPError(t *testing.T) {
	restore := stubParser(t, nil, map[string]error{
		"https://down.example/rss": gofeed.HTTPError{StatusCode: 503, Status: "503 Service Unavailable"},
	})
	defer restore()

	s := New(map[string]string{"Down": "https://down.example/rss"}, []string{"Down"})
	_, err := s.Fetch(context.Background(), "Down")
	if err == nil {
		t.Fatal("Fetch() error = nil, want status error")
	}
	var statusErr *source.StatusError
	if !errors.As(err, &statusErr) || statusErr.Code != 503 {
		t.Errorf("error = %v, want *StatusError with code 503", err)
	}
}

func TestFetchContentPrefersFullContent(t *testing.T) {
	restore := stubParser(t, map[string]*gofeed.Feed{
		"https://hn.example/rss": {Items: []*gofeed.Item{
			{
				Title:       "Full entry",
				Link:        "https://hn.example/full",
				Content:     "<article><p>The whole body.</p></article>",
				Description: "<p>Short teaser.</p>",
			},
			{
				Title:       "Summary only",
				Link:        "https://hn.example/summary",
				Description: "<p>Only a teaser.</p>",
			},
		}},
	}, nil)
	defer restore()

	s := New(map[string]string{"HN": "https://hn.example/rss"}, []string{"HN"})

	full, err := s.FetchContent(context.Background(), news.Story{Section: "HN", Link: "https://hn.example/full"})
	if err != nil {
		t.Fatalf("FetchContent() error = %v", err)
	}
	if full != "The whole body." {
		t.Errorf("FetchContent() = %q, want the content element", full)
	}

	summary, err := s.FetchContent(context.Background(), news.Story{Section: "HN", Link: "https://hn.example/summary"})
	if err != nil {
		t.Fatalf("FetchContent() error = %v", err)
	}
	if summary != "Only a teaser." {
		t.Errorf("FetchContent() = %q, want the summary fallback", summary)
	}

	if _, err := s.FetchContent(context.Background(), news.Story{Section: "HN", Link: "https://hn.example/missing"}); err == nil {
		t.Error("FetchContent() error = nil, want no-content error")
	}
}

func TestStripTags(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain text untouched", in: "already plain", want: "already plain"},
		{name: "tags removed", in: "<p>Hello <em>world</em></p>", want: "Hello world"},
		{name: "entities decoded", in: "fish &amp; chips", want: "fish & chips"},
		{name: "empty", in: "   ", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripTags(tt.in); got != tt.want {
				t.Errorf("StripTags(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSectionsKeepsConfiguredOrder(t *testing.T) {
	s := New(map[string]string{
		"Lobsters": "https://lobste.rs/rss",
		"HN":       "https://hn.example/rss",
	}, []string{"HN", "Lobsters"})

	if got, want := s.Sections(), []string{"HN", "Lobsters"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Sections() = %v, want %v", got, want)
	}
}

func TestDefaultParserParsesRealFeed(t *testing.T) {
	const feedXML = `<?xml version="1.0"?>
<rss version="2.0"><channel>
<title>Example</title>
<item><title>Entry one</title><link>https://example.com/1</link><guid>one</guid></item>
</channel></rss>`

	var gotAccept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAccept = r.Header.Get("Accept")
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprint(w, feedXML)
	}))
	defer srv.Close()

	feed, err := defaultParser(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("defaultParser() error = %v", err)
	}
	if len(feed.Items) != 1 || feed.Items[0].Title != "Entry one" {
		t.Errorf("parsed feed = %+v, want one entry", feed)
	}
	if gotAccept != feedAcceptHeader {
		t.Errorf("Accept = %q, want feed accept header", gotAccept)
	}
}
