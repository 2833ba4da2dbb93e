// Package rss adapts RSS and Atom feeds into news sections, one
// section per configured feed.
package rss

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"

	"github.com/tesso57/gazette/internal/domain/news"
	"github.com/tesso57/gazette/internal/infrastructure/source"
)

const feedAcceptHeader = "application/rss+xml, application/rdf+xml, application/atom+xml, application/xml;q=0.9, text/xml;q=0.8"

type acceptTransport struct {
	base http.RoundTripper
}

func (t acceptTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}
	clone := req.Clone(req.Context())
	if clone.Header.Get("Accept") == "" {
		clone.Header.Set("Accept", feedAcceptHeader)
	}
	return base.RoundTrip(clone)
}

// ParserFunc fetches and parses one feed URL. It is a variable so
// tests can substitute canned feeds.
var ParserFunc = defaultParser

func defaultParser(ctx context.Context, url string) (*gofeed.Feed, error) {
	parser := gofeed.NewParser()
	parser.UserAgent = "gazette/1.0"
	parser.Client = &http.Client{Transport: acceptTransport{base: http.DefaultTransport}}
	return parser.ParseURLWithContext(url, ctx)
}

// Source serves configured feeds as sections.
type Source struct {
	feeds map[string]string
	names []string
}

// New builds an RSS source. names fixes the section order and must
// list keys of feeds.
func New(feeds map[string]string, names []string) *Source {
	return &Source{feeds: feeds, names: names}
}

func (s *Source) Name() string { return "rss" }

func (s *Source) Sections() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// Fetch downloads one feed and normalizes its entries. Entries with no
// title or link are skipped rather than failing the section.
func (s *Source) Fetch(ctx context.Context, section string) ([]news.Story, error) {
	url, ok := s.feeds[section]
	if !ok {
		return nil, fmt.Errorf("no feed configured for %q", section)
	}
	feed, err := ParserFunc(ctx, url)
	if err != nil {
		return nil, wrapFeedErr(url, err)
	}
	stories := make([]news.Story, 0, len(feed.Items))
	for _, item := range feed.Items {
		if story, ok := normalizeItem(section, item); ok {
			stories = append(stories, story)
		}
	}
	return news.DedupeByID(stories), nil
}

// FetchContent re-reads the story's feed and returns the matching
// entry's content, falling back to its summary.
func (s *Source) FetchContent(ctx context.Context, story news.Story) (string, error) {
	url, ok := s.feeds[story.Section]
	if !ok {
		return "", fmt.Errorf("no feed configured for %q", story.Section)
	}
	feed, err := ParserFunc(ctx, url)
	if err != nil {
		return "", wrapFeedErr(url, err)
	}
	for _, item := range feed.Items {
		if item == nil || strings.TrimSpace(item.Link) != story.Link {
			continue
		}
		if text := StripTags(item.Content); text != "" {
			return text, nil
		}
		if text := StripTags(item.Description); text != "" {
			return text, nil
		}
		break
	}
	return "", fmt.Errorf("no content found for %s", story.Link)
}

func normalizeItem(section string, item *gofeed.Item) (news.Story, bool) {
	if item == nil {
		return news.Story{}, false
	}
	title := strings.TrimSpace(item.Title)
	link := strings.TrimSpace(item.Link)
	if title == "" || link == "" {
		return news.Story{}, false
	}
	id := strings.TrimSpace(item.GUID)
	if id == "" {
		id = link
	}
	var published time.Time
	if item.PublishedParsed != nil {
		published = *item.PublishedParsed
	} else if item.UpdatedParsed != nil {
		published = *item.UpdatedParsed
	}
	return news.Story{
		ID:        id,
		Title:     title,
		Link:      link,
		Published: published,
		Section:   section,
		Summary:   StripTags(item.Description),
	}, true
}

// StripTags flattens an HTML fragment to its visible text.
func StripTags(fragment string) string {
	fragment = strings.TrimSpace(fragment)
	if fragment == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return fragment
	}
	return strings.TrimSpace(doc.Text())
}

// wrapFeedErr converts gofeed's HTTP failure into the shared status
// error so classification treats it as a network problem.
func wrapFeedErr(url string, err error) error {
	var httpErr gofeed.HTTPError
	if errors.As(err, &httpErr) {
		return &source.StatusError{Code: httpErr.StatusCode, URL: url}
	}
	return err
}
