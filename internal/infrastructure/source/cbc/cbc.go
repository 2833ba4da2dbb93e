// Package cbc scrapes the CBC Lite site into news sections.
package cbc

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/tesso57/gazette/internal/domain/news"
	"github.com/tesso57/gazette/internal/infrastructure/source"
)

const (
	domainBase   = "https://www.cbc.ca"
	homePath     = "/lite"
	sectionsPath = "/lite/sections"
)

// baseURL is a variable so tests can point the scraper at a local
// server. Story links are always absolutized against domainBase.
var baseURL = domainBase

// catalogue lists the Lite site sections the reader can reach without
// scraping the navigation first.
var catalogue = []struct {
	name string
	path string
}{
	{news.HomeSection, "/lite"},
	{"Top Stories", "/lite/news"},
	{"World", "/lite/news/world"},
	{"Canada", "/lite/news/canada"},
	{"Politics", "/lite/news/politics"},
	{"Business", "/lite/news/business"},
	{"Health", "/lite/news/health"},
	{"Entertainment", "/lite/news/entertainment"},
	{"Science", "/lite/news/science"},
	{"Sports", "/lite/sports"},
}

// Source scrapes CBC Lite pages into stories.
type Source struct {
	client   *http.Client
	sections []string
	attempts int
}

// New builds a CBC source limited to the configured sections, or the
// full catalogue when none are given.
func New(client *http.Client, sections []string, attempts int) *Source {
	if len(sections) == 0 {
		sections = make([]string, 0, len(catalogue))
		for _, entry := range catalogue {
			sections = append(sections, entry.name)
		}
	}
	return &Source{client: client, sections: sections, attempts: attempts}
}

func (s *Source) Name() string { return "cbc" }

func (s *Source) Sections() []string {
	out := make([]string, len(s.sections))
	copy(out, s.sections)
	return out
}

// Fetch scrapes the story list of one section page.
func (s *Source) Fetch(ctx context.Context, section string) ([]news.Story, error) {
	body, err := source.FetchBytes(ctx, s.client, baseURL+sectionPath(section), s.attempts)
	if err != nil {
		return nil, err
	}
	stories, err := parseStories(section, body)
	if err != nil {
		return nil, fmt.Errorf("section %s: %w", section, err)
	}
	return stories, nil
}

// DiscoverSections scrapes the live navigation for section names. The
// home and sections pages are merged, menu and search links dropped,
// and Home always listed first.
func (s *Source) DiscoverSections(ctx context.Context) ([]string, error) {
	seen := map[string]bool{news.HomeSection: true}
	names := []string{news.HomeSection}
	var lastErr error
	for _, page := range []string{baseURL + homePath, baseURL + sectionsPath} {
		body, err := source.FetchBytes(ctx, s.client, page, s.attempts)
		if err != nil {
			lastErr = err
			continue
		}
		doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
		if err != nil {
			lastErr = err
			continue
		}
		doc.Find("nav a[href], a[href^='/lite']").Each(func(_ int, a *goquery.Selection) {
			href := absoluteURL(a.AttrOr("href", ""))
			if !strings.Contains(href, "/lite") || strings.Contains(href, "/lite/story/") {
				return
			}
			title := collapseSpace(a.Text())
			lower := strings.ToLower(title)
			if title == "" || lower == "menu" || lower == "search" || seen[title] {
				return
			}
			seen[title] = true
			names = append(names, title)
		})
	}
	if len(names) == 1 && lastErr != nil {
		return nil, lastErr
	}
	return names, nil
}

// sectionPath maps a section name to its Lite site path. Names outside
// the catalogue fall back to a slug under /lite/news.
func sectionPath(name string) string {
	for _, entry := range catalogue {
		if strings.EqualFold(entry.name, name) {
			return entry.path
		}
	}
	slug := strings.ToLower(strings.Join(strings.Fields(name), "-"))
	return "/lite/news/" + slug
}

func parseStories(section string, body []byte) ([]news.Story, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	var stories []news.Story
	doc.Find("a[href*='/lite/story/']").Each(func(_ int, a *goquery.Selection) {
		link := absoluteURL(a.AttrOr("href", ""))
		if link == "" {
			return
		}
		flag := collapseSpace(a.Find("span").First().Text())
		title := collapseSpace(a.Text())
		if flag != "" {
			title = collapseSpace(strings.ReplaceAll(title, flag, ""))
		}
		if title == "" {
			return
		}
		summary := collapseSpace(a.NextAllFiltered("p").First().Text())
		stories = append(stories, news.Story{
			ID:      link,
			Title:   title,
			Link:    link,
			Section: section,
			Summary: summary,
			Flag:    flag,
		})
	})
	return news.DedupeByID(stories), nil
}

func absoluteURL(href string) string {
	href = strings.TrimSpace(href)
	switch {
	case href == "":
		return ""
	case strings.HasPrefix(href, "http://"), strings.HasPrefix(href, "https://"):
		return href
	case strings.HasPrefix(href, "/"):
		return domainBase + href
	default:
		return domainBase + "/" + href
	}
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
