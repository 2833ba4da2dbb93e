// Package usecase contains application-level services.
package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tesso57/gazette/internal/domain/news"
)

const (
	defaultFetchTimeout = 15 * time.Second
	defaultParallelism  = 4
)

// SectionRegistry exposes the source bindings resolved at startup.
type SectionRegistry interface {
	PhysicalSections() []string
	MetaSections() []string
	IsMeta(name string) bool
	Constituents(name string) ([]string, bool)
	Expand(selection []string) []string
	Fetch(ctx context.Context, section string) ([]news.Story, error)
}

// AggregateService fetches sections concurrently and composes meta
// sections from the per-section outcomes.
type AggregateService struct {
	Registry    SectionRegistry
	Timeout     time.Duration
	Parallelism int
}

// NewAggregateService constructs an AggregateService.
func NewAggregateService(registry SectionRegistry, timeout time.Duration, parallelism int) AggregateService {
	return AggregateService{
		Registry:    registry,
		Timeout:     timeout,
		Parallelism: parallelism,
	}
}

// Sections lists everything the sidebar shows: physical sections in
// registration order, then meta sections.
func (s AggregateService) Sections() []string {
	physical := s.Registry.PhysicalSections()
	metas := s.Registry.MetaSections()
	out := make([]string, 0, len(physical)+len(metas))
	out = append(out, physical...)
	return append(out, metas...)
}

// IsMeta reports whether name is a composed meta section.
func (s AggregateService) IsMeta(name string) bool {
	return s.Registry.IsMeta(name)
}

// Constituents returns the physical sections behind a meta section.
func (s AggregateService) Constituents(name string) ([]string, bool) {
	return s.Registry.Constituents(name)
}

// Expand resolves a selection to the physical sections it covers.
func (s AggregateService) Expand(selection []string) []string {
	return s.Registry.Expand(selection)
}

// FetchSection fetches one physical section under its own deadline and
// normalizes the result ordering.
func (s AggregateService) FetchSection(ctx context.Context, section string) news.FetchOutcome {
	fetchCtx, cancel := context.WithTimeout(ctx, s.timeout())
	defer cancel()

	stories, err := s.Registry.Fetch(fetchCtx, section)
	if err != nil {
		return news.FetchOutcome{Err: asFetchError(section, err)}
	}
	stories = news.DedupeByID(stories)
	news.SortStories(stories)
	return news.FetchOutcome{Stories: stories}
}

// Refresh fetches every physical section behind the selection
// concurrently, then composes the selected meta sections. Sections
// outside the selection are never touched.
func (s AggregateService) Refresh(ctx context.Context, selection []string) map[string]news.FetchOutcome {
	physical := s.Registry.Expand(selection)
	results := make(map[string]news.FetchOutcome, len(physical))

	var mu sync.Mutex
	g, groupCtx := errgroup.WithContext(ctx)
	g.SetLimit(s.parallelism())
	for _, section := range physical {
		g.Go(func() error {
			outcome := s.FetchSection(groupCtx, section)
			mu.Lock()
			results[section] = outcome
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	for _, name := range selection {
		constituents, ok := s.Registry.Constituents(name)
		if !ok {
			continue
		}
		stories, degraded := news.ComposeMeta(constituents, results)
		results[name] = news.FetchOutcome{Stories: stories, Degraded: degraded}
	}
	return results
}

func (s AggregateService) timeout() time.Duration {
	if s.Timeout > 0 {
		return s.Timeout
	}
	return defaultFetchTimeout
}

func (s AggregateService) parallelism() int {
	if s.Parallelism > 0 {
		return s.Parallelism
	}
	return defaultParallelism
}

// asFetchError keeps classified errors and wraps anything else,
// mapping deadline expiry to a timeout.
func asFetchError(section string, err error) *news.FetchError {
	var fe *news.FetchError
	if errors.As(err, &fe) {
		return fe
	}
	kind := news.ErrParse
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		kind = news.ErrTimeout
	}
	return &news.FetchError{Kind: kind, Section: section, Err: err}
}
