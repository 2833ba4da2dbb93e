package usecase

import (
	"context"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/tesso57/gazette/internal/domain/news"
)

const contentCacheSize = 64

// ContentProvider loads a story's full body from its source.
type ContentProvider interface {
	Content(ctx context.Context, story news.Story) (string, error)
}

// ContentService loads story bodies with a small in-memory cache so
// reopening a story within a session does not refetch it.
type ContentService struct {
	Provider ContentProvider
	Timeout  time.Duration

	cache *lru.Cache[string, string]
}

// NewContentService constructs a ContentService.
func NewContentService(provider ContentProvider, timeout time.Duration) ContentService {
	cache, _ := lru.New[string, string](contentCacheSize)
	return ContentService{
		Provider: provider,
		Timeout:  timeout,
		cache:    cache,
	}
}

// Load returns the story body, from cache when available. Failures
// are classified and never cached.
func (s ContentService) Load(ctx context.Context, story news.Story) (string, error) {
	if content, ok := s.cache.Get(story.ID); ok {
		return content, nil
	}

	loadCtx, cancel := context.WithTimeout(ctx, s.timeout())
	defer cancel()
	content, err := s.Provider.Content(loadCtx, story)
	if err != nil {
		return "", asFetchError(story.Section, err)
	}
	s.cache.Add(story.ID, content)
	return content, nil
}

func (s ContentService) timeout() time.Duration {
	if s.Timeout > 0 {
		return s.Timeout
	}
	return defaultFetchTimeout
}
