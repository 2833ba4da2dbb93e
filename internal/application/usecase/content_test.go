package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tesso57/gazette/internal/domain/news"
)

type stubContentProvider struct {
	calls   int
	content string
	errs    []error
}

func (p *stubContentProvider) Content(_ context.Context, _ news.Story) (string, error) {
	p.calls++
	if len(p.errs) > 0 {
		err := p.errs[0]
		p.errs = p.errs[1:]
		if err != nil {
			return "", err
		}
	}
	return p.content, nil
}

func TestContentLoadCachesPerStory(t *testing.T) {
	provider := &stubContentProvider{content: "# Body"}
	svc := NewContentService(provider, time.Second)
	story := news.Story{ID: "s1", Section: "World"}

	for i := 0; i < 3; i++ {
		content, err := svc.Load(context.Background(), story)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if content != "# Body" {
			t.Fatalf("Load() = %q, want the body", content)
		}
	}
	if provider.calls != 1 {
		t.Errorf("provider calls = %d, want 1 with caching", provider.calls)
	}

	if _, err := svc.Load(context.Background(), news.Story{ID: "s2"}); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if provider.calls != 2 {
		t.Errorf("provider calls = %d, want a fetch per distinct story", provider.calls)
	}
}

func TestContentLoadFailuresNotCached(t *testing.T) {
	provider := &stubContentProvider{
		content: "# Body",
		errs:    []error{errors.New("flaky"), nil},
	}
	svc := NewContentService(provider, time.Second)
	story := news.Story{ID: "s1", Section: "World"}

	if _, err := svc.Load(context.Background(), story); err == nil {
		t.Fatal("Load() error = nil, want the first failure surfaced")
	}
	content, err := svc.Load(context.Background(), story)
	if err != nil {
		t.Fatalf("Load() retry error = %v", err)
	}
	if content != "# Body" {
		t.Errorf("Load() = %q, want the body after retry", content)
	}
	if provider.calls != 2 {
		t.Errorf("provider calls = %d, want 2", provider.calls)
	}
}

func TestContentLoadClassifiesErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want news.ErrKind
	}{
		{name: "deadline", err: context.DeadlineExceeded, want: news.ErrTimeout},
		{name: "other", err: errors.New("bad payload"), want: news.ErrParse},
		{
			name: "already classified",
			err:  &news.FetchError{Kind: news.ErrNetwork, Section: "World", Err: errors.New("down")},
			want: news.ErrNetwork,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := &stubContentProvider{errs: []error{tt.err}}
			svc := NewContentService(provider, time.Second)

			_, err := svc.Load(context.Background(), news.Story{ID: "s1", Section: "World"})
			var fe *news.FetchError
			if !errors.As(err, &fe) {
				t.Fatalf("Load() error = %v, want *news.FetchError", err)
			}
			if fe.Kind != tt.want {
				t.Errorf("error kind = %v, want %v", fe.Kind, tt.want)
			}
		})
	}
}
