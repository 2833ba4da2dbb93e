// Package source defines the news source abstraction shared by the CBC
// and RSS adapters, plus the registry that resolves section names.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/tesso57/gazette/internal/domain/news"
)

// Browser-like User-Agent; the CBC pages refuse obvious bot clients.
const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:115.0) Gecko/20100101 Firefox/115.0"

const initialRetryDelay = 500 * time.Millisecond

// Adapter fetches stories for the sections it owns.
type Adapter interface {
	Name() string
	Sections() []string
	Fetch(ctx context.Context, section string) ([]news.Story, error)
}

// ContentFetcher is implemented by adapters that can load a story body.
type ContentFetcher interface {
	FetchContent(ctx context.Context, story news.Story) (string, error)
}

type uaTransport struct {
	base http.RoundTripper
}

func (t uaTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}
	clone := req.Clone(req.Context())
	if clone.Header.Get("User-Agent") == "" {
		clone.Header.Set("User-Agent", userAgent)
	}
	return base.RoundTrip(clone)
}

// NewHTTPClient returns a client with the shared transport. Deadlines
// come from the caller's context, not the client.
func NewHTTPClient() *http.Client {
	return &http.Client{Transport: uaTransport{base: http.DefaultTransport}}
}

// StatusError reports a non-200 response.
type StatusError struct {
	Code int
	URL  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d for %s", e.Code, e.URL)
}

// FetchBytes gets a URL, retrying failed attempts with doubling backoff.
// The caller's context bounds the whole attempt sequence.
func FetchBytes(ctx context.Context, client *http.Client, rawURL string, attempts int) ([]byte, error) {
	if attempts < 1 {
		attempts = 1
	}
	delay := initialRetryDelay
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		body, err := fetchOnce(ctx, client, rawURL)
		if err == nil {
			return body, nil
		}
		lastErr = err
		if ctx.Err() != nil || attempt == attempts {
			break
		}
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, fmt.Errorf("fetch %s: %w", rawURL, ctx.Err())
		}
		delay *= 2
	}
	return nil, lastErr
}

func fetchOnce(ctx context.Context, client *http.Client, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Code: resp.StatusCode, URL: rawURL}
	}
	return io.ReadAll(resp.Body)
}

// Classify wraps an adapter error as a section-scoped FetchError.
// Deadline expiry maps to Timeout, transport failures to Network,
// anything else to Parse.
func Classify(section string, err error) *news.FetchError {
	var fe *news.FetchError
	if errors.As(err, &fe) {
		return fe
	}

	kind := news.ErrParse
	switch {
	case errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled):
		kind = news.ErrTimeout
	case isNetworkErr(err):
		kind = news.ErrNetwork
	}
	return &news.FetchError{Kind: kind, Section: section, Err: err}
}

func isNetworkErr(err error) bool {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return true
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
