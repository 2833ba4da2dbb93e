package cbc

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tesso57/gazette/internal/domain/news"
	"github.com/tesso57/gazette/internal/infrastructure/source"
)

const articlePage = `<html><body>
<script id="__NEXT_DATA__" type="application/json">
{"props":{"pageProps":{"articleData":{
  "title":"Quake shakes coastal region",
  "body":{"parsed":[
    {"type":"element","tag":"p","content":[
      {"type":"text","content":"A strong quake hit the coast early Tuesday &amp; residents moved quickly to higher ground, officials said."}
    ]},
    {"type":"element","tag":"h2","content":[{"type":"text","content":"Aftershocks expected"}]},
    {"type":"element","tag":"p","content":[
      {"type":"text","content":"More tremors are possible through the week. "},
      {"type":"element","tag":"a","attrs":{"href":"/lite/story/more-1.5"},"content":[{"type":"text","content":"Read the advisory"}]}
    ]},
    {"type":"element","tag":"ul","content":[
      {"type":"element","tag":"li","content":[{"type":"text","content":"Stay away from the shoreline"}]},
      {"type":"element","tag":"li","content":[{"type":"text","content":"Keep emergency kits ready"}]}
    ]}
  ]},
  "moreStories":[{"title":"Cleanup begins downtown","url":"/lite/story/cleanup-1.6"}]
}}}}
</script>
</body></html>`

func TestRenderArticleFromPayload(t *testing.T) {
	md, err := renderArticle([]byte(articlePage))
	if err != nil {
		t.Fatalf("renderArticle() error = %v", err)
	}

	wants := []string{
		"# Quake shakes coastal region",
		"early Tuesday & residents",
		"## Aftershocks expected",
		"[Read the advisory](https://www.cbc.ca/lite/story/more-1.5)",
		"- Stay away from the shoreline",
		"## More Stories",
		"- [Cleanup begins downtown](https://www.cbc.ca/lite/story/cleanup-1.6)",
	}
	for _, want := range wants {
		if !strings.Contains(md, want) {
			t.Errorf("renderArticle() output missing %q\n%s", want, md)
		}
	}
}

func TestRenderArticleParagraphFallback(t *testing.T) {
	page := `<html><body><main>
<p>The committee heard from a dozen witnesses over two days of hearings in the capital.</p>
<p>A final report with recommendations is due before the house rises for the summer break.</p>
</main></body></html>`

	md, err := renderArticle([]byte(page))
	if err != nil {
		t.Fatalf("renderArticle() error = %v", err)
	}
	if !strings.Contains(md, "dozen witnesses") || !strings.Contains(md, "final report") {
		t.Errorf("renderArticle() = %q, want both paragraphs joined", md)
	}
}

func TestRenderArticleRejectsPlaceholderShell(t *testing.T) {
	page := `<html><body><main><p>Loading article, please wait while we retry the request.</p></main></body></html>`

	_, err := renderArticle([]byte(page))
	if !errors.Is(err, errNoContent) {
		t.Fatalf("renderArticle() error = %v, want errNoContent", err)
	}
}

func TestIsPlaceholderText(t *testing.T) {
	longText := strings.Repeat("word ", 20)
	tests := []struct {
		name string
		text string
		want bool
	}{
		{name: "empty", text: "", want: true},
		{name: "too short", text: "just a few words", want: true},
		{name: "placeholder phrase", text: longText + "unable to load", want: true},
		{name: "real body", text: longText, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isPlaceholderText(tt.text); got != tt.want {
				t.Errorf("isPlaceholderText() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFetchContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(articlePage))
	}))
	defer srv.Close()

	s := New(source.NewHTTPClient(), []string{"World"}, 1)
	story := news.Story{ID: srv.URL + "/lite/story/q-1.1", Link: srv.URL + "/lite/story/q-1.1"}

	md, err := s.FetchContent(context.Background(), story)
	if err != nil {
		t.Fatalf("FetchContent() error = %v", err)
	}
	if !strings.Contains(md, "# Quake shakes coastal region") {
		t.Errorf("FetchContent() = %q, want rendered title", md)
	}
}
