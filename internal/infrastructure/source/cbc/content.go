package cbc

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/tesso57/gazette/internal/domain/news"
	"github.com/tesso57/gazette/internal/infrastructure/source"
)

// Bodies shorter than this are treated as client-side loading shells.
const minArticleWords = 15

var placeholderPattern = regexp.MustCompile(`(?i)\b(loading|unable to load|error|retrying)\b`)

var errNoContent = errors.New("could not extract article content")

// contentNode mirrors one node of the parsed article body embedded in
// the page's __NEXT_DATA__ payload. Content is either a bare string
// for text nodes or a list of child nodes.
type contentNode struct {
	Type    string          `json:"type"`
	Tag     string          `json:"tag"`
	Content json.RawMessage `json:"content"`
	Attrs   struct {
		Href string `json:"href"`
	} `json:"attrs"`
}

type articlePayload struct {
	Props struct {
		PageProps struct {
			ArticleData struct {
				Title string `json:"title"`
				Body  struct {
					Parsed []contentNode `json:"parsed"`
				} `json:"body"`
				MoreStories []struct {
					Title string `json:"title"`
					URL   string `json:"url"`
				} `json:"moreStories"`
			} `json:"articleData"`
		} `json:"pageProps"`
	} `json:"props"`
}

// FetchContent loads a story page and renders its body as markdown.
// The structured payload is preferred; pages without one fall back to
// joining the visible paragraphs.
func (s *Source) FetchContent(ctx context.Context, story news.Story) (string, error) {
	body, err := source.FetchBytes(ctx, s.client, story.Link, s.attempts)
	if err != nil {
		return "", err
	}
	content, err := renderArticle(body)
	if err != nil {
		return "", fmt.Errorf("story %s: %w", story.Link, err)
	}
	return content, nil
}

func renderArticle(body []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	if md, ok := renderFromPayload(doc); ok {
		return md, nil
	}
	return renderFromParagraphs(doc)
}

func renderFromPayload(doc *goquery.Document) (string, bool) {
	raw := doc.Find("script#__NEXT_DATA__").First().Text()
	if strings.TrimSpace(raw) == "" {
		return "", false
	}
	var payload articlePayload
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		return "", false
	}
	article := payload.Props.PageProps.ArticleData

	var b strings.Builder
	title := strings.TrimSpace(article.Title)
	if title == "" {
		title = "No Title"
	}
	b.WriteString("# " + title + "\n\n")
	for _, node := range article.Body.Parsed {
		b.WriteString(renderNode(node))
	}
	if len(article.MoreStories) > 0 {
		b.WriteString("\n\n---\n\n## More Stories\n\n")
		for _, more := range article.MoreStories {
			fmt.Fprintf(&b, "- [%s](%s)\n", more.Title, absoluteURL(more.URL))
		}
	}

	md := strings.TrimSpace(html.UnescapeString(b.String()))
	if len(strings.Fields(md)) <= minArticleWords {
		return "", false
	}
	return md, true
}

func renderFromParagraphs(doc *goquery.Document) (string, error) {
	root := doc.Find("main").First()
	if root.Length() == 0 {
		root = doc.Selection
	}
	var paras []string
	root.Find("p").Each(func(_ int, p *goquery.Selection) {
		if text := collapseSpace(p.Text()); text != "" {
			paras = append(paras, text)
		}
	})
	candidate := strings.TrimSpace(strings.Join(paras, "\n\n"))
	if isPlaceholderText(candidate) {
		return "", errNoContent
	}
	return candidate, nil
}

func isPlaceholderText(text string) bool {
	if text == "" {
		return true
	}
	if len(strings.Fields(text)) < minArticleWords {
		return true
	}
	return placeholderPattern.MatchString(text)
}

func renderNode(node contentNode) string {
	if node.Type == "text" {
		var text string
		_ = json.Unmarshal(node.Content, &text)
		return text
	}
	var children []contentNode
	_ = json.Unmarshal(node.Content, &children)
	var b strings.Builder
	for _, child := range children {
		b.WriteString(renderNode(child))
	}
	inner := b.String()

	switch node.Tag {
	case "p":
		return strings.TrimSpace(inner) + "\n\n"
	case "h2":
		return "## " + strings.TrimSpace(inner) + "\n\n"
	case "h3":
		return "### " + strings.TrimSpace(inner) + "\n\n"
	case "a":
		return fmt.Sprintf("[%s](%s)", inner, absoluteURL(node.Attrs.Href))
	case "ul":
		return inner + "\n"
	case "li":
		return "- " + strings.TrimSpace(inner) + "\n"
	case "blockquote":
		var quoted strings.Builder
		for _, line := range strings.Split(strings.TrimSpace(inner), "\n") {
			quoted.WriteString("> " + line + "\n")
		}
		quoted.WriteString("\n")
		return quoted.String()
	case "strong", "b":
		return "**" + inner + "**"
	case "em", "i":
		return "*" + inner + "*"
	default:
		return inner
	}
}
