package crawler

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/text/unicode/norm"

	"github.com/nao1215/blotter/internal/browser"
	"github.com/nao1215/blotter/internal/model"
)

// publishedRegex captures "Published: <anything> <year>" up to the first
// four-digit run.
var publishedRegex = regexp.MustCompile(`Published:\s*(.*?\d{4})`)

// skippedElements never contribute visible text.
var skippedElements = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"template": true,
}

// Fetcher reads one article page.
type Fetcher struct {
	renderer  browser.Renderer
	selectors []string
	logger    *slog.Logger
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithContentSelectors overrides the content selector chain.
func WithContentSelectors(selectors []string) FetcherOption {
	return func(f *Fetcher) {
		if len(selectors) > 0 {
			f.selectors = selectors
		}
	}
}

// WithFetcherLogger sets the logger.
func WithFetcherLogger(logger *slog.Logger) FetcherOption {
	return func(f *Fetcher) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// NewFetcher creates a Fetcher using DefaultContentSelectors.
func NewFetcher(renderer browser.Renderer, opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		renderer:  renderer,
		selectors: DefaultContentSelectors(),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch renders pageURL and extracts its content.
func (f *Fetcher) Fetch(ctx context.Context, pageURL string) (model.ArticleContent, error) {
	rendered, err := f.renderer.Render(ctx, pageURL)
	if err != nil {
		return model.ArticleContent{}, err
	}
	content, err := ExtractContent(rendered, f.selectors)
	if err != nil {
		return model.ArticleContent{}, fmt.Errorf("%s: %w", pageURL, err)
	}
	f.logger.Debug("article fetched",
		"url", pageURL,
		"chars", len(content.Text),
		"published", content.PublishedDate)
	return content, nil
}

// ExtractContent picks the first container matching selectors (or the whole
// document), returns its visible text and the published date found in it.
func ExtractContent(rendered string, selectors []string) (model.ArticleContent, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rendered))
	if err != nil {
		return model.ArticleContent{}, fmt.Errorf("parse html: %w", err)
	}

	container := doc.Selection
	for _, sel := range selectors {
		if found := doc.Find(sel).First(); found.Length() > 0 {
			container = found
			break
		}
	}

	text := visibleText(container)
	content := model.ArticleContent{Text: text}
	if m := publishedRegex.FindStringSubmatch(text); m != nil {
		content.PublishedDate = strings.TrimSpace(m[1])
	}
	return content, nil
}

// visibleText joins the trimmed text nodes of sel with single spaces and
// normalises the result to NFC.
func visibleText(sel *goquery.Selection) string {
	parts := make([]string, 0)
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && skippedElements[n.Data] {
			return
		}
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				parts = append(parts, t)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range sel.Nodes {
		walk(n)
	}
	return norm.NFC.String(collapse(strings.Join(parts, " ")))
}
