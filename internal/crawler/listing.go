package crawler

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"golang.org/x/net/html"

	"github.com/nao1215/blotter/internal/model"
)

// ListingParser extracts article links from a rendered listing page.
type ListingParser struct {
	// host is the site host anchors must point at.
	host string

	// listingPath is the path prefix article URLs share.
	listingPath string
}

// NewListingParser creates a parser for the given site.
func NewListingParser(site Site) (*ListingParser, error) {
	base, err := url.Parse(site.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if base.Hostname() == "" {
		return nil, fmt.Errorf("invalid base URL %q: missing host", site.BaseURL)
	}
	return &ListingParser{host: base.Hostname(), listingPath: site.ListingPath}, nil
}

// Parse returns the qualifying article links on the page in document order,
// each URL at most once. pageURL resolves relative hrefs.
func (p *ListingParser) Parse(pageURL string, content io.Reader) ([]model.ArticleLink, error) {
	page, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("invalid page URL: %w", err)
	}
	doc, err := html.Parse(content)
	if err != nil {
		return nil, fmt.Errorf("parse listing: %w", err)
	}

	links := make([]model.ArticleLink, 0)
	index := make(map[string]int)

	// current is the link still waiting for its <time>, or -1.
	current := -1

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "a":
				if link, ok := p.qualify(page, n); ok {
					if i, seen := index[link.URL]; seen {
						if links[i].Title == model.NoTitle && link.Title != model.NoTitle {
							links[i].Title = link.Title
						}
						current = i
					} else {
						index[link.URL] = len(links)
						links = append(links, link)
						current = len(links) - 1
					}
					if links[current].ListedDate != "" {
						current = -1
					}
				}
			case "time":
				if current >= 0 {
					links[current].ListedDate = collapse(textOf(n))
					current = -1
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return links, nil
}

// qualify resolves the anchor and reports whether it is an article link.
func (p *ListingParser) qualify(page *url.URL, n *html.Node) (model.ArticleLink, bool) {
	href := strings.TrimSpace(getAttr(n, "href"))
	if href == "" || strings.HasPrefix(href, "#") {
		return model.ArticleLink{}, false
	}
	ref, err := url.Parse(href)
	if err != nil {
		return model.ArticleLink{}, false
	}
	u := page.ResolveReference(ref)
	if u.Scheme != "http" && u.Scheme != "https" {
		return model.ArticleLink{}, false
	}
	if !strings.EqualFold(u.Hostname(), p.host) {
		return model.ArticleLink{}, false
	}
	if !strings.HasPrefix(u.Path, p.listingPath) || !isNumericSlug(u.Path) {
		return model.ArticleLink{}, false
	}
	u.Fragment = ""

	title := collapse(textOf(n))
	if title == "" {
		title = model.NoTitle
	}
	return model.ArticleLink{URL: u.String(), Title: title}, true
}

// isNumericSlug reports whether the last non-empty path segment is all digits.
func isNumericSlug(path string) bool {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	slug := segments[len(segments)-1]
	if slug == "" {
		return false
	}
	for _, r := range slug {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// textOf concatenates the text nodes under n.
func textOf(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			sb.WriteString(" ")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

// collapse trims s and folds every whitespace run into one space.
func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// getAttr retrieves an attribute value from an HTML node.
func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}
