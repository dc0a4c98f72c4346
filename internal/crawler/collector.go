package crawler

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/nao1215/blotter/internal/browser"
	"github.com/nao1215/blotter/internal/model"
)

// Collector gathers article links by paging through the listing.
type Collector struct {
	renderer browser.Renderer
	site     Site
	logger   *slog.Logger
}

// CollectorOption configures a Collector.
type CollectorOption func(*Collector)

// WithCollectorLogger sets the logger.
func WithCollectorLogger(logger *slog.Logger) CollectorOption {
	return func(c *Collector) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewCollector creates a Collector reading the given site.
func NewCollector(renderer browser.Renderer, site Site, opts ...CollectorOption) *Collector {
	c := &Collector{
		renderer: renderer,
		site:     site,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Collect returns at most maxLinks article links with unique URLs, in the
// order the listing shows them. It stops early, without error, as soon as a
// listing page contributes no link that was not already collected.
// A render failure aborts the collection.
func (c *Collector) Collect(ctx context.Context, maxLinks int) ([]model.ArticleLink, error) {
	if maxLinks <= 0 {
		return []model.ArticleLink{}, nil
	}

	parser, err := NewListingParser(c.site)
	if err != nil {
		return nil, err
	}

	links := make([]model.ArticleLink, 0, maxLinks)
	seen := make(map[string]bool)

	for page := 1; len(links) < maxLinks; page++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		pageURL := c.site.ListingURL(page)
		html, err := c.renderer.Render(ctx, pageURL)
		if err != nil {
			return nil, fmt.Errorf("listing page %d: %w", page, err)
		}

		found, err := parser.Parse(pageURL, strings.NewReader(html))
		if err != nil {
			return nil, fmt.Errorf("listing page %d: %w", page, err)
		}

		added := 0
		for _, link := range found {
			if seen[link.URL] {
				continue
			}
			seen[link.URL] = true
			links = append(links, link)
			added++
		}

		c.logger.Debug("listing page collected",
			"page", page,
			"found", len(found),
			"new", added,
			"total", len(links))

		if added == 0 {
			c.logger.Info("listing exhausted", "page", page, "total", len(links))
			break
		}
	}

	if len(links) > maxLinks {
		links = links[:maxLinks]
	}
	return links, nil
}
