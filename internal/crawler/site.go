package crawler

import (
	"strconv"
	"strings"
)

// Site describes where the listing lives and how its pages are laid out.
type Site struct {
	// BaseURL is the scheme and host, e.g. "https://www.tps.ca".
	BaseURL string

	// ListingPath is the path of the listing and the prefix every article
	// path shares, e.g. "/media-centre/news-releases/".
	ListingPath string

	// PageParam is the query parameter carrying the page number.
	PageParam string

	// ContentSelectors are tried in order to find an article's main
	// container. The whole document is used when none matches.
	ContentSelectors []string
}

// Default site values.
const (
	DefaultBaseURL     = "https://www.tps.ca"
	DefaultListingPath = "/media-centre/news-releases/"
	DefaultPageParam   = "page"
)

// DefaultContentSelectors returns the built-in selector chain.
func DefaultContentSelectors() []string {
	return []string{"div.grid-container", "article"}
}

// DefaultSite returns the Toronto Police Service news-release listing.
func DefaultSite() Site {
	return Site{
		BaseURL:          DefaultBaseURL,
		ListingPath:      DefaultListingPath,
		PageParam:        DefaultPageParam,
		ContentSelectors: DefaultContentSelectors(),
	}
}

// ListingURL returns the URL of the given 1-based listing page.
func (s Site) ListingURL(page int) string {
	return strings.TrimRight(s.BaseURL, "/") + s.ListingPath + "?" + s.PageParam + "=" + strconv.Itoa(page)
}
