// Package crawler walks a police news-release listing and reads the articles
// it links to.
//
// # Components
//
//   - Collector pages through the listing (page=1, page=2, ...) and gathers
//     article links until it has enough or a page yields nothing new.
//   - ListingParser finds the article anchors on one rendered listing page.
//     An anchor qualifies when it points at the same host, sits under the
//     listing path and ends in a numeric slug.
//   - Fetcher renders one article, picks the content container through a
//     selector chain and returns its visible text plus the "Published:" date.
//
// All page loads go through a browser.Renderer, so tests substitute canned
// HTML for a real browser.
//
// # Usage
//
//	c := crawler.NewCollector(renderer, crawler.DefaultSite())
//	links, err := c.Collect(ctx, 20)
//
//	f := crawler.NewFetcher(renderer)
//	content, err := f.Fetch(ctx, links[0].URL)
package crawler
