package model

// NoTitle is the placeholder title for links whose anchor text is empty.
const NoTitle = "No title"

// ArticleLink is a news-release link discovered on a listing page.
// URLs are absolute and unique within a single collection pass.
type ArticleLink struct {
	// URL is the absolute article URL without fragment.
	URL string `json:"url"`

	// Title is the whitespace-collapsed anchor text, or NoTitle.
	Title string `json:"title"`

	// ListedDate is the text of the <time> marker next to the link, if any.
	ListedDate string `json:"listed_date,omitempty"`
}

// ArticleContent is the text of one rendered article page.
type ArticleContent struct {
	// Text is the visible text of the main content container with
	// whitespace collapsed to single spaces.
	Text string `json:"text"`

	// PublishedDate is the "Published: ..." marker value, if present.
	PublishedDate string `json:"published_date,omitempty"`
}

// HasPublishedDate reports whether a publication date was found.
func (c *ArticleContent) HasPublishedDate() bool {
	return c.PublishedDate != ""
}
