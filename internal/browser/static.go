package browser

import (
	"context"
	"errors"
	"sync"
)

// errPageNotFound is reported for URLs a StaticRenderer does not know.
var errPageNotFound = errors.New("page not found")

// StaticRenderer serves canned HTML from memory. It stands in for a real
// browser in tests and dry runs.
type StaticRenderer struct {
	mu     sync.Mutex
	pages  map[string]string
	errs   map[string]error
	calls  []string
	closed int
}

// NewStaticRenderer creates a renderer over url -> HTML.
func NewStaticRenderer(pages map[string]string) *StaticRenderer {
	p := make(map[string]string, len(pages))
	for k, v := range pages {
		p[k] = v
	}
	return &StaticRenderer{pages: p, errs: make(map[string]error)}
}

// SetPage adds or replaces a page.
func (s *StaticRenderer) SetPage(pageURL, html string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pages[pageURL] = html
}

// SetError makes Render fail for pageURL.
func (s *StaticRenderer) SetError(pageURL string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errs[pageURL] = err
}

// Render returns the canned page.
func (s *StaticRenderer) Render(ctx context.Context, pageURL string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", renderError(pageURL, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed > 0 {
		return "", ErrClosed
	}
	s.calls = append(s.calls, pageURL)

	if err, ok := s.errs[pageURL]; ok {
		return "", renderError(pageURL, err)
	}
	html, ok := s.pages[pageURL]
	if !ok {
		return "", renderError(pageURL, errPageNotFound)
	}
	return html, nil
}

// Close marks the renderer closed.
func (s *StaticRenderer) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed++
	return nil
}

// Calls returns the URLs rendered so far, in order.
func (s *StaticRenderer) Calls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.calls...)
}

// CloseCount returns how many times Close was called.
func (s *StaticRenderer) CloseCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}
