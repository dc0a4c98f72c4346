package classifier

import (
	"strings"
	"sync"

	ahocorasick "github.com/cloudflare/ahocorasick"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Classifier tests article text against a keyword vocabulary.
// It is safe for concurrent use.
type Classifier struct {
	// keywords are the normalised vocabulary entries, in automaton order.
	keywords []string

	// matcher is nil when the vocabulary is empty.
	matcher *ahocorasick.Matcher

	// mu serialises matcher use; the automaton keeps per-match state.
	mu sync.Mutex
}

// New builds a Classifier over the given keywords. Keywords are trimmed and
// lowercased; empty and repeated entries are dropped.
func New(keywords []string) *Classifier {
	c := &Classifier{keywords: normalizeKeywords(keywords)}
	if len(c.keywords) > 0 {
		c.matcher = ahocorasick.NewStringMatcher(c.keywords)
	}
	return c
}

// NewDefault builds a Classifier over DefaultKeywords.
func NewDefault() *Classifier {
	return New(DefaultKeywords())
}

// IsCrimeRelated reports whether at least one keyword occurs anywhere in the
// lowercased text.
func (c *Classifier) IsCrimeRelated(text string) bool {
	if c.matcher == nil || text == "" {
		return false
	}
	lowered := []byte(lower(text))

	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.matcher.Match(lowered)) > 0
}

// MatchedKeywords returns each keyword found in the text, in vocabulary order.
func (c *Classifier) MatchedKeywords(text string) []string {
	if c.matcher == nil || text == "" {
		return nil
	}
	lowered := []byte(lower(text))

	c.mu.Lock()
	hits := c.matcher.Match(lowered)
	c.mu.Unlock()

	seen := make([]bool, len(c.keywords))
	for _, idx := range hits {
		if idx >= 0 && idx < len(c.keywords) {
			seen[idx] = true
		}
	}
	matched := make([]string, 0, len(hits))
	for i, ok := range seen {
		if ok {
			matched = append(matched, c.keywords[i])
		}
	}
	return matched
}

// Keywords returns a copy of the normalised vocabulary.
func (c *Classifier) Keywords() []string {
	out := make([]string, len(c.keywords))
	copy(out, c.keywords)
	return out
}

// Len returns the vocabulary size.
func (c *Classifier) Len() int {
	return len(c.keywords)
}

func normalizeKeywords(keywords []string) []string {
	seen := make(map[string]bool, len(keywords))
	out := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = lower(strings.TrimSpace(kw))
		if kw == "" || seen[kw] {
			continue
		}
		seen[kw] = true
		out = append(out, kw)
	}
	return out
}

// lower applies Unicode lowercasing. A Caser is stateful, so one is made per call.
func lower(s string) string {
	return cases.Lower(language.Und).String(s)
}
