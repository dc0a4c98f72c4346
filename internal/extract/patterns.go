package extract

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalidPattern is returned when a word list cannot form a usable pattern.
var ErrInvalidPattern = errors.New("invalid extraction pattern")

// Strategy names recorded on each SuspectRecord.
const (
	StrategyPrimary  = "primary"
	StrategyFallback = "fallback"
)

// defaultChargeWords are the charge categories the primary pattern accepts
// after a "Name, age" pair. Matching is case-insensitive and the matched word
// itself becomes the crime field.
var defaultChargeWords = []string{
	"murder", "assault", "homicide", "robbery", "theft", "firearm", "weapon",
	"traffick", "dui", "impaired", "sexual", "drug", "dangerous driving",
	"driving", "fail to remain",
}

// defaultCuePhrases introduce a charge description in the fallback path.
var defaultCuePhrases = []string{
	"charged with", "arrested for", "suspected of", "wanted for",
}

// Patterns is the configurable vocabulary of the extractor.
type Patterns struct {
	// ChargeWords end a primary match. Order matters only between words
	// that can start at the same position.
	ChargeWords []string `yaml:"chargeWords,omitempty"`

	// CuePhrases start a fallback charge description.
	CuePhrases []string `yaml:"cuePhrases,omitempty"`

	// NamePattern finds the fallback name. Group 1 is the name.
	NamePattern string `yaml:"namePattern,omitempty"`

	// AgePattern finds the fallback age. Group 1 is the age.
	AgePattern string `yaml:"agePattern,omitempty"`
}

// DefaultPatterns returns a fresh copy of the built-in vocabulary.
func DefaultPatterns() Patterns {
	return Patterns{
		ChargeWords: append([]string(nil), defaultChargeWords...),
		CuePhrases:  append([]string(nil), defaultCuePhrases...),
		NamePattern: DefaultNamePattern,
		AgePattern:  DefaultAgePattern,
	}
}

// WithDefaults fills empty lists from DefaultPatterns.
func (p Patterns) WithDefaults() Patterns {
	d := DefaultPatterns()
	if len(p.ChargeWords) == 0 {
		p.ChargeWords = d.ChargeWords
	}
	if len(p.CuePhrases) == 0 {
		p.CuePhrases = d.CuePhrases
	}
	if p.NamePattern == "" {
		p.NamePattern = d.NamePattern
	}
	if p.AgePattern == "" {
		p.AgePattern = d.AgePattern
	}
	return p
}

// nameWord is one title-cased word: an uppercase letter followed by
// letters, digits, underscores, apostrophes or hyphens.
const nameWord = `\p{Lu}[\p{L}\p{N}_'’\-]+`

// Default fallback expressions.
const (
	// DefaultNamePattern is the first 2-3 word capitalised phrase.
	DefaultNamePattern = `\b([A-Z][a-z]+(?: [A-Z][a-z]+){1,2})\b`

	// DefaultAgePattern accepts "29-year-old", "29 year old" and "29 years old".
	DefaultAgePattern = `(?i)\b(\d{1,3})[-\s]*(?:years?|yrs)[-\s]?old\b`
)

// compileCapture compiles expr and requires a first capture group.
func compileCapture(kind, expr string) (*regexp.Regexp, error) {
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("%w: %s pattern: %w", ErrInvalidPattern, kind, err)
	}
	if re.NumSubexp() < 1 {
		return nil, fmt.Errorf("%w: %s pattern %q has no capture group", ErrInvalidPattern, kind, expr)
	}
	return re, nil
}

// compilePrimary builds the "Name, age ... charge-word" pattern.
func compilePrimary(chargeWords []string) (*regexp.Regexp, error) {
	alt, err := alternation(chargeWords)
	if err != nil {
		return nil, fmt.Errorf("%w: charge words: %w", ErrInvalidPattern, err)
	}
	expr := `(` + nameWord + `(?: ` + nameWord + `){0,2}),\s*(\d{1,3}).{0,80}?(?i:(` + alt + `))`
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPattern, err)
	}
	return re, nil
}

// compileCue builds the "cue phrase + description up to a period" pattern.
func compileCue(cuePhrases []string) (*regexp.Regexp, error) {
	alt, err := alternation(cuePhrases)
	if err != nil {
		return nil, fmt.Errorf("%w: cue phrases: %w", ErrInvalidPattern, err)
	}
	re, err := regexp.Compile(`(?i)(?:` + alt + `)\s+(.{5,80}?)\.`)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPattern, err)
	}
	return re, nil
}

// alternation quotes each non-empty word and joins them with "|".
func alternation(words []string) (string, error) {
	quoted := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.TrimSpace(w)
		if w == "" {
			continue
		}
		quoted = append(quoted, regexp.QuoteMeta(w))
	}
	if len(quoted) == 0 {
		return "", errors.New("empty word list")
	}
	return strings.Join(quoted, "|"), nil
}
