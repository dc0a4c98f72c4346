package extract

import (
	"regexp"
	"strings"

	"github.com/nao1215/blotter/internal/model"
)

// Strategy is one way of finding suspects in article text.
type Strategy interface {
	// Name identifies the strategy in records and logs.
	Name() string

	// Extract returns the records found in text, or nil.
	Extract(text string) []model.SuspectRecord
}

// Extractor runs strategies in order and returns the records of the first
// strategy that finds any.
type Extractor struct {
	strategies []Strategy
}

// New builds the default two-tier extractor from the given patterns.
// Empty lists in p are filled from DefaultPatterns.
func New(p Patterns) (*Extractor, error) {
	p = p.WithDefaults()

	primary, err := NewPrimaryStrategy(p.ChargeWords)
	if err != nil {
		return nil, err
	}
	fallback, err := NewFallbackStrategy(p.CuePhrases,
		WithNamePattern(p.NamePattern),
		WithAgePattern(p.AgePattern),
	)
	if err != nil {
		return nil, err
	}
	return NewWithStrategies(primary, fallback), nil
}

// NewDefault builds the extractor over DefaultPatterns.
func NewDefault() *Extractor {
	e, err := New(DefaultPatterns())
	if err != nil {
		panic(err) // built-in patterns always compile
	}
	return e
}

// NewWithStrategies builds an extractor over an explicit strategy list.
func NewWithStrategies(strategies ...Strategy) *Extractor {
	return &Extractor{strategies: strategies}
}

// Extract returns the suspects found in text. The result is empty when no
// strategy matched, which is a normal outcome.
func (e *Extractor) Extract(text string) []model.SuspectRecord {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	for _, s := range e.strategies {
		if records := s.Extract(text); len(records) > 0 {
			return records
		}
	}
	return nil
}

// StrategyNames returns the strategy names in precedence order.
func (e *Extractor) StrategyNames() []string {
	names := make([]string, len(e.strategies))
	for i, s := range e.strategies {
		names[i] = s.Name()
	}
	return names
}

// PrimaryStrategy matches "Name, age ... charge-word" and returns every match.
type PrimaryStrategy struct {
	re *regexp.Regexp
}

// NewPrimaryStrategy compiles the primary pattern over the given charge words.
func NewPrimaryStrategy(chargeWords []string) (*PrimaryStrategy, error) {
	re, err := compilePrimary(chargeWords)
	if err != nil {
		return nil, err
	}
	return &PrimaryStrategy{re: re}, nil
}

// Name returns the strategy name.
func (s *PrimaryStrategy) Name() string {
	return StrategyPrimary
}

// Extract returns one record per non-overlapping match.
func (s *PrimaryStrategy) Extract(text string) []model.SuspectRecord {
	matches := s.re.FindAllStringSubmatch(text, -1)
	if len(matches) == 0 {
		return nil
	}
	records := make([]model.SuspectRecord, 0, len(matches))
	for _, m := range matches {
		records = append(records, model.SuspectRecord{
			Name:     strings.TrimSpace(m[1]),
			Age:      strings.TrimSpace(m[2]),
			Crime:    strings.TrimSpace(m[3]),
			Strategy: StrategyPrimary,
		})
	}
	return records
}

// FallbackStrategy finds at most one record from a cue phrase, the first
// capitalised name and the first age in the text.
type FallbackStrategy struct {
	cue  *regexp.Regexp
	name *regexp.Regexp
	age  *regexp.Regexp
}

// fallbackConfig holds the expressions of a FallbackStrategy.
type fallbackConfig struct {
	namePattern string
	agePattern  string
}

// FallbackOption configures a FallbackStrategy.
type FallbackOption func(*fallbackConfig)

// WithNamePattern replaces the name expression. An empty expr keeps
// DefaultNamePattern.
func WithNamePattern(expr string) FallbackOption {
	return func(c *fallbackConfig) {
		if expr != "" {
			c.namePattern = expr
		}
	}
}

// WithAgePattern replaces the age expression. An empty expr keeps
// DefaultAgePattern.
func WithAgePattern(expr string) FallbackOption {
	return func(c *fallbackConfig) {
		if expr != "" {
			c.agePattern = expr
		}
	}
}

// NewFallbackStrategy compiles the fallback cue, name and age patterns.
func NewFallbackStrategy(cuePhrases []string, opts ...FallbackOption) (*FallbackStrategy, error) {
	cfg := &fallbackConfig{
		namePattern: DefaultNamePattern,
		agePattern:  DefaultAgePattern,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	cue, err := compileCue(cuePhrases)
	if err != nil {
		return nil, err
	}
	name, err := compileCapture("name", cfg.namePattern)
	if err != nil {
		return nil, err
	}
	age, err := compileCapture("age", cfg.agePattern)
	if err != nil {
		return nil, err
	}
	return &FallbackStrategy{cue: cue, name: name, age: age}, nil
}

// Name returns the strategy name.
func (s *FallbackStrategy) Name() string {
	return StrategyFallback
}

// Extract returns a single record when a cue phrase is present. Name and age
// are searched across the whole text and left empty when not found.
func (s *FallbackStrategy) Extract(text string) []model.SuspectRecord {
	crime := s.cue.FindStringSubmatch(text)
	if crime == nil {
		return nil
	}
	record := model.SuspectRecord{
		Crime:    strings.TrimSpace(crime[1]),
		Strategy: StrategyFallback,
	}
	if m := s.name.FindStringSubmatch(text); m != nil {
		record.Name = m[1]
	}
	if m := s.age.FindStringSubmatch(text); m != nil {
		record.Age = m[1]
	}
	return []model.SuspectRecord{record}
}
