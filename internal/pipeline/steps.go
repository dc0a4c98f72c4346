package pipeline

import (
	"context"

	"github.com/nao1215/blotter/internal/model"
)

// ContentFetcher loads one article.
type ContentFetcher interface {
	Fetch(ctx context.Context, pageURL string) (model.ArticleContent, error)
}

// CrimeClassifier gates articles on crime vocabulary.
type CrimeClassifier interface {
	IsCrimeRelated(text string) bool
}

// SuspectExtractor pulls suspect records out of article text.
type SuspectExtractor interface {
	Extract(text string) []model.SuspectRecord
}

// FetchStep renders the article and stores its content.
type FetchStep struct {
	fetcher ContentFetcher
}

// NewFetchStep creates a FetchStep.
func NewFetchStep(fetcher ContentFetcher) *FetchStep {
	return &FetchStep{fetcher: fetcher}
}

// Name returns the step name.
func (s *FetchStep) Name() string {
	return "fetch"
}

// Do fetches the article.
func (s *FetchStep) Do(ctx context.Context, article *Article) error {
	content, err := s.fetcher.Fetch(ctx, article.Link.URL)
	if err != nil {
		return err
	}
	article.Content = content
	article.Fetched = true
	return nil
}

// ClassifyStep skips articles without crime vocabulary.
type ClassifyStep struct {
	classifier CrimeClassifier
}

// NewClassifyStep creates a ClassifyStep.
func NewClassifyStep(classifier CrimeClassifier) *ClassifyStep {
	return &ClassifyStep{classifier: classifier}
}

// Name returns the step name.
func (s *ClassifyStep) Name() string {
	return "classify"
}

// Do marks the article as crime related or skips it.
func (s *ClassifyStep) Do(_ context.Context, article *Article) error {
	if !s.classifier.IsCrimeRelated(article.Content.Text) {
		article.Skip(SkipNotCrimeRelated)
		return nil
	}
	article.Crime = true
	return nil
}

// ExtractStep finds suspects and skips articles without any.
type ExtractStep struct {
	extractor SuspectExtractor
}

// NewExtractStep creates an ExtractStep.
func NewExtractStep(extractor SuspectExtractor) *ExtractStep {
	return &ExtractStep{extractor: extractor}
}

// Name returns the step name.
func (s *ExtractStep) Name() string {
	return "extract"
}

// Do extracts suspects.
func (s *ExtractStep) Do(_ context.Context, article *Article) error {
	article.Suspects = s.extractor.Extract(article.Content.Text)
	if len(article.Suspects) == 0 {
		article.Skip(SkipNoSuspects)
	}
	return nil
}

// NewDefault builds the standard fetch, classify, extract pipeline.
func NewDefault(source LinkSource, fetcher ContentFetcher, classifier CrimeClassifier, extractor SuspectExtractor, opts ...Option) *Pipeline {
	p := New(source, opts...)
	p.AddSteps(
		NewFetchStep(fetcher),
		NewClassifyStep(classifier),
		NewExtractStep(extractor),
	)
	return p
}
