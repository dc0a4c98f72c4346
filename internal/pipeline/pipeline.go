package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/nao1215/blotter/internal/model"
)

// Skip reasons recorded on an Article.
const (
	SkipNotCrimeRelated = "not_crime_related"
	SkipNoSuspects      = "no_suspects"
)

// Article is the per-link state that flows through the steps.
type Article struct {
	Link     model.ArticleLink
	Content  model.ArticleContent
	Fetched  bool
	Crime    bool
	Suspects []model.SuspectRecord

	// SkipReason is set by a step that ends processing without error.
	SkipReason string
}

// Skip marks the article as done with the given reason.
func (a *Article) Skip(reason string) {
	a.SkipReason = reason
}

// Skipped reports whether a step has ended processing.
func (a *Article) Skipped() bool {
	return a.SkipReason != ""
}

// Step is one stage of per-article processing.
type Step interface {
	// Do processes the article. Returning an error fails the article;
	// calling article.Skip ends processing without failure.
	Do(ctx context.Context, article *Article) error

	// Name returns the step's name for logging purposes.
	Name() string
}

// LinkSource supplies the article links of a run.
type LinkSource interface {
	Collect(ctx context.Context, maxLinks int) ([]model.ArticleLink, error)
}

// Runner runs a complete scrape.
type Runner interface {
	Run(ctx context.Context, maxLinks int) (*model.ResultSet, *model.RunSummary, error)
}

// Pipeline orchestrates a run. It implements Runner.
type Pipeline struct {
	// source yields the links to process.
	source LinkSource

	// steps contains the ordered list of steps to execute per article.
	steps []Step

	// logger is used for structured logging during execution.
	logger *slog.Logger

	// continueOnError skips a failing article instead of aborting the run.
	continueOnError bool
}

// Option is a function that configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets a custom logger for the pipeline.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// WithContinueOnError isolates article failures: a failing article is
// logged and counted, and the run continues with the next one.
func WithContinueOnError(continueOnError bool) Option {
	return func(p *Pipeline) {
		p.continueOnError = continueOnError
	}
}

// New creates a Pipeline reading links from source.
// Steps should be added using AddStep after creation.
func New(source LinkSource, opts ...Option) *Pipeline {
	p := &Pipeline{
		source: source,
		steps:  make([]Step, 0),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	return p
}

// AddStep appends a step to the pipeline.
// Steps are executed in the order they are added.
func (p *Pipeline) AddStep(step Step) {
	p.steps = append(p.steps, step)
}

// AddSteps appends multiple steps to the pipeline.
func (p *Pipeline) AddSteps(steps ...Step) {
	p.steps = append(p.steps, steps...)
}

// Run collects up to maxLinks links and processes each article in order.
// The returned summary is populated even when err is non-nil.
func (p *Pipeline) Run(ctx context.Context, maxLinks int) (*model.ResultSet, *model.RunSummary, error) {
	summary := model.NewRunSummary()
	results := model.NewResultSet()

	links, err := p.source.Collect(ctx, maxLinks)
	if err != nil {
		summary.Finish(nil)
		return nil, summary, fmt.Errorf("collect links: %w", err)
	}
	summary.LinksCollected = len(links)
	p.logger.Info("links collected", "count", len(links), "requested", maxLinks)

	for _, link := range links {
		article := &Article{Link: link}

		if err := p.Process(ctx, article); err != nil {
			if !p.continueOnError || ctx.Err() != nil {
				summary.Finish(results)
				return nil, summary, fmt.Errorf("article %s: %w", link.URL, err)
			}
			summary.FailedArticles++
			p.logger.Warn("article failed, continuing",
				"url", link.URL,
				"error", err,
			)
			continue
		}

		if article.Fetched {
			summary.ArticlesFetched++
		}
		if article.Crime {
			summary.CrimeArticles++
		}
		if article.Skipped() {
			p.logger.Info("article skipped",
				"url", link.URL,
				"reason", article.SkipReason,
			)
			continue
		}
		if len(article.Suspects) > 0 {
			summary.ArticlesWithSuspects++
		}

		for _, s := range article.Suspects {
			if !results.Add(model.NewOutputRow(s, article.Link, article.Content)) {
				summary.DuplicatesSkipped++
			}
		}
	}

	summary.Finish(results)
	p.logger.Info("run complete",
		"rows", results.Len(),
		"articles", summary.ArticlesFetched,
		"duplicates", summary.DuplicatesSkipped,
		"failed", summary.FailedArticles,
	)
	return results, summary, nil
}

// Process runs every step over one article, stopping at the first error
// or skip. Context cancellation is checked before each step.
func (p *Pipeline) Process(ctx context.Context, article *Article) error {
	for _, step := range p.steps {
		if err := ctx.Err(); err != nil {
			p.logger.Warn("pipeline cancelled",
				"step", step.Name(),
				"reason", err,
			)
			return err
		}

		if err := step.Do(ctx, article); err != nil {
			p.logger.Error("step failed",
				"step", step.Name(),
				"url", article.Link.URL,
				"error", err,
			)
			return fmt.Errorf("%s: %w", step.Name(), err)
		}
		p.logger.Debug("step completed",
			"step", step.Name(),
			"url", article.Link.URL,
		)

		if article.Skipped() {
			return nil
		}
	}
	return nil
}

// StepCount returns the number of steps in the pipeline.
func (p *Pipeline) StepCount() int {
	return len(p.steps)
}

// StepNames returns the names of all steps in execution order.
func (p *Pipeline) StepNames() []string {
	names := make([]string, len(p.steps))
	for i, step := range p.steps {
		names[i] = step.Name()
	}
	return names
}
