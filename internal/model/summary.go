package model

import "time"

// RunSummary describes one pipeline run.
type RunSummary struct {
	// StartedAt is when the run began.
	StartedAt time.Time `json:"started_at"`

	// Duration is the wall-clock time of the run.
	Duration time.Duration `json:"duration"`

	// LinksCollected is the number of article links the collector returned.
	LinksCollected int `json:"links_collected"`

	// ArticlesFetched is the number of articles rendered successfully.
	ArticlesFetched int `json:"articles_fetched"`

	// CrimeArticles is the number of articles that passed the keyword gate.
	CrimeArticles int `json:"crime_articles"`

	// ArticlesWithSuspects is the number of crime articles that yielded at
	// least one suspect record.
	ArticlesWithSuspects int `json:"articles_with_suspects"`

	// RowCount is the number of rows in the result set.
	RowCount int `json:"row_count"`

	// DuplicatesSkipped counts records dropped by the identity key.
	DuplicatesSkipped int `json:"duplicates_skipped"`

	// FailedArticles counts articles skipped after an error. It is only
	// non-zero when per-article isolation is enabled.
	FailedArticles int `json:"failed_articles"`

	// OutputPath is the spreadsheet written for this run, if any.
	OutputPath string `json:"output_path,omitempty"`

	// Rows holds the result rows. It is omitted from JSON summaries.
	Rows []OutputRow `json:"-"`
}

// NewRunSummary creates a summary stamped with the current time.
func NewRunSummary() *RunSummary {
	return &RunSummary{
		StartedAt: time.Now(),
		Rows:      make([]OutputRow, 0),
	}
}

// Finish records the duration and the final rows.
func (s *RunSummary) Finish(rs *ResultSet) {
	s.Duration = time.Since(s.StartedAt)
	if rs != nil {
		s.Rows = rs.Rows()
		s.RowCount = rs.Len()
	}
}

// SkippedArticles returns the number of fetched articles that produced no row
// because they were not crime-related or had no suspect pattern.
func (s *RunSummary) SkippedArticles() int {
	return s.ArticlesFetched - s.ArticlesWithSuspects
}
