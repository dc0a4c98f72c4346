// Package model defines the data structures shared by the crawler, the
// extractor, the pipeline and the report writers.
//
// This package contains the following main types:
//   - ArticleLink: A news-release link discovered on a listing page
//   - ArticleContent: The visible text and publication date of one article
//   - SuspectRecord: A name/age/charge candidate pulled out of article text
//   - OutputRow: One spreadsheet row, identified by (name, age, article URL)
//   - ResultSet: The ordered, deduplicated rows of one pipeline run
//   - RunSummary: Counters describing how a run went
//
// Optional string fields (a suspect's name or age, a listed or published
// date) use the empty string for "absent".
package model
