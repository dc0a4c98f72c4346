package report

import (
	"io"
	"strconv"

	"github.com/nao1215/blotter/internal/model"
	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
)

// MarkdownWriter outputs run summaries in Markdown format.
type MarkdownWriter struct {
	baseWriter

	// chart adds a mermaid pie chart of article outcomes.
	chart bool

	// rows adds the suspects table.
	rows bool
}

// MarkdownWriterOption configures a MarkdownWriter.
type MarkdownWriterOption func(*MarkdownWriter)

// WithChart enables the article outcome pie chart.
func WithChart(enabled bool) MarkdownWriterOption {
	return func(w *MarkdownWriter) {
		w.chart = enabled
	}
}

// WithRowTable controls the suspects table. It is on by default.
func WithRowTable(enabled bool) MarkdownWriterOption {
	return func(w *MarkdownWriter) {
		w.rows = enabled
	}
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer, opts ...MarkdownWriterOption) *MarkdownWriter {
	w := &MarkdownWriter{
		baseWriter: newBaseWriter(output),
		rows:       true,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs the summary followed by the rows table.
func (w *MarkdownWriter) Write(summary *model.RunSummary) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Blotter Run")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Started", summary.StartedAt.Format("2006-01-02 15:04:05 MST")},
			{"Duration", formatDuration(summary)},
			{"Links Collected", strconv.Itoa(summary.LinksCollected)},
			{"Articles Fetched", strconv.Itoa(summary.ArticlesFetched)},
			{"Crime Related", strconv.Itoa(summary.CrimeArticles)},
			{"With Suspects", strconv.Itoa(summary.ArticlesWithSuspects)},
			{"Rows", strconv.Itoa(summary.RowCount)},
			{"Duplicates Skipped", strconv.Itoa(summary.DuplicatesSkipped)},
			{"Failed Articles", strconv.Itoa(summary.FailedArticles)},
			{"Output", outputText(summary)},
		},
	})
	md.PlainText("")

	if w.chart && summary.ArticlesFetched > 0 {
		w.writePieChart(md, summary)
	}

	if w.rows {
		w.writeRows(md, summary)
	}

	return len(md.String()), md.Build()
}

// writeRows writes the suspects section.
func (w *MarkdownWriter) writeRows(md *markdown.Markdown, summary *model.RunSummary) {
	md.H2("Suspects")
	md.PlainText("")
	if len(summary.Rows) == 0 {
		md.Note("No suspect records were found in this run.")
		md.PlainText("")
		return
	}
	md.Table(RowsTable(summary.Rows))
	md.PlainText("")
}

// writePieChart writes a mermaid pie chart of what happened to each article.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, summary *model.RunSummary) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle("Article Outcomes"),
		piechart.WithShowData(true),
	)

	notCrime := summary.ArticlesFetched - summary.CrimeArticles
	noSuspects := summary.CrimeArticles - summary.ArticlesWithSuspects
	if summary.ArticlesWithSuspects > 0 {
		chart.LabelAndIntValue("With suspects", uint64(summary.ArticlesWithSuspects))
	}
	if noSuspects > 0 {
		chart.LabelAndIntValue("No suspects", uint64(noSuspects))
	}
	if notCrime > 0 {
		chart.LabelAndIntValue("Not crime related", uint64(notCrime))
	}
	if summary.FailedArticles > 0 {
		chart.LabelAndIntValue("Failed", uint64(summary.FailedArticles))
	}

	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// RowsTable converts rows into a Markdown table under the spreadsheet header.
func RowsTable(rows []model.OutputRow) markdown.TableSet {
	set := markdown.TableSet{
		Header: append([]string(nil), model.Columns...),
		Rows:   make([][]string, 0, len(rows)),
	}
	for _, r := range rows {
		set.Rows = append(set.Rows, cellsOrDash(r.Values()))
	}
	return set
}

// cellsOrDash replaces empty cells with "-".
func cellsOrDash(cells []string) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		if c == "" {
			c = "-"
		}
		out[i] = c
	}
	return out
}

func outputText(summary *model.RunSummary) string {
	if summary.OutputPath == "" {
		return "-"
	}
	return "`" + summary.OutputPath + "`"
}
