package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/nao1215/blotter/internal/model"
)

// SimpleWriter outputs human-readable run summaries for the terminal.
type SimpleWriter struct {
	baseWriter

	// verbose lists every row after the counters.
	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithVerbose enables the row listing.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs the summary in plain text.
func (w *SimpleWriter) Write(summary *model.RunSummary) (int, error) {
	var sb strings.Builder

	sb.WriteString(strings.Repeat("=", 60) + "\n")
	sb.WriteString("BLOTTER RUN SUMMARY\n")
	sb.WriteString(strings.Repeat("=", 60) + "\n")
	fmt.Fprintf(&sb, "Started:            %s\n", summary.StartedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&sb, "Duration:           %s\n", formatDuration(summary))
	fmt.Fprintf(&sb, "Links collected:    %d\n", summary.LinksCollected)
	fmt.Fprintf(&sb, "Articles fetched:   %d\n", summary.ArticlesFetched)
	fmt.Fprintf(&sb, "Crime related:      %d\n", summary.CrimeArticles)
	fmt.Fprintf(&sb, "With suspects:      %d\n", summary.ArticlesWithSuspects)
	fmt.Fprintf(&sb, "Skipped:            %d\n", summary.SkippedArticles())
	if summary.FailedArticles > 0 {
		fmt.Fprintf(&sb, "Failed:             %d\n", summary.FailedArticles)
	}
	fmt.Fprintf(&sb, "Duplicates skipped: %d\n", summary.DuplicatesSkipped)
	fmt.Fprintf(&sb, "Rows written:       %d\n", summary.RowCount)
	if summary.OutputPath != "" {
		fmt.Fprintf(&sb, "Output:             %s\n", summary.OutputPath)
	}

	if w.verbose && len(summary.Rows) > 0 {
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat("-", 60) + "\n")
		for i, r := range summary.Rows {
			fmt.Fprintf(&sb, "%3d. %s (%s) %s\n", i+1, r.Name, r.Age, r.Crime)
			fmt.Fprintf(&sb, "     %s", r.ArticleURL)
			if r.Date != "" {
				fmt.Fprintf(&sb, " [%s]", r.Date)
			}
			sb.WriteString("\n")
		}
	}

	return io.WriteString(w.output, sb.String())
}
