package report

import (
	"encoding/json"
	"io"

	"github.com/nao1215/blotter/internal/model"
)

// JSONWriter outputs run summaries in JSON format.
type JSONWriter struct {
	baseWriter

	// indent enables pretty-printed JSON output.
	indent bool

	// withRows includes the result rows under "rows".
	withRows bool
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithPrettyPrint enables pretty-printed JSON with two-space indentation.
func WithPrettyPrint() JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
	}
}

// WithRows includes the result rows in the output.
func WithRows(include bool) JSONWriterOption {
	return func(w *JSONWriter) {
		w.withRows = include
	}
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{
		baseWriter: newBaseWriter(output),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// jsonSummary is the wire form of a summary.
type jsonSummary struct {
	*model.RunSummary
	DurationText    string            `json:"duration_text"`
	SkippedArticles int               `json:"skipped_articles"`
	Rows            []model.OutputRow `json:"rows,omitempty"`
}

// Write outputs the summary as one JSON document followed by a newline.
func (w *JSONWriter) Write(summary *model.RunSummary) (int, error) {
	doc := jsonSummary{
		RunSummary:      summary,
		DurationText:    formatDuration(summary),
		SkippedArticles: summary.SkippedArticles(),
	}
	if w.withRows {
		doc.Rows = summary.Rows
	}

	var data []byte
	var err error
	if w.indent {
		data, err = json.MarshalIndent(doc, "", "  ")
	} else {
		data, err = json.Marshal(doc)
	}
	if err != nil {
		return 0, err
	}

	data = append(data, '\n')
	return w.output.Write(data)
}
