// Package report persists and renders the results of a run.
//
// SpreadsheetWriter writes the five-column output workbook and
// ReadSpreadsheet reads one back. The summary writers render a
// model.RunSummary for the terminal:
//   - SimpleWriter: plain text
//   - MarkdownWriter: Markdown with a row table
//   - JSONWriter: JSON for tool integration
//
// Summary writers implement the Writer interface so they can be used
// interchangeably and composed with MultiWriter.
package report
