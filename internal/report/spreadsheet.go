package report

import (
	"errors"
	"fmt"
	"os"

	"github.com/mattn/go-runewidth"
	"github.com/nao1215/blotter/internal/model"
	"github.com/xuri/excelize/v2"
)

// SheetName is the name of the only sheet in the output workbook.
const SheetName = "Crimes"

// widthPadding is added to the widest cell of every column.
const widthPadding = 2

// ErrInvalidHeader is returned when a workbook does not start with the
// expected header row.
var ErrInvalidHeader = errors.New("unexpected spreadsheet header")

// SpreadsheetWriter writes result rows to an xlsx workbook.
type SpreadsheetWriter struct {
	sheet string
}

// SpreadsheetOption configures a SpreadsheetWriter.
type SpreadsheetOption func(*SpreadsheetWriter)

// WithSheetName overrides the sheet name.
func WithSheetName(name string) SpreadsheetOption {
	return func(w *SpreadsheetWriter) {
		if name != "" {
			w.sheet = name
		}
	}
}

// NewSpreadsheetWriter creates a SpreadsheetWriter.
func NewSpreadsheetWriter(opts ...SpreadsheetOption) *SpreadsheetWriter {
	w := &SpreadsheetWriter{sheet: SheetName}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write replaces the file at path with a workbook holding the header row and
// one row per OutputRow. An empty row slice produces a header-only workbook.
// Every column is sized to its widest cell plus padding and the header row
// is frozen.
func (w *SpreadsheetWriter) Write(rows []model.OutputRow, path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove previous output: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close() //nolint:errcheck

	if err := f.SetSheetName("Sheet1", w.sheet); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}

	if err := w.writeRow(f, 1, model.Columns); err != nil {
		return err
	}
	for i, r := range rows {
		if err := w.writeRow(f, i+2, r.Values()); err != nil {
			return err
		}
	}

	for i, width := range ColumnWidths(rows) {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(w.sheet, col, col, float64(width)); err != nil {
			return fmt.Errorf("set width of column %s: %w", col, err)
		}
	}

	if err := f.SetPanes(w.sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("freeze header: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// writeRow writes string cells into the given 1-based row.
func (w *SpreadsheetWriter) writeRow(f *excelize.File, row int, values []string) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellStr(w.sheet, cell, v); err != nil {
			return fmt.Errorf("write %s: %w", cell, err)
		}
	}
	return nil
}

// ColumnWidths returns the widths Write assigns to each column for rows.
// No width exceeds excelize.MaxColumnWidth.
func ColumnWidths(rows []model.OutputRow) []int {
	widths := make([]int, len(model.Columns))
	measure := func(values []string) {
		for i, v := range values {
			if n := runewidth.StringWidth(v); n > widths[i] {
				widths[i] = n
			}
		}
	}
	measure(model.Columns)
	for _, r := range rows {
		measure(r.Values())
	}
	for i := range widths {
		widths[i] = min(widths[i]+widthPadding, excelize.MaxColumnWidth)
	}
	return widths
}

// ReadSpreadsheet loads the rows of a workbook written by SpreadsheetWriter.
func ReadSpreadsheet(path string) ([]model.OutputRow, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrInvalidHeader)
	}
	grid, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	if len(grid) == 0 || !headerMatches(grid[0]) {
		return nil, fmt.Errorf("%s: %w", path, ErrInvalidHeader)
	}

	rows := make([]model.OutputRow, 0, len(grid)-1)
	for _, cells := range grid[1:] {
		// GetRows trims trailing empty cells.
		for len(cells) < len(model.Columns) {
			cells = append(cells, "")
		}
		rows = append(rows, model.OutputRow{
			Name:       cells[0],
			Age:        cells[1],
			Crime:      cells[2],
			ArticleURL: cells[3],
			Date:       cells[4],
		})
	}
	return rows, nil
}

func headerMatches(cells []string) bool {
	if len(cells) != len(model.Columns) {
		return false
	}
	for i, c := range cells {
		if c != model.Columns[i] {
			return false
		}
	}
	return true
}
