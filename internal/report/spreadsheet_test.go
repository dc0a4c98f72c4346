package report

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/nao1215/blotter/internal/model"
	"github.com/xuri/excelize/v2"
)

func sampleRows() []model.OutputRow {
	return []model.OutputRow{
		{Name: "John Smith", Age: "34", Crime: "robbery", ArticleURL: "https://www.tps.ca/media-centre/news-releases/101/", Date: "January 5, 2024"},
		{Name: "Jane Doe", Age: "25", Crime: "assault", ArticleURL: "https://www.tps.ca/media-centre/news-releases/102/", Date: ""},
		{Name: "Mark Lee", Age: "41", Crime: "impaired", ArticleURL: "https://www.tps.ca/media-centre/news-releases/103/", Date: "March 1, 2024"},
	}
}

func TestSpreadsheetWriter(t *testing.T) {
	t.Parallel()

	t.Run("round trips rows under the fixed header", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "out.xlsx")
		rows := sampleRows()
		if err := NewSpreadsheetWriter().Write(rows, path); err != nil {
			t.Fatalf("Write() error = %v", err)
		}

		got, err := ReadSpreadsheet(path)
		if err != nil {
			t.Fatalf("ReadSpreadsheet() error = %v", err)
		}
		if !reflect.DeepEqual(got, rows) {
			t.Errorf("ReadSpreadsheet() = %+v, want %+v", got, rows)
		}
	})

	t.Run("empty input writes header only", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "empty.xlsx")
		if err := NewSpreadsheetWriter().Write(nil, path); err != nil {
			t.Fatalf("Write() error = %v", err)
		}

		f, err := excelize.OpenFile(path)
		if err != nil {
			t.Fatalf("OpenFile() error = %v", err)
		}
		defer f.Close() //nolint:errcheck

		grid, err := f.GetRows(SheetName)
		if err != nil {
			t.Fatalf("GetRows() error = %v", err)
		}
		if len(grid) != 1 {
			t.Fatalf("got %d rows, want 1", len(grid))
		}
		if !reflect.DeepEqual(grid[0], model.Columns) {
			t.Errorf("header = %v, want %v", grid[0], model.Columns)
		}
	})

	t.Run("overwrites previous output", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "out.xlsx")
		if err := os.WriteFile(path, []byte("stale"), 0o600); err != nil {
			t.Fatal(err)
		}

		w := NewSpreadsheetWriter()
		if err := w.Write(sampleRows(), path); err != nil {
			t.Fatalf("first Write() error = %v", err)
		}
		if err := w.Write(sampleRows()[:1], path); err != nil {
			t.Fatalf("second Write() error = %v", err)
		}

		got, err := ReadSpreadsheet(path)
		if err != nil {
			t.Fatalf("ReadSpreadsheet() error = %v", err)
		}
		if len(got) != 1 {
			t.Errorf("got %d rows, want 1", len(got))
		}
	})

	t.Run("sizes columns and freezes header", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "out.xlsx")
		rows := sampleRows()
		if err := NewSpreadsheetWriter().Write(rows, path); err != nil {
			t.Fatalf("Write() error = %v", err)
		}

		f, err := excelize.OpenFile(path)
		if err != nil {
			t.Fatalf("OpenFile() error = %v", err)
		}
		defer f.Close() //nolint:errcheck

		want := ColumnWidths(rows)
		for i, w := range want {
			col, _ := excelize.ColumnNumberToName(i + 1)
			got, err := f.GetColWidth(SheetName, col)
			if err != nil {
				t.Fatalf("GetColWidth(%s) error = %v", col, err)
			}
			if int(got) != w {
				t.Errorf("column %s width = %v, want %d", col, got, w)
			}
		}

		panes, err := f.GetPanes(SheetName)
		if err != nil {
			t.Fatalf("GetPanes() error = %v", err)
		}
		if !panes.Freeze || panes.YSplit != 1 || panes.TopLeftCell != "A2" {
			t.Errorf("panes = %+v, want frozen at A2", panes)
		}
	})

	t.Run("clamps column width of long cells", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "out.xlsx")
		rows := []model.OutputRow{{
			Name:       "John Smith",
			Age:        "34",
			Crime:      "robbery",
			ArticleURL: "https://www.tps.ca/media-centre/news-releases/" + strings.Repeat("a", 300) + "/101/",
			Date:       strings.Repeat("x", 300) + " 2024",
		}}
		if err := NewSpreadsheetWriter().Write(rows, path); err != nil {
			t.Fatalf("Write() error = %v", err)
		}

		f, err := excelize.OpenFile(path)
		if err != nil {
			t.Fatalf("OpenFile() error = %v", err)
		}
		defer f.Close() //nolint:errcheck

		for _, col := range []string{"D", "E"} {
			got, err := f.GetColWidth(SheetName, col)
			if err != nil {
				t.Fatalf("GetColWidth(%s) error = %v", col, err)
			}
			if got != excelize.MaxColumnWidth {
				t.Errorf("column %s width = %v, want %d", col, got, excelize.MaxColumnWidth)
			}
		}

		got, err := ReadSpreadsheet(path)
		if err != nil {
			t.Fatalf("ReadSpreadsheet() error = %v", err)
		}
		if !reflect.DeepEqual(got, rows) {
			t.Errorf("long values were not stored verbatim")
		}
	})

	t.Run("writes cells beyond the cell character limit", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "out.xlsx")
		rows := []model.OutputRow{{
			Name: "Ann Lee",
			Date: strings.Repeat("y", excelize.TotalCellChars+100),
		}}
		if err := NewSpreadsheetWriter().Write(rows, path); err != nil {
			t.Fatalf("Write() error = %v", err)
		}

		got, err := ReadSpreadsheet(path)
		if err != nil {
			t.Fatalf("ReadSpreadsheet() error = %v", err)
		}
		if len(got) != 1 {
			t.Fatalf("got %d rows, want 1", len(got))
		}
		if n := len(got[0].Date); n != excelize.TotalCellChars {
			t.Errorf("Date length = %d, want %d", n, excelize.TotalCellChars)
		}
	})

	t.Run("custom sheet name", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "out.xlsx")
		if err := NewSpreadsheetWriter(WithSheetName("Data")).Write(sampleRows(), path); err != nil {
			t.Fatalf("Write() error = %v", err)
		}
		got, err := ReadSpreadsheet(path)
		if err != nil {
			t.Fatalf("ReadSpreadsheet() error = %v", err)
		}
		if len(got) != 3 {
			t.Errorf("got %d rows, want 3", len(got))
		}
	})
}

func TestColumnWidths(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		rows []model.OutputRow
		want []int
	}{
		{
			name: "header only",
			rows: nil,
			want: []int{6, 5, 7, 9, 6},
		},
		{
			name: "widest cell wins",
			rows: []model.OutputRow{{Name: "Christopher Robin", Age: "7", Crime: "x", ArticleURL: "u", Date: "2024"}},
			want: []int{19, 5, 7, 9, 6},
		},
		{
			name: "widths stop at the column limit",
			rows: []model.OutputRow{{Date: strings.Repeat("x", 300) + " 2024"}},
			want: []int{6, 5, 7, 9, excelize.MaxColumnWidth},
		},
		{
			name: "wide runes count double",
			rows: []model.OutputRow{{Name: "山田太郎"}},
			want: []int{10, 5, 7, 9, 6},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ColumnWidths(tt.rows); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ColumnWidths() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestReadSpreadsheet(t *testing.T) {
	t.Parallel()

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()
		if _, err := ReadSpreadsheet(filepath.Join(t.TempDir(), "none.xlsx")); err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("foreign header", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "other.xlsx")
		f := excelize.NewFile()
		if err := f.SetCellStr("Sheet1", "A1", "Title"); err != nil {
			t.Fatal(err)
		}
		if err := f.SaveAs(path); err != nil {
			t.Fatal(err)
		}
		f.Close() //nolint:errcheck

		_, err := ReadSpreadsheet(path)
		if !errors.Is(err, ErrInvalidHeader) {
			t.Errorf("ReadSpreadsheet() error = %v, want ErrInvalidHeader", err)
		}
	})
}
