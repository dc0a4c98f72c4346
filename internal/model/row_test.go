package model

import (
	"testing"
)

// TestResultSet tests identity-key deduplication and ordering.
func TestResultSet(t *testing.T) {
	t.Parallel()

	t.Run("new set is empty", func(t *testing.T) {
		t.Parallel()

		rs := NewResultSet()
		if !rs.IsEmpty() {
			t.Error("expected empty result set")
		}
		if rs.Len() != 0 {
			t.Errorf("expected 0 rows, got %d", rs.Len())
		}
	})

	t.Run("same name and age in same article is a duplicate even if crime differs", func(t *testing.T) {
		t.Parallel()

		rs := NewResultSet()
		first := OutputRow{Name: "John Smith", Age: "34", Crime: "robbery", ArticleURL: "https://example.com/n/1"}
		second := OutputRow{Name: "John Smith", Age: "34", Crime: "assault", ArticleURL: "https://example.com/n/1"}

		if !rs.Add(first) {
			t.Fatal("expected first row to be added")
		}
		if rs.Add(second) {
			t.Error("expected second row to be rejected as duplicate")
		}
		if rs.Len() != 1 {
			t.Errorf("expected 1 row, got %d", rs.Len())
		}
		if rs.Rows()[0].Crime != "robbery" {
			t.Errorf("expected first crime to be kept, got %q", rs.Rows()[0].Crime)
		}
	})

	t.Run("same person in different articles is kept", func(t *testing.T) {
		t.Parallel()

		rs := NewResultSet()
		rs.Add(OutputRow{Name: "John Smith", Age: "34", ArticleURL: "https://example.com/n/1"})
		rs.Add(OutputRow{Name: "John Smith", Age: "34", ArticleURL: "https://example.com/n/2"})

		if rs.Len() != 2 {
			t.Errorf("expected 2 rows, got %d", rs.Len())
		}
	})

	t.Run("rows with absent name and age dedupe per article", func(t *testing.T) {
		t.Parallel()

		rs := NewResultSet()
		rs.Add(OutputRow{Crime: "theft", ArticleURL: "https://example.com/n/1"})
		if rs.Add(OutputRow{Crime: "fraud", ArticleURL: "https://example.com/n/1"}) {
			t.Error("expected duplicate anonymous row to be rejected")
		}
	})

	t.Run("preserves insertion order", func(t *testing.T) {
		t.Parallel()

		rs := NewResultSet()
		names := []string{"Charlie Brown", "Alice Jones", "Bob Lee"}
		for _, n := range names {
			rs.Add(OutputRow{Name: n, ArticleURL: "https://example.com/n/1"})
		}

		for i, row := range rs.Rows() {
			if row.Name != names[i] {
				t.Errorf("row %d: got %q, expected %q", i, row.Name, names[i])
			}
		}
	})

	t.Run("rows returns a copy", func(t *testing.T) {
		t.Parallel()

		rs := NewResultSet()
		rs.Add(OutputRow{Name: "Alice Jones", ArticleURL: "u"})
		rows := rs.Rows()
		rows[0].Name = "changed"

		if rs.Rows()[0].Name != "Alice Jones" {
			t.Error("expected result set to be unaffected by caller mutation")
		}
	})

	t.Run("contains reports known keys", func(t *testing.T) {
		t.Parallel()

		rs := NewResultSet()
		row := OutputRow{Name: "Alice Jones", Age: "22", ArticleURL: "u"}
		rs.Add(row)

		if !rs.Contains(row.Key()) {
			t.Error("expected key to be present")
		}
		if rs.Contains(RowKey{Name: "Alice Jones", Age: "23", ArticleURL: "u"}) {
			t.Error("expected different age to be absent")
		}
	})
}

// TestOutputRowValues tests the column order of a row.
func TestOutputRowValues(t *testing.T) {
	t.Parallel()

	row := NewOutputRow(
		SuspectRecord{Name: "Jane Doe", Age: "29", Crime: "theft"},
		ArticleLink{URL: "https://example.com/n/7", Title: "ignored"},
		ArticleContent{Text: "ignored", PublishedDate: "June 3, 2024"},
	)

	got := row.Values()
	want := []string{"Jane Doe", "29", "theft", "https://example.com/n/7", "June 3, 2024"}

	if len(got) != len(Columns) {
		t.Fatalf("expected %d values, got %d", len(Columns), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("value %d (%s): got %q, expected %q", i, Columns[i], got[i], want[i])
		}
	}
}

// TestRunSummary tests summary bookkeeping.
func TestRunSummary(t *testing.T) {
	t.Parallel()

	s := NewRunSummary()
	s.ArticlesFetched = 5
	s.ArticlesWithSuspects = 2

	rs := NewResultSet()
	rs.Add(OutputRow{Name: "A B", ArticleURL: "u1"})
	rs.Add(OutputRow{Name: "C D", ArticleURL: "u2"})
	s.Finish(rs)

	if s.RowCount != 2 {
		t.Errorf("expected RowCount 2, got %d", s.RowCount)
	}
	if len(s.Rows) != 2 {
		t.Errorf("expected 2 rows, got %d", len(s.Rows))
	}
	if s.SkippedArticles() != 3 {
		t.Errorf("expected 3 skipped articles, got %d", s.SkippedArticles())
	}
	if s.Duration < 0 {
		t.Errorf("expected non-negative duration, got %v", s.Duration)
	}
}
