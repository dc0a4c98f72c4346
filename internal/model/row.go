package model

// Columns is the header of the output spreadsheet, in order.
// No other column is ever persisted.
var Columns = []string{"Name", "Age", "Crime", "Article", "Date"}

// OutputRow is one row of the output spreadsheet.
type OutputRow struct {
	Name       string `json:"name"`
	Age        string `json:"age"`
	Crime      string `json:"crime"`
	ArticleURL string `json:"article"`
	Date       string `json:"date"`
}

// NewOutputRow builds a row for a suspect found in the given article.
func NewOutputRow(s SuspectRecord, link ArticleLink, content ArticleContent) OutputRow {
	return OutputRow{
		Name:       s.Name,
		Age:        s.Age,
		Crime:      s.Crime,
		ArticleURL: link.URL,
		Date:       content.PublishedDate,
	}
}

// RowKey is the identity of an OutputRow within one run.
// Rows for different articles never collide, even for the same person.
type RowKey struct {
	Name       string
	Age        string
	ArticleURL string
}

// Key returns the identity key of the row.
func (r OutputRow) Key() RowKey {
	return RowKey{Name: r.Name, Age: r.Age, ArticleURL: r.ArticleURL}
}

// Values returns the cell values in Columns order.
func (r OutputRow) Values() []string {
	return []string{r.Name, r.Age, r.Crime, r.ArticleURL, r.Date}
}

// ResultSet is the ordered, deduplicated set of rows produced by one run.
// Insertion order is crawl order. The zero value is not usable; call
// NewResultSet.
type ResultSet struct {
	rows []OutputRow
	seen map[RowKey]struct{}
}

// NewResultSet creates an empty ResultSet.
func NewResultSet() *ResultSet {
	return &ResultSet{
		rows: make([]OutputRow, 0),
		seen: make(map[RowKey]struct{}),
	}
}

// Add appends the row unless a row with the same key was already added.
// It reports whether the row was appended.
func (rs *ResultSet) Add(row OutputRow) bool {
	key := row.Key()
	if _, ok := rs.seen[key]; ok {
		return false
	}
	rs.seen[key] = struct{}{}
	rs.rows = append(rs.rows, row)
	return true
}

// Contains reports whether a row with the given key is present.
func (rs *ResultSet) Contains(key RowKey) bool {
	_, ok := rs.seen[key]
	return ok
}

// Rows returns a copy of the rows in insertion order.
func (rs *ResultSet) Rows() []OutputRow {
	out := make([]OutputRow, len(rs.rows))
	copy(out, rs.rows)
	return out
}

// Len returns the number of rows.
func (rs *ResultSet) Len() int {
	return len(rs.rows)
}

// IsEmpty reports whether the set has no rows.
func (rs *ResultSet) IsEmpty() bool {
	return len(rs.rows) == 0
}
