// Package report assembles, persists, and reloads missingness reports.
//
// A report has one row per field path, in depth-first schema order:
// the missing count, the keys of every row with the field missing, and
// the percentage of rows affected. Reports are immutable once built and
// safe to share across goroutines.
package report

import (
	"github.com/dbsmedya/gomissing/internal/dataset"
)

// Row is one line of the report. The four columns and their order are
// the persisted cache contract.
type Row struct {
	Field          string        `json:"field"`
	Counts         int64         `json:"counts"`
	MissingKeys    []dataset.Key `json:"missing_keys"`
	MissingPercent float64       `json:"missing_percent"`
}

// Report is the ordered collection of report rows.
type Report struct {
	rows      []Row
	totalRows int64 // zero when the report was loaded from cache
}

// Rows returns the report rows in depth-first schema order.
func (r *Report) Rows() []Row {
	out := make([]Row, len(r.rows))
	copy(out, r.rows)
	return out
}

// Len returns the number of field paths in the report.
func (r *Report) Len() int {
	return len(r.rows)
}

// Counts returns a field-path to missing-count view of the report.
func (r *Report) Counts() map[string]int64 {
	counts := make(map[string]int64, len(r.rows))
	for _, row := range r.rows {
		counts[row.Field] = row.Counts
	}
	return counts
}

// Row returns the report row for a field path.
func (r *Report) Row(field string) (Row, bool) {
	for _, row := range r.rows {
		if row.Field == field {
			return row, true
		}
	}
	return Row{}, false
}

// TotalRows returns the dataset row count the report was computed over,
// or zero for a report loaded from cache.
func (r *Report) TotalRows() int64 {
	return r.totalRows
}
