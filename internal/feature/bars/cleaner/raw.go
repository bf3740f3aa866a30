package cleaner

import "time"

// RawRow is one loosely typed row as delivered by a data provider.
// The date key for a row may arrive in three forms, tried in order:
// a date-typed index (Time), a "date" cell, or a raw string index.
type RawRow struct {
	Time  time.Time      // date-typed row index; zero when absent
	Index string         // raw row index as text; empty when absent
	Cells map[string]any // column name -> raw cell value (string, float, ...)
}

// RawTable is an untrusted table of provider rows. Columns lists the
// column names the provider claims to deliver; the cleaner validates the
// canonical OHLCV set against it before touching any row.
type RawTable struct {
	Columns []string
	Rows    []RawRow
}

// Empty reports whether the table has no rows.
func (t RawTable) Empty() bool { return len(t.Rows) == 0 }

// HasColumn reports whether the table declares the given column name.
// Column names are case-sensitive by contract (canonical set is lowercase).
func (t RawTable) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}
