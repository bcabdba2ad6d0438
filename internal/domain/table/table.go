// Package table holds the raw, string-typed season table read from disk.
package table

// Table is a header plus rows of cells. Rows may be shorter than the
// header; missing cells read as "".
type Table struct {
	Columns []string
	Rows    [][]string
}

// New returns a Table holding copies of columns and rows.
func New(columns []string, rows [][]string) Table {
	t := Table{
		Columns: append([]string(nil), columns...),
		Rows:    make([][]string, len(rows)),
	}
	for i, r := range rows {
		t.Rows[i] = append([]string(nil), r...)
	}
	return t
}

// Clone returns a deep copy of t.
func (t Table) Clone() Table {
	return New(t.Columns, t.Rows)
}

// Index returns the position of column name, or -1.
func (t Table) Index(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Has reports whether column name exists.
func (t Table) Has(name string) bool { return t.Index(name) >= 0 }

// Cell returns row r, column c, or "" when the row is short.
func (t Table) Cell(r, c int) string {
	if r < 0 || r >= len(t.Rows) || c < 0 || c >= len(t.Rows[r]) {
		return ""
	}
	return t.Rows[r][c]
}

// Len returns the number of data rows.
func (t Table) Len() int { return len(t.Rows) }
