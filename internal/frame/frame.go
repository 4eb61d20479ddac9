// Package frame holds the in-memory tabular structure passed between the
// extract, transform and load stages: an ordered list of column names and
// rows of dynamically typed cells.
//
// Cells are one of string, int64, float64, or nil. nil is the null marker;
// parsers produce it for empty or NA cells and coercions produce it for values
// that cannot be parsed.
package frame

import "fmt"

// Table is an ordered set of named columns and the rows aligned to them.
// Every row has exactly len(Columns) cells.
type Table struct {
	Columns []string
	Rows    [][]any
}

// New returns an empty table with the given columns.
func New(columns ...string) *Table {
	cols := make([]string, len(columns))
	copy(cols, columns)
	return &Table{Columns: cols}
}

// Len returns the number of rows.
func (t *Table) Len() int { return len(t.Rows) }

// Append adds a row. It panics if the row width does not match the columns,
// since that is always a programming error in the caller.
func (t *Table) Append(cells ...any) {
	if len(cells) != len(t.Columns) {
		panic(fmt.Sprintf("frame: row has %d cells, table has %d columns", len(cells), len(t.Columns)))
	}
	row := make([]any, len(cells))
	copy(row, cells)
	t.Rows = append(t.Rows, row)
}

// Index returns the position of the first column named name, or -1.
func (t *Table) Index(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Has reports whether a column named name exists.
func (t *Table) Has(name string) bool { return t.Index(name) >= 0 }

// Column returns the cells of the named column in row order, or nil if the
// column does not exist.
func (t *Table) Column(name string) []any {
	idx := t.Index(name)
	if idx < 0 {
		return nil
	}
	out := make([]any, len(t.Rows))
	for i, row := range t.Rows {
		out[i] = row[idx]
	}
	return out
}

// Clone returns a deep copy of the table structure. Cell values are copied
// by value; they are immutable scalars.
func (t *Table) Clone() *Table {
	out := &Table{
		Columns: make([]string, len(t.Columns)),
		Rows:    make([][]any, len(t.Rows)),
	}
	copy(out.Columns, t.Columns)
	for i, row := range t.Rows {
		cp := make([]any, len(row))
		copy(cp, row)
		out.Rows[i] = cp
	}
	return out
}

// Rename replaces every column name with fn(name).
func (t *Table) Rename(fn func(string) string) {
	for i, c := range t.Columns {
		t.Columns[i] = fn(c)
	}
}

// Map replaces every cell of the named column with fn(cell). It returns false
// when the column does not exist.
func (t *Table) Map(name string, fn func(any) any) bool {
	idx := t.Index(name)
	if idx < 0 {
		return false
	}
	for _, row := range t.Rows {
		row[idx] = fn(row[idx])
	}
	return true
}

// AddColumn appends a column whose cells are computed from each row. If the
// column already exists its values are replaced in place.
func (t *Table) AddColumn(name string, fn func(row []any) any) {
	if idx := t.Index(name); idx >= 0 {
		for _, row := range t.Rows {
			row[idx] = fn(row)
		}
		return
	}
	t.Columns = append(t.Columns, name)
	for i, row := range t.Rows {
		t.Rows[i] = append(row, fn(row))
	}
}

// Filter keeps only the rows for which keep returns true and returns the
// number of rows removed. Row order is preserved.
func (t *Table) Filter(keep func(row []any) bool) int {
	out := t.Rows[:0]
	for _, row := range t.Rows {
		if keep(row) {
			out = append(out, row)
		}
	}
	dropped := len(t.Rows) - len(out)
	for i := len(out); i < len(t.Rows); i++ {
		t.Rows[i] = nil
	}
	t.Rows = out
	return dropped
}
