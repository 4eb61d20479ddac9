package ddl

import (
	"fmt"

	"movieetl/internal/frame"
	"movieetl/internal/schema"
)

// FromFrame derives a table definition for t: known movie columns get their
// schema type, any other column is text. Columns are NOT NULL because the
// transform drops rows with nulls.
func FromFrame(name string, t *frame.Table) (TableDef, error) {
	if name == "" {
		return TableDef{}, fmt.Errorf("ddl: table name must not be empty")
	}
	if len(t.Columns) == 0 {
		return TableDef{}, fmt.Errorf("ddl: table %s has no columns", name)
	}
	seen := make(map[string]struct{}, len(t.Columns))
	cols := make([]ColumnDef, 0, len(t.Columns))
	for _, c := range t.Columns {
		if c == "" {
			return TableDef{}, fmt.Errorf("ddl: table %s has an empty column name", name)
		}
		if _, dup := seen[c]; dup {
			return TableDef{}, fmt.Errorf("ddl: table %s has duplicate column %q", name, c)
		}
		seen[c] = struct{}{}
		cols = append(cols, ColumnDef{Name: c, Type: schema.TypeOf(c)})
	}
	return TableDef{Name: name, Columns: cols}, nil
}

// LookupIndexes returns one non-unique single-column index per column,
// named idx_<table>_<column>.
func LookupIndexes(table string, columns ...string) []IndexDef {
	out := make([]IndexDef, 0, len(columns))
	for _, c := range columns {
		out = append(out, IndexDef{
			Name:    fmt.Sprintf("idx_%s_%s", table, c),
			Table:   table,
			Columns: []string{c},
		})
	}
	return out
}
