// Package ddl holds the backend-neutral table and index model the loader
// hands to a storage backend. Backends map logical types to SQL types and
// quote identifiers at render time.
package ddl

// ColumnDef describes a single column.
//
// Type is a logical type (schema.TypeText, schema.TypeInt, schema.TypeFloat);
// each backend maps it to its own SQL type.
type ColumnDef struct {
	Name     string
	Type     string
	Nullable bool
}

// TableDef is a table name plus its ordered columns.
type TableDef struct {
	Name    string
	Columns []ColumnDef
}

// ColumnNames returns the column names in order.
func (t TableDef) ColumnNames() []string {
	out := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		out[i] = c.Name
	}
	return out
}

// IndexDef describes a secondary index.
type IndexDef struct {
	Name    string
	Table   string
	Columns []string
	Unique  bool
}
