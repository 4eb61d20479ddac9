package sqlite

import (
	"fmt"
	"strings"

	"movieetl/internal/ddl"
	"movieetl/internal/schema"
)

// MapType maps a logical type to a SQLite column type.
func MapType(kind string) string {
	switch kind {
	case schema.TypeInt:
		return "INTEGER"
	case schema.TypeFloat:
		return "REAL"
	default:
		return "TEXT"
	}
}

// BuildCreateTableSQL renders a CREATE TABLE statement for t. The table is
// expected not to exist; ReplaceTable drops it first.
func BuildCreateTableSQL(t ddl.TableDef) (string, error) {
	if strings.TrimSpace(t.Name) == "" {
		return "", fmt.Errorf("sqlite ddl: table name must not be empty")
	}
	if len(t.Columns) == 0 {
		return "", fmt.Errorf("sqlite ddl: at least one column is required")
	}
	cols := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		col := quoteIdent(c.Name) + " " + MapType(c.Type)
		if !c.Nullable {
			col += " NOT NULL"
		}
		cols = append(cols, col)
	}
	return fmt.Sprintf("CREATE TABLE %s (\n  %s\n)", quoteIdent(t.Name), strings.Join(cols, ",\n  ")), nil
}

// BuildDropTableSQL renders DROP TABLE IF EXISTS for name.
func BuildDropTableSQL(name string) string {
	return "DROP TABLE IF EXISTS " + quoteIdent(name)
}

// BuildCreateIndexSQL renders CREATE [UNIQUE] INDEX IF NOT EXISTS for idx.
func BuildCreateIndexSQL(idx ddl.IndexDef) (string, error) {
	if idx.Name == "" || idx.Table == "" || len(idx.Columns) == 0 {
		return "", fmt.Errorf("sqlite ddl: index needs a name, table and columns")
	}
	unique := ""
	if idx.Unique {
		unique = "UNIQUE "
	}
	return fmt.Sprintf("CREATE %sINDEX IF NOT EXISTS %s ON %s (%s)",
		unique, quoteIdent(idx.Name), quoteIdent(idx.Table), joinIdents(idx.Columns)), nil
}

// BuildInsertSQL renders a single-row parameterized INSERT.
func BuildInsertSQL(table string, columns []string) string {
	ph := strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ")
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", quoteIdent(table), joinIdents(columns), ph)
}

func quoteIdent(id string) string {
	return `"` + strings.ReplaceAll(id, `"`, `""`) + `"`
}

func joinIdents(ids []string) string {
	q := make([]string, len(ids))
	for i, id := range ids {
		q[i] = quoteIdent(id)
	}
	return strings.Join(q, ", ")
}
