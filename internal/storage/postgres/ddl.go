package postgres

import (
	"fmt"
	"strings"

	"movieetl/internal/ddl"
	"movieetl/internal/schema"
)

// MapType maps a logical type to a Postgres column type.
func MapType(kind string) string {
	switch kind {
	case schema.TypeInt:
		return "BIGINT"
	case schema.TypeFloat:
		return "DOUBLE PRECISION"
	default:
		return "TEXT"
	}
}

// BuildCreateTableSQL builds a Postgres CREATE TABLE statement for t. The
// table is created in the connection's search_path schema.
func BuildCreateTableSQL(t ddl.TableDef) (string, error) {
	name := strings.TrimSpace(t.Name)
	if name == "" {
		return "", fmt.Errorf("postgres ddl: table name must not be empty")
	}
	if len(t.Columns) == 0 {
		return "", fmt.Errorf("postgres ddl: at least one column is required")
	}

	cols := make([]string, 0, len(t.Columns))
	for _, c := range t.Columns {
		var sb strings.Builder
		sb.WriteString(quoteIdent(c.Name))
		sb.WriteByte(' ')
		sb.WriteString(MapType(c.Type))
		if !c.Nullable {
			sb.WriteString(" NOT NULL")
		}
		cols = append(cols, sb.String())
	}
	return fmt.Sprintf("CREATE TABLE %s (\n  %s\n)", quoteIdent(name), strings.Join(cols, ",\n  ")), nil
}

// BuildDropTableSQL renders DROP TABLE IF EXISTS for name.
func BuildDropTableSQL(name string) string {
	return "DROP TABLE IF EXISTS " + quoteIdent(name)
}

// BuildCreateIndexSQL renders CREATE [UNIQUE] INDEX IF NOT EXISTS for idx.
func BuildCreateIndexSQL(idx ddl.IndexDef) (string, error) {
	if idx.Name == "" || idx.Table == "" || len(idx.Columns) == 0 {
		return "", fmt.Errorf("postgres ddl: index needs a name, table and columns")
	}
	cols := make([]string, len(idx.Columns))
	for i, c := range idx.Columns {
		cols[i] = quoteIdent(c)
	}
	unique := ""
	if idx.Unique {
		unique = "UNIQUE "
	}
	return fmt.Sprintf("CREATE %sINDEX IF NOT EXISTS %s ON %s (%s)",
		unique, quoteIdent(idx.Name), quoteIdent(idx.Table), strings.Join(cols, ", ")), nil
}

// quoteIdent quotes a single identifier for Postgres, e.g.:
//
//	quoteIdent(`movies`)     => `"movies"`
//	quoteIdent(`weird"name`) => `"weird""name"`
func quoteIdent(id string) string {
	return `"` + strings.ReplaceAll(id, `"`, `""`) + `"`
}
