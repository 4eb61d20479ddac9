package sqlite

import (
	"testing"

	"github.com/stretchr/testify/require"

	"movieetl/internal/ddl"
)

func TestBuildCreateTableSQL(t *testing.T) {
	t.Parallel()

	got, err := BuildCreateTableSQL(ddl.TableDef{
		Name: "movies_clean",
		Columns: []ddl.ColumnDef{
			{Name: "title", Type: "text"},
			{Name: "votes", Type: "int"},
			{Name: "rating", Type: "float", Nullable: true},
		},
	})
	require.NoError(t, err)
	require.Equal(t,
		"CREATE TABLE \"movies_clean\" (\n  \"title\" TEXT NOT NULL,\n  \"votes\" INTEGER NOT NULL,\n  \"rating\" REAL\n)",
		got,
	)

	_, err = BuildCreateTableSQL(ddl.TableDef{Name: "t"})
	require.Error(t, err)
	_, err = BuildCreateTableSQL(ddl.TableDef{Columns: []ddl.ColumnDef{{Name: "a"}}})
	require.Error(t, err)
}

func TestBuildCreateIndexSQL(t *testing.T) {
	t.Parallel()

	got, err := BuildCreateIndexSQL(ddl.IndexDef{Name: "idx_m_title", Table: "m", Columns: []string{"title"}})
	require.NoError(t, err)
	require.Equal(t, `CREATE INDEX IF NOT EXISTS "idx_m_title" ON "m" ("title")`, got)

	got, err = BuildCreateIndexSQL(ddl.IndexDef{Name: "u", Table: "m", Columns: []string{"a", "b"}, Unique: true})
	require.NoError(t, err)
	require.Equal(t, `CREATE UNIQUE INDEX IF NOT EXISTS "u" ON "m" ("a", "b")`, got)

	_, err = BuildCreateIndexSQL(ddl.IndexDef{Name: "x", Table: "m"})
	require.Error(t, err)
}

func TestBuildInsertAndDropSQL(t *testing.T) {
	t.Parallel()

	require.Equal(t, `INSERT INTO "m" ("a", "b") VALUES (?, ?)`, BuildInsertSQL("m", []string{"a", "b"}))
	require.Equal(t, `DROP TABLE IF EXISTS "we""ird"`, BuildDropTableSQL(`we"ird`))
}
