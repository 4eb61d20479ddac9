package postgres

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
			{Name: "revenue", Type: "float"},
		},
	})
	require.NoError(t, err)
	require.Equal(t,
		"CREATE TABLE \"movies_clean\" (\n  \"title\" TEXT NOT NULL,\n  \"votes\" BIGINT NOT NULL,\n  \"revenue\" DOUBLE PRECISION NOT NULL\n)",
		got,
	)

	_, err = BuildCreateTableSQL(ddl.TableDef{Name: " "})
	require.Error(t, err)
}

func TestBuildCreateIndexSQL(t *testing.T) {
	t.Parallel()

	got, err := BuildCreateIndexSQL(ddl.IndexDef{
		Name:    "idx_movies_clean_genre",
		Table:   "movies_clean",
		Columns: []string{"genre"},
	})
	require.NoError(t, err)
	require.Equal(t,
		`CREATE INDEX IF NOT EXISTS "idx_movies_clean_genre" ON "movies_clean" ("genre")`,
		got,
	)
}

func TestBuildDropTableSQL(t *testing.T) {
	t.Parallel()

	require.Equal(t, `DROP TABLE IF EXISTS "movies_clean"`, BuildDropTableSQL("movies_clean"))
	// A dot is part of the name, not a schema separator.
	require.Equal(t, `DROP TABLE IF EXISTS "public.movies"`, BuildDropTableSQL("public.movies"))
}
