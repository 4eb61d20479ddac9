package ddl

import (
	"testing"

	"github.com/stretchr/testify/require"

	"movieetl/internal/frame"
	"movieetl/internal/schema"
)

func TestFromFrame(t *testing.T) {
	t.Parallel()

	tbl := frame.New("title", "genre", "release_year", "rating", "votes", "revenue", "decade", "director")
	def, err := FromFrame("movies_clean", tbl)
	require.NoError(t, err)

	require.Equal(t, "movies_clean", def.Name)
	require.Equal(t, tbl.Columns, def.ColumnNames())
	want := []string{
		schema.TypeText, schema.TypeText, schema.TypeInt, schema.TypeFloat,
		schema.TypeInt, schema.TypeFloat, schema.TypeInt, schema.TypeText,
	}
	for i, c := range def.Columns {
		require.Equal(t, want[i], c.Type, c.Name)
		require.False(t, c.Nullable, c.Name)
	}
}

func TestFromFrameErrors(t *testing.T) {
	t.Parallel()

	_, err := FromFrame("", frame.New("a"))
	require.Error(t, err)
	_, err = FromFrame("t", frame.New())
	require.Error(t, err)
	_, err = FromFrame("t", frame.New("a", "a"))
	require.ErrorContains(t, err, "duplicate")
	_, err = FromFrame("t", frame.New("a", ""))
	require.ErrorContains(t, err, "empty column")
}

func TestLookupIndexes(t *testing.T) {
	t.Parallel()

	idx := LookupIndexes("movies_clean", schema.IndexedColumns...)
	require.Equal(t, []IndexDef{
		{Name: "idx_movies_clean_title", Table: "movies_clean", Columns: []string{"title"}},
		{Name: "idx_movies_clean_genre", Table: "movies_clean", Columns: []string{"genre"}},
	}, idx)
}
