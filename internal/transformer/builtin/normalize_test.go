package builtin

import (
	"testing"

	"github.com/stretchr/testify/require"

	"movieetl/internal/frame"
)

func TestNormalizeColumns(t *testing.T) {
	t.Parallel()

	tbl := frame.New(" Title ", "GENRE", "Release_Year\t", "rating")
	require.NoError(t, NormalizeColumns{}.Apply(tbl))
	require.Equal(t, []string{"title", "genre", "release_year", "rating"}, tbl.Columns)
}

func TestNormalizeColumnsIdempotent(t *testing.T) {
	t.Parallel()

	headers := [][]string{
		{"  TITLE", "genre  ", "Votes"},
		{"title", "genre", "votes"},
		{"\tReVeNuE\n", "Decade"},
	}
	for _, h := range headers {
		once := frame.New(h...)
		require.NoError(t, NormalizeColumns{}.Apply(once))

		twice := once.Clone()
		require.NoError(t, NormalizeColumns{}.Apply(twice))

		require.Equal(t, once.Columns, twice.Columns)
	}
}

func TestNormalizeName(t *testing.T) {
	t.Parallel()

	require.Equal(t, "release_year", NormalizeName("  RELEASE_YEAR "))
	require.Equal(t, "", NormalizeName("   "))
}
