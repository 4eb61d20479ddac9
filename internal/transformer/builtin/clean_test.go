package builtin

import (
	"testing"

	"github.com/stretchr/testify/require"

	"movieetl/internal/frame"
)

func TestTrimText(t *testing.T) {
	t.Parallel()

	tbl := frame.New("title")
	tbl.Append("  Inception ")
	tbl.Append(nil)
	tbl.Append("\tHeat\n")

	require.NoError(t, TrimText{Column: "title"}.Apply(tbl))
	require.Equal(t, []any{"Inception", nil, "Heat"}, tbl.Column("title"))
}

func TestTitleCase(t *testing.T) {
	t.Parallel()

	tbl := frame.New("genre")
	for _, g := range []any{"sci-fi", "DRAMA", "romantic comedy", nil, "film-noir"} {
		tbl.Append(g)
	}

	require.NoError(t, TitleCase{Column: "genre"}.Apply(tbl))
	require.Equal(t,
		[]any{"Sci-Fi", "Drama", "Romantic Comedy", nil, "Film-Noir"},
		tbl.Column("genre"),
	)
}

func TestTitleCaseApostrophes(t *testing.T) {
	t.Parallel()

	tbl := frame.New("genre")
	tbl.Append("children's")
	tbl.Append("rock'n'roll")

	// The letter after an apostrophe stays lower case.
	require.NoError(t, TitleCase{Column: "genre"}.Apply(tbl))
	require.Equal(t, []any{"Children's", "Rock'n'roll"}, tbl.Column("genre"))
}

func TestCleanMissingColumn(t *testing.T) {
	t.Parallel()

	tbl := frame.New("title")
	require.Error(t, TrimText{Column: "genre"}.Apply(tbl))
	require.Error(t, TitleCase{Column: "genre"}.Apply(tbl))
}
