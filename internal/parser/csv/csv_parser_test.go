package csv_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	pcsv "movieetl/internal/parser/csv"
)

func TestParseKeepsHeaderAsWritten(t *testing.T) {
	t.Parallel()

	in := "\uFEFF Title ,GENRE,release_year\nInception ,sci-fi,2010\n"
	res, err := pcsv.NewParser(pcsv.Options{}).Parse(strings.NewReader(in))
	require.NoError(t, err)

	require.Equal(t, []string{" Title ", "GENRE", "release_year"}, res.Table.Columns)
	require.Equal(t, 1, res.Table.Len())
	require.Equal(t, []any{"Inception ", "sci-fi", "2010"}, res.Table.Rows[0])
	require.Zero(t, res.Skipped)
}

func TestParseNullSpellings(t *testing.T) {
	t.Parallel()

	in := "a,b,c,d\n,N/A,NaN,ok\nNULL,none,n/a,x\n"
	res, err := pcsv.NewParser(pcsv.Options{}).Parse(strings.NewReader(in))
	require.NoError(t, err)

	require.Equal(t, []any{nil, nil, nil, "ok"}, res.Table.Rows[0])
	// "none" is not a null spelling; matching is exact.
	require.Equal(t, []any{nil, "none", nil, "x"}, res.Table.Rows[1])
}

func TestParseCustomNullValues(t *testing.T) {
	t.Parallel()

	in := "a,b\n-,N/A\n"
	res, err := pcsv.NewParser(pcsv.Options{NullValues: []string{"-"}}).Parse(strings.NewReader(in))
	require.NoError(t, err)
	require.Equal(t, []any{nil, "N/A"}, res.Table.Rows[0])
}

func TestParseRaggedRows(t *testing.T) {
	t.Parallel()

	in := "a,b,c\n1,2\n1,2,3,4\n5,6,7\n"
	res, err := pcsv.NewParser(pcsv.Options{}).Parse(strings.NewReader(in))
	require.NoError(t, err)

	require.Equal(t, 1, res.Skipped)
	require.Equal(t, 2, res.Table.Len())
	require.Equal(t, []any{"1", "2", nil}, res.Table.Rows[0])
	require.Equal(t, []any{"5", "6", "7"}, res.Table.Rows[1])
}

func TestParseDelimiter(t *testing.T) {
	t.Parallel()

	in := "title;genre\nHeat;crime\n"
	res, err := pcsv.NewParser(pcsv.Options{Comma: ';'}).Parse(strings.NewReader(in))
	require.NoError(t, err)
	require.Equal(t, []string{"title", "genre"}, res.Table.Columns)
	require.Equal(t, []any{"Heat", "crime"}, res.Table.Rows[0])
}

func TestParseQuotedFields(t *testing.T) {
	t.Parallel()

	in := "title,genre\n\"Crouching Tiger, Hidden Dragon\",action\n"
	res, err := pcsv.NewParser(pcsv.Options{}).Parse(strings.NewReader(in))
	require.NoError(t, err)
	require.Equal(t, "Crouching Tiger, Hidden Dragon", res.Table.Rows[0][0])
}

func TestParseBareQuoteInField(t *testing.T) {
	t.Parallel()

	in := "title,genre,release_year\nThe \"Best\" Movie,drama,2001\nHeat,crime,1995\n"
	res, err := pcsv.NewParser(pcsv.Options{}).Parse(strings.NewReader(in))
	require.NoError(t, err)

	require.Zero(t, res.Skipped)
	require.Equal(t, 2, res.Table.Len())
	require.Equal(t, []any{`The "Best" Movie`, "drama", "2001"}, res.Table.Rows[0])
}

func TestParseEmptyInput(t *testing.T) {
	t.Parallel()

	_, err := pcsv.NewParser(pcsv.Options{}).Parse(strings.NewReader(""))
	require.Error(t, err)
	require.Contains(t, err.Error(), "header")
}

func TestParseHeaderOnly(t *testing.T) {
	t.Parallel()

	res, err := pcsv.NewParser(pcsv.Options{}).Parse(strings.NewReader("title,genre\n"))
	require.NoError(t, err)
	require.Equal(t, 0, res.Table.Len())
	require.Equal(t, []string{"title", "genre"}, res.Table.Columns)
}
