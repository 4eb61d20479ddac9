package builtin

import (
	"testing"

	"github.com/stretchr/testify/require"

	"movieetl/internal/frame"
)

func dupTable() *frame.Table {
	tbl := frame.New("title", "release_year", "rating")
	tbl.Append("Heat", int64(1995), 8.3)
	tbl.Append("Alien", int64(1979), 8.5)
	tbl.Append("Heat", int64(1995), 8.0)
	tbl.Append("Heat", int64(1986), 6.1)
	return tbl
}

func TestDeDupKeepFirst(t *testing.T) {
	t.Parallel()

	tbl := dupTable()
	var dropped int
	d := DeDup{Keys: []string{"title", "release_year"}, OnDrop: func(n int) { dropped = n }}
	require.NoError(t, d.Apply(tbl))

	require.Equal(t, 1, dropped)
	require.Equal(t, []any{8.3, 8.5, 6.1}, tbl.Column("rating"))
}

func TestDeDupKeepLast(t *testing.T) {
	t.Parallel()

	tbl := dupTable()
	require.NoError(t, DeDup{Keys: []string{"title", "release_year"}, Policy: "Keep-Last"}.Apply(tbl))
	require.Equal(t, []any{"Alien", "Heat", "Heat"}, tbl.Column("title"))
	require.Equal(t, []any{8.5, 8.0, 6.1}, tbl.Column("rating"))
}

func TestDeDupNoKeysIsNoop(t *testing.T) {
	t.Parallel()

	tbl := dupTable()
	require.NoError(t, DeDup{}.Apply(tbl))
	require.Equal(t, 4, tbl.Len())
}

func TestDeDupErrors(t *testing.T) {
	t.Parallel()

	require.Error(t, DeDup{Keys: []string{"missing"}}.Apply(dupTable()))
	require.Error(t, DeDup{Keys: []string{"title"}, Policy: "most-complete"}.Apply(dupTable()))
}

func TestAppendKeyPartDistinguishesTypes(t *testing.T) {
	t.Parallel()

	a := appendKeyPart(nil, "1")
	b := appendKeyPart(nil, int64(1))
	require.NotEqual(t, a, b)

	ab := appendKeyPart(appendKeyPart(nil, "a"), "bc")
	ba := appendKeyPart(appendKeyPart(nil, "ab"), "c")
	require.NotEqual(t, ab, ba)
}
