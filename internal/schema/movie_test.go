package schema

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecadeOf(t *testing.T) {
	t.Parallel()

	cases := map[int64]int64{
		2010: 2010,
		2019: 2010,
		1999: 1990,
		0:    0,
		7:    0,
		-1:   -10,
		-10:  -10,
		-15:  -20,
	}
	for year, want := range cases {
		require.Equalf(t, want, DecadeOf(year), "year %d", year)
	}
}

func TestTypeOf(t *testing.T) {
	t.Parallel()

	require.Equal(t, TypeInt, TypeOf(ReleaseYear))
	require.Equal(t, TypeFloat, TypeOf(Revenue))
	require.Equal(t, TypeInt, TypeOf(Decade))
	require.Equal(t, TypeText, TypeOf(Title))
	require.Equal(t, TypeText, TypeOf("director"))
}
