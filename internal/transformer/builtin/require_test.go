package builtin

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"movieetl/internal/frame"
)

func TestRequireColumnsPresent(t *testing.T) {
	t.Parallel()

	tbl := frame.New("title", "genre", "extra")
	require.NoError(t, RequireColumns{Columns: []string{"genre", "title"}}.Apply(tbl))
}

func TestRequireColumnsMissing(t *testing.T) {
	t.Parallel()

	tbl := frame.New("title")
	err := RequireColumns{Columns: []string{"title", "votes", "genre"}}.Apply(tbl)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrMissingColumns))

	var mce *MissingColumnsError
	require.True(t, errors.As(err, &mce))
	require.Equal(t, []string{"genre", "votes"}, mce.Missing)
	require.Contains(t, err.Error(), "genre, votes")
}

func TestRequireColumnsIsCaseSensitive(t *testing.T) {
	t.Parallel()

	// Normalization runs before this step; raw headers do not match.
	tbl := frame.New("Title")
	err := RequireColumns{Columns: []string{"title"}}.Apply(tbl)
	require.ErrorIs(t, err, ErrMissingColumns)
}
