package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"movieetl/internal/cli"
	"movieetl/internal/pipeline"
	"movieetl/internal/transformer/builtin"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	err := cmd.Execute()
	return out.String(), err
}

func TestETLCommand(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "movies_raw.csv")
	db := filepath.Join(dir, "warehouse", "movies.db")
	require.NoError(t, os.WriteFile(in, []byte(
		"Title,Genre,Release_Year,Rating,Votes,Revenue\nHeat,crime,1995,8.3,700000,187000000\n"), 0o644))

	_, err := run(t, "--input", in, "--db", db, "--log-level", "error")
	require.NoError(t, err)

	_, err = os.Stat(db)
	require.NoError(t, err)
}

func TestETLCommandErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := run(t, "--input", filepath.Join(dir, "missing.csv"), "--db", filepath.Join(dir, "m.db"), "--log-level", "error")
	require.ErrorIs(t, err, pipeline.ErrInputNotFound)

	// The run failed after the logger was built, so the error went through it.
	var stderr bytes.Buffer
	cli.Report(&stderr, err)
	require.Empty(t, stderr.String())

	in := filepath.Join(dir, "bad.csv")
	require.NoError(t, os.WriteFile(in, []byte("title,genre\nHeat,crime\n"), 0o644))
	_, err = run(t, "--input", in, "--db", filepath.Join(dir, "m.db"), "--log-level", "error")
	require.ErrorIs(t, err, builtin.ErrMissingColumns)
}

func TestETLValidateOnly(t *testing.T) {
	out, err := run(t, "--validate")
	require.NoError(t, err)
	require.Contains(t, out, "configuration is valid")

	out, err = run(t, "--validate", "--table", "drop table")
	require.Error(t, err)
	require.Contains(t, out, "storage.table")

	var stderr bytes.Buffer
	cli.Report(&stderr, err)
	require.Equal(t, "ERROR | configuration is invalid\n", stderr.String())
}
