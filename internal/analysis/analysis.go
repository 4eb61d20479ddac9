// Package analysis runs the fixed reporting queries against the loaded
// movie table.
package analysis

import (
	"context"
	"fmt"
	"io"
	"strings"

	"movieetl/internal/frame"
	"movieetl/internal/storage"
)

// NamedQuery is a report heading and the statement behind it.
type NamedQuery struct {
	Title string
	SQL   string
}

// Queries returns the three report queries for table, in report order.
//
// AVG is cast to NUMERIC before ROUND so the statement runs unchanged on
// SQLite and Postgres.
func Queries(table string) []NamedQuery {
	t := quoteIdent(table)
	return []NamedQuery{
		{
			Title: "Top 10 Highest Rated Movies",
			SQL: "SELECT title, rating, votes\n" +
				"FROM " + t + "\n" +
				"ORDER BY rating DESC, votes DESC\n" +
				"LIMIT 10",
		},
		{
			Title: "Top 5 Genres by Average Revenue",
			SQL: "SELECT genre, ROUND(CAST(AVG(revenue) AS NUMERIC), 2) AS avg_revenue\n" +
				"FROM " + t + "\n" +
				"GROUP BY genre\n" +
				"ORDER BY avg_revenue DESC\n" +
				"LIMIT 5",
		},
		{
			Title: "Movies per Year",
			SQL: "SELECT release_year, COUNT(*) AS movie_count\n" +
				"FROM " + t + "\n" +
				"GROUP BY release_year\n" +
				"ORDER BY release_year ASC",
		},
	}
}

// Analyzer queries a store opened read-only.
type Analyzer struct {
	repo  storage.Repository
	table string
}

// New returns an Analyzer over table in repo. The caller owns repo.
func New(repo storage.Repository, table string) *Analyzer {
	return &Analyzer{repo: repo, table: table}
}

// Open opens the store in cfg read-only and returns an Analyzer that closes
// it on Close. A missing SQLite file is an error.
func Open(ctx context.Context, cfg storage.Config, table string) (*Analyzer, error) {
	cfg.ReadOnly = true
	repo, err := storage.New(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return New(repo, table), nil
}

// Close closes the underlying store.
func (a *Analyzer) Close() error { return a.repo.Close() }

// Query runs one read-only statement and returns its full result.
func (a *Analyzer) Query(ctx context.Context, query string) (*frame.Table, error) {
	res, err := a.repo.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("analysis: %w", err)
	}
	return res, nil
}

// Report runs every query from Queries and writes each heading and its
// aligned result to w, separated by a blank line.
func (a *Analyzer) Report(ctx context.Context, w io.Writer) error {
	for i, q := range Queries(a.table) {
		res, err := a.Query(ctx, q.SQL)
		if err != nil {
			return fmt.Errorf("%s: %w", q.Title, err)
		}
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "%s:\n", q.Title); err != nil {
			return err
		}
		if err := frame.Fprint(w, res); err != nil {
			return err
		}
	}
	return nil
}

func quoteIdent(id string) string {
	return `"` + strings.ReplaceAll(id, `"`, `""`) + `"`
}
