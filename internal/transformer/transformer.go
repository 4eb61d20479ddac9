// Package transformer turns the raw extracted table into the cleaned movie
// table. The chain is a pure function of its input: the table passed in is
// cloned before any step runs.
package transformer

import (
	"fmt"

	"go.uber.org/zap"

	"movieetl/internal/frame"
	"movieetl/internal/schema"
	"movieetl/internal/transformer/builtin"
)

// Step is one in-place table transformation.
type Step interface {
	Name() string
	Apply(t *frame.Table) error
}

// Chain is an ordered list of steps.
type Chain []Step

// Apply runs every step against a clone of in and returns the result. The
// first failing step aborts the chain.
func (c Chain) Apply(in *frame.Table) (*frame.Table, error) {
	out := in.Clone()
	for _, s := range c {
		if err := s.Apply(out); err != nil {
			return nil, fmt.Errorf("transform %s: %w", s.Name(), err)
		}
	}
	return out, nil
}

// Options tunes the movie chain beyond its fixed steps.
type Options struct {
	// DedupeKeys enables de-duplication on these columns when non-empty.
	DedupeKeys []string
	// DedupePolicy is builtin.KeepFirst or builtin.KeepLast.
	DedupePolicy string
}

// Stats reports row counts observed by a Transform call.
type Stats struct {
	InputRows   int
	DroppedRows int
	DedupedRows int
	OutputRows  int
}

// Movies returns the movie cleaning chain. Drop counts are added to st.
func Movies(opt Options, st *Stats) Chain {
	c := Chain{
		builtin.NormalizeColumns{},
		builtin.RequireColumns{Columns: schema.Required},
		builtin.TrimText{Column: schema.Title},
		builtin.TrimText{Column: schema.Genre},
		builtin.TitleCase{Column: schema.Genre},
		builtin.Coerce{Types: schema.NumericTypes},
		builtin.DropNulls{OnDrop: func(n int) { st.DroppedRows += n }},
		builtin.DeriveDecade{From: schema.ReleaseYear, To: schema.Decade},
	}
	if len(opt.DedupeKeys) > 0 {
		c = append(c, builtin.DeDup{
			Keys:   opt.DedupeKeys,
			Policy: opt.DedupePolicy,
			OnDrop: func(n int) { st.DedupedRows += n },
		})
	}
	return c
}

// Transform cleans in with the movie chain and logs progress.
func Transform(in *frame.Table, opt Options, log *zap.Logger) (*frame.Table, Stats, error) {
	if log == nil {
		log = zap.NewNop()
	}
	log.Info("Starting transform step")

	st := Stats{InputRows: in.Len()}
	out, err := Movies(opt, &st).Apply(in)
	if err != nil {
		return nil, st, err
	}
	st.OutputRows = out.Len()

	log.Info(fmt.Sprintf("Dropped %d bad rows", st.DroppedRows))
	if len(opt.DedupeKeys) > 0 {
		log.Info(fmt.Sprintf("Removed %d duplicate rows", st.DedupedRows))
	}
	log.Info(fmt.Sprintf("Transform complete: %d rows", st.OutputRows))
	return out, st, nil
}
