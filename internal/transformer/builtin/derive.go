package builtin

import (
	"fmt"

	"movieetl/internal/frame"
	"movieetl/internal/schema"
)

// DeriveDecade adds column To holding From floored to a multiple of ten.
// From must already be coerced to int64; a nil or non-integer cell yields
// nil in To.
type DeriveDecade struct {
	From string
	To   string
}

func (d DeriveDecade) Name() string { return "derive_" + d.To }

func (d DeriveDecade) Apply(t *frame.Table) error {
	idx := t.Index(d.From)
	if idx < 0 {
		return fmt.Errorf("derive %s: no column %q", d.To, d.From)
	}
	t.AddColumn(d.To, func(row []any) any {
		year, ok := row[idx].(int64)
		if !ok {
			return nil
		}
		return schema.DecadeOf(year)
	})
	return nil
}
