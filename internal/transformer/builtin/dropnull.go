package builtin

import "movieetl/internal/frame"

// DropNulls removes every row that has a nil cell in any column.
type DropNulls struct {
	// OnDrop, when set, receives the number of rows removed.
	OnDrop func(n int)
}

func (DropNulls) Name() string { return "drop_nulls" }

func (d DropNulls) Apply(t *frame.Table) error {
	n := t.Filter(func(row []any) bool {
		for _, v := range row {
			if v == nil {
				return false
			}
		}
		return true
	})
	if d.OnDrop != nil {
		d.OnDrop(n)
	}
	return nil
}
