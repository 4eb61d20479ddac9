package builtin

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"movieetl/internal/frame"
)

// ErrMissingColumns is matched by every *MissingColumnsError.
var ErrMissingColumns = errors.New("missing required columns")

// MissingColumnsError names the required columns absent from a table.
type MissingColumnsError struct {
	Missing []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingColumns, strings.Join(e.Missing, ", "))
}

func (e *MissingColumnsError) Is(target error) bool { return target == ErrMissingColumns }

// RequireColumns fails when any of Columns is not present in the table.
type RequireColumns struct {
	Columns []string
}

func (RequireColumns) Name() string { return "require_columns" }

// Apply returns a *MissingColumnsError listing the absent columns in sorted
// order. The table is not modified.
func (r RequireColumns) Apply(t *frame.Table) error {
	var missing []string
	for _, c := range r.Columns {
		if !t.Has(c) {
			missing = append(missing, c)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)
	return &MissingColumnsError{Missing: missing}
}
