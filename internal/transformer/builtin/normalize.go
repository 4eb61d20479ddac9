// Package builtin contains the reusable steps the movie transform chain is
// built from. Every step mutates the table it is given; callers that need
// the input preserved clone it first (transformer.Chain does).
package builtin

import (
	"strings"

	"movieetl/internal/frame"
)

// NormalizeColumns renames every column to its trimmed, lowercase form.
// Applying it twice yields the same column set as applying it once.
type NormalizeColumns struct{}

func (NormalizeColumns) Name() string { return "normalize_columns" }

func (NormalizeColumns) Apply(t *frame.Table) error {
	t.Rename(NormalizeName)
	return nil
}

// NormalizeName returns the canonical form of a column header.
func NormalizeName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
