package frame

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
)

// Fprint renders t as an aligned text table: a header line followed by one
// line per row. Empty tables print the header and "(no rows)".
func Fprint(w io.Writer, t *Table) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(tw, strings.Join(t.Columns, "\t")); err != nil {
		return err
	}
	if len(t.Rows) == 0 {
		if _, err := fmt.Fprintln(tw, "(no rows)"); err != nil {
			return err
		}
	}
	cells := make([]string, len(t.Columns))
	for _, row := range t.Rows {
		for i, v := range row {
			cells[i] = FormatCell(v)
		}
		if _, err := fmt.Fprintln(tw, strings.Join(cells, "\t")); err != nil {
			return err
		}
	}
	return tw.Flush()
}

// FormatCell renders a single cell value for display.
func FormatCell(v any) string {
	switch x := v.(type) {
	case nil:
		return "NULL"
	case string:
		return x
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case []byte:
		return string(x)
	default:
		return fmt.Sprint(x)
	}
}
