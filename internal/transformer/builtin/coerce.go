package builtin

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"movieetl/internal/frame"
	"movieetl/internal/schema"
)

// Coerce converts the cells of the configured columns to numbers.
//
// Types maps a column to schema.TypeInt (int64) or schema.TypeFloat
// (float64). A cell that cannot be parsed becomes nil instead of failing the
// run; filtering those rows is a separate step.
type Coerce struct {
	Types map[string]string
}

func (Coerce) Name() string { return "coerce" }

func (c Coerce) Apply(t *frame.Table) error {
	cols := make([]string, 0, len(c.Types))
	for col := range c.Types {
		cols = append(cols, col)
	}
	sort.Strings(cols)

	for _, col := range cols {
		var conv func(any) any
		switch typ := c.Types[col]; typ {
		case schema.TypeInt:
			conv = toInt
		case schema.TypeFloat:
			conv = toFloat
		default:
			return fmt.Errorf("coerce: column %q: unsupported type %q", col, typ)
		}
		if !t.Map(col, conv) {
			return fmt.Errorf("coerce: no column %q", col)
		}
	}
	return nil
}

// toInt parses v as a whole number. Floats are accepted when integral
// ("2010.0"), anything else yields nil.
func toInt(v any) any {
	switch x := v.(type) {
	case int64:
		return x
	case float64:
		if i, ok := integral(x); ok {
			return i
		}
		return nil
	case string:
		s := strings.TrimSpace(x)
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return i
		}
		f, ok := parseFinite(s)
		if !ok {
			return nil
		}
		if i, ok := integral(f); ok {
			return i
		}
		return nil
	default:
		return nil
	}
}

// toFloat parses v as a finite float; anything else yields nil.
func toFloat(v any) any {
	switch x := v.(type) {
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil
		}
		return x
	case int64:
		return float64(x)
	case string:
		if f, ok := parseFinite(strings.TrimSpace(x)); ok {
			return f
		}
		return nil
	default:
		return nil
	}
}

func parseFinite(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func integral(f float64) (int64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, false
	}
	if f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, false
	}
	return int64(f), true
}
