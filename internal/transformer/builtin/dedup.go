package builtin

import (
	"fmt"
	"sort"
	"strings"

	"github.com/zeebo/xxh3"

	"movieetl/internal/frame"
)

// Dedup policies.
const (
	KeepFirst = "keep-first"
	KeepLast  = "keep-last"
)

// DeDup collapses rows sharing the same business key, e.g. [title,
// release_year]. Keys are hashed with XXH3-128 so the winner map stays small
// for wide keys. Output keeps the winners in input order.
type DeDup struct {
	Keys []string

	// Policy is KeepFirst (default) or KeepLast.
	Policy string

	// OnDrop, when set, receives the number of rows removed.
	OnDrop func(n int)
}

func (DeDup) Name() string { return "dedupe" }

func (d DeDup) Apply(t *frame.Table) error {
	if len(d.Keys) == 0 || t.Len() == 0 {
		return nil
	}
	policy := strings.ToLower(strings.TrimSpace(d.Policy))
	if policy == "" {
		policy = KeepFirst
	}
	if policy != KeepFirst && policy != KeepLast {
		return fmt.Errorf("dedupe: unknown policy %q", d.Policy)
	}

	idx := make([]int, len(d.Keys))
	for i, k := range d.Keys {
		if idx[i] = t.Index(k); idx[i] < 0 {
			return fmt.Errorf("dedupe: no key column %q", k)
		}
	}

	winners := make(map[xxh3.Uint128]int, t.Len())
	var buf []byte
	for i, row := range t.Rows {
		buf = buf[:0]
		for _, c := range idx {
			buf = appendKeyPart(buf, row[c])
		}
		h := xxh3.Hash128(buf)
		if _, seen := winners[h]; seen && policy == KeepFirst {
			continue
		}
		winners[h] = i
	}

	keep := make([]int, 0, len(winners))
	for _, i := range winners {
		keep = append(keep, i)
	}
	sort.Ints(keep)

	out := make([][]any, 0, len(keep))
	for _, i := range keep {
		out = append(out, t.Rows[i])
	}
	dropped := t.Len() - len(out)
	t.Rows = out
	if d.OnDrop != nil {
		d.OnDrop(dropped)
	}
	return nil
}

// appendKeyPart writes a type-tagged, separator-terminated encoding of v so
// that "1" and int64(1) or ("a","bc") and ("ab","c") never collide.
func appendKeyPart(b []byte, v any) []byte {
	switch x := v.(type) {
	case nil:
		b = append(b, 'n')
	case string:
		b = append(b, 's')
		b = append(b, x...)
	default:
		b = append(b, 'v')
		b = append(b, fmt.Sprint(x)...)
	}
	return append(b, 0x1f)
}
