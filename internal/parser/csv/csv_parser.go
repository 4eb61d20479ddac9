// Package csv parses delimited text into a frame.Table. The header row
// defines the columns as written; normalization of names is left to the
// transform stage.
package csv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"movieetl/internal/frame"
)

// utf8BOM is stripped from the first header cell if present.
const utf8BOM = "\uFEFF"

// skipLogLimit caps how many individual skipped rows are logged.
const skipLogLimit = 100

// DefaultNullValues are the cell spellings read as null. They mirror the
// NA tokens common CSV tooling treats as missing.
var DefaultNullValues = []string{
	"", "#N/A", "#N/A N/A", "#NA", "-1.#IND", "-1.#QNAN", "-NaN", "-nan",
	"1.#IND", "1.#QNAN", "<NA>", "N/A", "NA", "NULL", "NaN", "None",
	"n/a", "nan", "null",
}

// Options configures the parser. Zero values select defaults.
type Options struct {
	// Comma is the field delimiter. When zero, ',' is used.
	Comma rune

	// NullValues lists exact cell values converted to nil. When nil,
	// DefaultNullValues is used. An empty non-nil slice disables the mapping
	// except for empty cells.
	NullValues []string

	// Logger receives soft-fail messages for skipped rows.
	Logger *zap.Logger
}

// Parser parses CSV input according to Options. It is not safe for
// concurrent use.
type Parser struct {
	opt   Options
	nulls map[string]struct{}
	log   *zap.Logger
}

// NewParser constructs a Parser with the provided Options.
func NewParser(opt Options) *Parser {
	vals := opt.NullValues
	if vals == nil {
		vals = DefaultNullValues
	}
	nulls := make(map[string]struct{}, len(vals)+1)
	nulls[""] = struct{}{}
	for _, v := range vals {
		nulls[v] = struct{}{}
	}
	lg := opt.Logger
	if lg == nil {
		lg = zap.NewNop()
	}
	return &Parser{opt: opt, nulls: nulls, log: lg}
}

// Result is the outcome of a parse.
type Result struct {
	Table *frame.Table
	// Skipped counts rows dropped because they could not be read or had more
	// fields than the header.
	Skipped int
}

// Parse reads the header and all body rows from r. Rows shorter than the
// header are padded with nil; rows longer than the header are skipped and
// counted. A missing header is an error.
func (p *Parser) Parse(r io.Reader) (Result, error) {
	cr := csv.NewReader(r)
	if p.opt.Comma != 0 {
		cr.Comma = p.opt.Comma
	}
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return Result{}, fmt.Errorf("read csv header: empty input")
	}
	if err != nil {
		return Result{}, fmt.Errorf("read csv header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], utf8BOM)
	}

	tbl := frame.New(header...)
	var skipped int

	for line := 2; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if !errors.As(err, &perr) {
				return Result{}, fmt.Errorf("read csv: %w", err)
			}
			p.skip(&skipped, line, err.Error())
			continue
		}
		if len(row) > len(header) {
			p.skip(&skipped, line, fmt.Sprintf("expected %d fields, got %d", len(header), len(row)))
			continue
		}

		cells := make([]any, len(header))
		for i, val := range row {
			cells[i] = p.cell(val)
		}
		tbl.Rows = append(tbl.Rows, cells)
	}

	if skipped > 0 {
		p.log.Warn(fmt.Sprintf("Skipped %d unreadable rows", skipped))
	}
	return Result{Table: tbl, Skipped: skipped}, nil
}

func (p *Parser) skip(count *int, line int, reason string) {
	if *count < skipLogLimit {
		p.log.Warn("Skipping row", zap.Int("line", line), zap.String("reason", reason))
	}
	*count++
}

// cell converts a raw field to a cell value, mapping null spellings to nil.
func (p *Parser) cell(s string) any {
	if _, ok := p.nulls[s]; ok {
		return nil
	}
	return s
}

