package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"movieetl/internal/datasource"
	"movieetl/internal/datasource/file"
	"movieetl/internal/frame"
	pcsv "movieetl/internal/parser/csv"
)

// ErrInputNotFound is returned by Extract when the CSV path does not exist.
// Errors carrying it also match os.ErrNotExist.
var ErrInputNotFound = errors.New("input not found")

// Extract reads the CSV at path into a table with columns exactly as written
// in the header. Rows the parser skips are counted in the second result.
func Extract(ctx context.Context, path string, opt pcsv.Options, log *zap.Logger) (*frame.Table, int, error) {
	if log == nil {
		log = zap.NewNop()
	}
	src := file.NewLocal(path)

	ok, err := src.Exists()
	if err != nil {
		return nil, 0, err
	}
	if !ok {
		return nil, 0, fmt.Errorf("%w: CSV not found at %s: %w", ErrInputNotFound, src.Path(), os.ErrNotExist)
	}

	log.Info("Reading raw CSV: " + src.Path())
	if opt.Logger == nil {
		opt.Logger = log
	}
	tbl, skipped, err := read(ctx, src, opt)
	if err != nil {
		return nil, 0, fmt.Errorf("extract %s: %w", src.Path(), err)
	}
	return tbl, skipped, nil
}

func read(ctx context.Context, src datasource.Source, opt pcsv.Options) (*frame.Table, int, error) {
	rc, err := src.Open(ctx)
	if err != nil {
		return nil, 0, err
	}
	defer rc.Close()

	res, err := pcsv.NewParser(opt).Parse(rc)
	if err != nil {
		return nil, 0, err
	}
	return res.Table, res.Skipped, nil
}
