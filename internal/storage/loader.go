package storage

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"movieetl/internal/ddl"
	"movieetl/internal/frame"
	"movieetl/internal/schema"
)

// CopyFn inserts rows aligned to columns and returns how many were inserted.
// Backends bind it to their open transaction.
type CopyFn func(ctx context.Context, columns []string, rows [][]any) (int64, error)

// InsertBatches slices rows into batches of batchSize and calls copyFn for
// each, logging running totals per batch. It stops at the first error.
func InsertBatches(
	ctx context.Context,
	columns []string,
	rows [][]any,
	batchSize int,
	copyFn CopyFn,
	log *zap.Logger,
) (int64, error) {
	if batchSize <= 0 {
		return 0, fmt.Errorf("batchSize must be > 0")
	}
	if copyFn == nil {
		return 0, fmt.Errorf("copyFn must not be nil")
	}
	if log == nil {
		log = zap.NewNop()
	}

	var (
		total   int64
		batches int
		start   = time.Now()
	)
	for lo := 0; lo < len(rows); lo += batchSize {
		if err := ctx.Err(); err != nil {
			return total, err
		}
		hi := min(lo+batchSize, len(rows))
		n, err := copyFn(ctx, columns, rows[lo:hi])
		total += n
		if err != nil {
			return total, fmt.Errorf("batch #%d: %w", batches+1, err)
		}
		batches++
		log.Debug("batch inserted",
			zap.Int("batch", batches),
			zap.Int64("inserted", n),
			zap.Int64("total_inserted", total),
			zap.Duration("elapsed", time.Since(start).Truncate(time.Millisecond)),
		)
	}
	return total, nil
}

// Result summarizes a Load.
type Result struct {
	Rows    int64
	Indexes []string
}

// Load overwrites table with data through repo and then ensures the lookup
// indexes on title and genre. The table replacement is all-or-nothing; an
// index failure after a committed replacement is still reported as an error.
func Load(
	ctx context.Context,
	repo Repository,
	table string,
	data *frame.Table,
	batchSize int,
	log *zap.Logger,
) (Result, error) {
	if log == nil {
		log = zap.NewNop()
	}
	def, err := ddl.FromFrame(table, data)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrStorage, err)
	}

	n, err := repo.ReplaceTable(ctx, def, data.Rows, batchSize)
	if err != nil {
		return Result{}, fmt.Errorf("%w: replace table %s: %w", ErrStorage, table, err)
	}
	log.Debug("table replaced", zap.String("table", table), zap.Int64("rows", n))

	res := Result{Rows: n}
	for _, idx := range ddl.LookupIndexes(table, schema.IndexedColumns...) {
		if err := repo.CreateIndex(ctx, idx); err != nil {
			return res, fmt.Errorf("%w: create index %s: %w", ErrStorage, idx.Name, err)
		}
		res.Indexes = append(res.Indexes, idx.Name)
	}
	return res, nil
}
