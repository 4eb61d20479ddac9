// Package pipeline runs the movies ETL: extract the raw CSV, clean it with
// the transformer chain and replace the destination table. Stages run
// strictly in sequence; the first error aborts the run.
package pipeline

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"movieetl/internal/config"
	"movieetl/internal/frame"
	"movieetl/internal/metrics"
	pcsv "movieetl/internal/parser/csv"
	"movieetl/internal/storage"
	"movieetl/internal/transformer"
)

// Summary describes a completed run.
type Summary struct {
	InputRows   int
	SkippedRows int
	DroppedRows int
	DedupedRows int
	LoadedRows  int64
	DSN         string
	Table       string
	Indexes     []string
}

// Run executes Extract, Transform and Load as configured by cfg. The storage
// backend named by cfg.Storage.Kind must be registered, normally by importing
// movieetl/internal/storage/all.
func Run(ctx context.Context, cfg config.Config, log *zap.Logger) (Summary, error) {
	if log == nil {
		log = zap.NewNop()
	}
	sum := Summary{DSN: cfg.Storage.DSN, Table: cfg.Storage.Table}

	done := metrics.Stage(cfg.Job, "extract")
	raw, skipped, err := Extract(ctx, cfg.Source.Path, pcsv.Options{
		Comma:      cfg.Source.CommaRune(),
		NullValues: cfg.Source.NullValues,
	}, log)
	done(err)
	if err != nil {
		return sum, err
	}
	sum.InputRows, sum.SkippedRows = raw.Len(), skipped
	metrics.RecordRows(cfg.Job, metrics.RowsExtracted, int64(raw.Len()))
	metrics.RecordRows(cfg.Job, metrics.RowsSkipped, int64(skipped))

	done = metrics.Stage(cfg.Job, "transform")
	clean, st, err := transformer.Transform(raw, transformer.Options{
		DedupeKeys:   cfg.Transform.Dedupe.Keys,
		DedupePolicy: cfg.Transform.Dedupe.Policy,
	}, log)
	done(err)
	if err != nil {
		return sum, err
	}
	sum.DroppedRows, sum.DedupedRows = st.DroppedRows, st.DedupedRows
	metrics.RecordRows(cfg.Job, metrics.RowsDropped, int64(st.DroppedRows))
	metrics.RecordRows(cfg.Job, metrics.RowsDeduped, int64(st.DedupedRows))

	done = metrics.Stage(cfg.Job, "load")
	res, err := load(ctx, cfg.Storage, clean, log)
	done(err)
	if err != nil {
		return sum, err
	}
	sum.LoadedRows, sum.Indexes = res.Rows, res.Indexes
	metrics.RecordRows(cfg.Job, metrics.RowsLoaded, res.Rows)
	metrics.RecordBatches(cfg.Job, batches(res.Rows, cfg.Storage.BatchSize))

	log.Info("ETL finished successfully")
	log.Info("Database: " + cfg.Storage.DSN)
	log.Info(fmt.Sprintf("Table: %s | Rows: %d", cfg.Storage.Table, res.Rows))
	if sum.SkippedRows > 0 {
		log.Warn(fmt.Sprintf("Skipped %d malformed input lines", sum.SkippedRows))
	}
	return sum, nil
}

func load(ctx context.Context, sc config.StorageConfig, data *frame.Table, log *zap.Logger) (storage.Result, error) {
	log.Info(fmt.Sprintf("Loading into %s: %s (table: %s)", sc.Kind, sc.DSN, sc.Table))

	repo, err := storage.New(ctx, storage.Config{Kind: sc.Kind, DSN: sc.DSN, Logger: log})
	if err != nil {
		return storage.Result{}, err
	}
	defer repo.Close()

	res, err := storage.Load(ctx, repo, sc.Table, data, sc.BatchSize, log)
	if err != nil {
		return res, err
	}
	log.Info("Load complete")
	return res, nil
}

func batches(rows int64, size int) int64 {
	if size <= 0 || rows <= 0 {
		return 0
	}
	return (rows + int64(size) - 1) / int64(size)
}
