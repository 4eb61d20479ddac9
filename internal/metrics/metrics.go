// Package metrics is a small backend-agnostic layer for recording run-level
// metrics of the movies pipeline: stage outcomes and durations, row counts
// per kind, and insert batches.
//
// A process-wide backend defaults to a no-op, so the record functions are
// always safe to call. Concrete backends live in subpackages (prompush,
// datadog) and are chosen from configuration by package setup.
package metrics

import (
	"sync"
	"time"
)

// Metric names emitted by the pipeline.
const (
	StageTotal    = "etl_stage_total"
	StageDuration = "etl_stage_duration_seconds"
	RowsTotal     = "etl_rows_total"
	BatchesTotal  = "etl_batches_total"
)

// Row kinds passed to RecordRows.
const (
	RowsExtracted = "extracted"
	RowsSkipped   = "skipped_lines"
	RowsDropped   = "dropped"
	RowsDeduped   = "deduped"
	RowsLoaded    = "loaded"
)

// Labels are string key/value pairs attached to a metric.
type Labels map[string]string

// Backend is the minimal interface for metrics backends.
type Backend interface {
	// IncCounter increments a counter by delta.
	IncCounter(name string, delta float64, labels Labels)
	// ObserveHistogram records a value in a duration style metric.
	ObserveHistogram(name string, value float64, labels Labels)
	// Flush pushes or flushes metrics, if the backend needs it.
	Flush() error
}

// Nop discards everything.
type Nop struct{}

func (Nop) IncCounter(string, float64, Labels)       {}
func (Nop) ObserveHistogram(string, float64, Labels) {}
func (Nop) Flush() error                             { return nil }

var (
	mu      sync.RWMutex
	backend Backend = Nop{}
)

// SetBackend installs b and returns the previous backend. Passing nil keeps
// the current one.
func SetBackend(b Backend) Backend {
	mu.Lock()
	defer mu.Unlock()
	prev := backend
	if b != nil {
		backend = b
	}
	return prev
}

func current() Backend {
	mu.RLock()
	defer mu.RUnlock()
	return backend
}

// Flush delegates to the current backend.
func Flush() error {
	return current().Flush()
}

// RecordStage counts one execution of stage and observes its duration,
// labelled success or failure by err.
func RecordStage(job, stage string, err error, d time.Duration) {
	status := "success"
	if err != nil {
		status = "failure"
	}
	lbls := Labels{"job": job, "stage": stage, "status": status}

	b := current()
	b.IncCounter(StageTotal, 1, lbls)
	b.ObserveHistogram(StageDuration, d.Seconds(), lbls)
}

// Stage starts timing stage and returns the function that records it:
//
//	done := metrics.Stage(job, "load")
//	err := load()
//	done(err)
func Stage(job, stage string) func(error) {
	start := time.Now()
	return func(err error) { RecordStage(job, stage, err, time.Since(start)) }
}

// RecordRows adds delta rows of the given kind. Non-positive deltas are
// ignored.
func RecordRows(job, kind string, delta int64) {
	if delta <= 0 {
		return
	}
	current().IncCounter(RowsTotal, float64(delta), Labels{"job": job, "kind": kind})
}

// RecordBatches adds delta insert batches.
func RecordBatches(job string, delta int64) {
	if delta <= 0 {
		return
	}
	current().IncCounter(BatchesTotal, float64(delta), Labels{"job": job})
}
