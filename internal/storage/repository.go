// Package storage defines the backend-neutral contract for the relational
// store and the loader that replaces the movie table through it.
//
// Backends register a Factory for their kind in init; importing
// movieetl/internal/storage/all makes every built-in backend available.
package storage

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"

	"movieetl/internal/ddl"
	"movieetl/internal/frame"
)

// ErrStorage is matched by every error caused by opening or writing the store.
var ErrStorage = errors.New("storage")

// Config selects and configures a backend.
type Config struct {
	// Kind is the registered backend name, e.g. "sqlite".
	Kind string
	// DSN is the backend connection string or file path.
	DSN string
	// ReadOnly opens the store for queries only. A read-only SQLite store
	// must already exist.
	ReadOnly bool
	// Logger receives progress lines; nil disables them.
	Logger *zap.Logger
}

// Repository is the set of operations the loader and analyzer need.
type Repository interface {
	// ReplaceTable drops def.Name if present, recreates it from def and
	// inserts rows in batches of batchSize, all in one transaction. It returns
	// the number of rows inserted.
	ReplaceTable(ctx context.Context, def ddl.TableDef, rows [][]any, batchSize int) (int64, error)

	// CreateIndex creates idx unless an index with that name exists.
	CreateIndex(ctx context.Context, idx ddl.IndexDef) error

	// Query runs a read-only statement and returns the full result.
	Query(ctx context.Context, query string) (*frame.Table, error)

	Close() error
}

// Factory opens a Repository for cfg.
type Factory func(ctx context.Context, cfg Config) (Repository, error)

var (
	mu        sync.RWMutex
	factories = map[string]Factory{}
)

// Register makes a backend available under kind, replacing any previous
// registration.
func Register(kind string, f Factory) {
	mu.Lock()
	defer mu.Unlock()
	factories[kind] = f
}

// ListKinds returns the registered kinds in sorted order.
func ListKinds() []string {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, 0, len(factories))
	for k := range factories {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// New opens the backend registered for cfg.Kind. Failures match ErrStorage.
func New(ctx context.Context, cfg Config) (Repository, error) {
	mu.RLock()
	f, ok := factories[cfg.Kind]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: unsupported kind %q (registered: %v)", ErrStorage, cfg.Kind, ListKinds())
	}
	repo, err := f(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", ErrStorage, cfg.Kind, err)
	}
	return repo, nil
}
