// Package sqlite implements storage.Repository on an embedded SQLite file
// through database/sql and the pure-Go modernc.org/sqlite driver.
//
// The table replacement runs DROP, CREATE and all inserts in one
// transaction; SQLite DDL is transactional, so a failed load leaves the
// previous table untouched.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"movieetl/internal/ddl"
	"movieetl/internal/frame"
	"movieetl/internal/storage"
)

// Repository is a SQLite-backed storage.Repository.
type Repository struct {
	db  *sql.DB
	log *zap.Logger
}

var _ storage.Repository = (*Repository)(nil)

// NewRepository opens the SQLite database at cfg.DSN.
//
// For writes, missing parent directories of a file path are created. For
// read-only use the file must already exist, and the connection is switched
// to query_only so no statement can modify it.
func NewRepository(ctx context.Context, cfg storage.Config) (*Repository, error) {
	dsn := strings.TrimSpace(cfg.DSN)
	if dsn == "" {
		return nil, fmt.Errorf("sqlite: DSN must not be empty")
	}

	if path, ok := filePath(dsn); ok {
		if cfg.ReadOnly {
			if _, err := os.Stat(path); err != nil {
				return nil, fmt.Errorf("sqlite: %w", err)
			}
		} else if dir := filepath.Dir(path); dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("sqlite: create parent dir: %w", err)
			}
		}
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}
	// One connection keeps per-connection pragmas in effect and matches the
	// single-writer model of the pipeline.
	db.SetMaxOpenConns(1)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: ping: %w", err)
	}

	if cfg.ReadOnly {
		if _, err := db.ExecContext(ctx, "PRAGMA query_only = ON"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("sqlite: set query_only: %w", err)
		}
	}

	lg := cfg.Logger
	if lg == nil {
		lg = zap.NewNop()
	}
	return &Repository{db: db, log: lg.Named("sqlite")}, nil
}

// ReplaceTable implements storage.Repository.
func (r *Repository) ReplaceTable(ctx context.Context, def ddl.TableDef, rows [][]any, batchSize int) (int64, error) {
	create, err := BuildCreateTableSQL(def)
	if err != nil {
		return 0, err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("sqlite: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, BuildDropTableSQL(def.Name)); err != nil {
		return 0, fmt.Errorf("sqlite: drop table: %w", err)
	}
	if _, err := tx.ExecContext(ctx, create); err != nil {
		return 0, fmt.Errorf("sqlite: create table: %w", err)
	}

	insertSQL := BuildInsertSQL(def.Name, def.ColumnNames())
	copyFn := func(ctx context.Context, columns []string, batch [][]any) (int64, error) {
		stmt, err := tx.PrepareContext(ctx, insertSQL)
		if err != nil {
			return 0, fmt.Errorf("sqlite: prepare insert: %w", err)
		}
		defer stmt.Close()

		var inserted int64
		for _, row := range batch {
			if len(row) != len(columns) {
				return inserted, fmt.Errorf("sqlite: row length %d != columns length %d", len(row), len(columns))
			}
			if _, err := stmt.ExecContext(ctx, row...); err != nil {
				return inserted, fmt.Errorf("sqlite: insert: %w", err)
			}
			inserted++
		}
		return inserted, nil
	}

	n, err := storage.InsertBatches(ctx, def.ColumnNames(), rows, batchSize, copyFn, r.log)
	if err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("sqlite: commit: %w", err)
	}
	return n, nil
}

// CreateIndex implements storage.Repository.
func (r *Repository) CreateIndex(ctx context.Context, idx ddl.IndexDef) error {
	stmt, err := BuildCreateIndexSQL(idx)
	if err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("sqlite: create index %s: %w", idx.Name, err)
	}
	return nil
}

// Query implements storage.Repository.
func (r *Repository) Query(ctx context.Context, query string) (*frame.Table, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("sqlite: query: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("sqlite: columns: %w", err)
	}
	out := frame.New(cols...)

	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("sqlite: scan: %w", err)
		}
		for i, v := range vals {
			if b, ok := v.([]byte); ok {
				vals[i] = string(b)
			}
		}
		out.Rows = append(out.Rows, vals)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: rows: %w", err)
	}
	return out, nil
}

// Close implements storage.Repository.
func (r *Repository) Close() error { return r.db.Close() }

// filePath returns the filesystem path behind dsn when it is a plain path
// rather than ":memory:" or a "file:" URI.
func filePath(dsn string) (string, bool) {
	if dsn == ":memory:" || strings.HasPrefix(dsn, "file:") {
		return "", false
	}
	return dsn, true
}
