// Package postgres implements storage.Repository on a Postgres server using
// pgx v5. Rows are streamed with COPY inside the same transaction that drops
// and recreates the table.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"movieetl/internal/ddl"
	"movieetl/internal/frame"
	"movieetl/internal/storage"
)

// ErrReadOnly is returned by write operations on a read-only repository.
var ErrReadOnly = errors.New("postgres: repository is read-only")

// Config holds Postgres repository configuration.
type Config struct {
	DSN      string // connection string for pgxpool
	ReadOnly bool
	Logger   *zap.Logger
}

// Repository is a Postgres-backed implementation of storage.Repository.
type Repository struct {
	pool *pgxpool.Pool
	cfg  Config
	log  *zap.Logger
}

// NewRepository connects a pool and returns a close function for cleanup.
func NewRepository(ctx context.Context, cfg Config) (*Repository, func(), error) {
	pool, err := pgxpool.New(ctx, cfg.DSN)
	if err != nil {
		return nil, nil, fmt.Errorf("pgxpool: %w", err)
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("pgxpool ping: %w", err)
	}
	lg := cfg.Logger
	if lg == nil {
		lg = zap.NewNop()
	}
	return &Repository{pool: pool, cfg: cfg, log: lg.Named("postgres")}, pool.Close, nil
}

// ReplaceTable drops and recreates def, then COPYs rows in batches, all in
// one transaction.
func (r *Repository) ReplaceTable(ctx context.Context, def ddl.TableDef, rows [][]any, batchSize int) (int64, error) {
	if r.cfg.ReadOnly {
		return 0, ErrReadOnly
	}
	create, err := BuildCreateTableSQL(def)
	if err != nil {
		return 0, err
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, BuildDropTableSQL(def.Name)); err != nil {
		return 0, fmt.Errorf("drop table: %w", err)
	}
	if _, err := tx.Exec(ctx, create); err != nil {
		return 0, fmt.Errorf("create table: %w", err)
	}

	target := pgx.Identifier{def.Name}
	copyFn := func(ctx context.Context, columns []string, batch [][]any) (int64, error) {
		n, err := tx.CopyFrom(ctx, target, columns, pgx.CopyFromRows(batch))
		if err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Detail != "" {
				return n, fmt.Errorf("copy: %s (%s): %w", pgErr.Detail, pgErr.SQLState(), err)
			}
			return n, fmt.Errorf("copy: %w", err)
		}
		return n, nil
	}

	n, err := storage.InsertBatches(ctx, def.ColumnNames(), rows, batchSize, copyFn, r.log)
	if err != nil {
		return 0, err
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return n, nil
}

// CreateIndex implements storage.Repository.
func (r *Repository) CreateIndex(ctx context.Context, idx ddl.IndexDef) error {
	if r.cfg.ReadOnly {
		return ErrReadOnly
	}
	stmt, err := BuildCreateIndexSQL(idx)
	if err != nil {
		return err
	}
	if _, err := r.pool.Exec(ctx, stmt); err != nil {
		return fmt.Errorf("create index %s: %w", idx.Name, err)
	}
	return nil
}

// Query runs query and collects the full result. A read-only repository runs
// it inside a READ ONLY transaction.
func (r *Repository) Query(ctx context.Context, query string) (*frame.Table, error) {
	if !r.cfg.ReadOnly {
		return collect(ctx, r.pool, query)
	}
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly})
	if err != nil {
		return nil, fmt.Errorf("begin read-only tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()
	return collect(ctx, tx, query)
}

type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func collect(ctx context.Context, q querier, query string) (*frame.Table, error) {
	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	cols := make([]string, len(fields))
	for i, f := range fields {
		cols[i] = f.Name
	}
	out := frame.New(cols...)

	for rows.Next() {
		vals, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("values: %w", err)
		}
		for i, v := range vals {
			if vals[i], err = convertValue(v); err != nil {
				return nil, fmt.Errorf("column %s: %w", cols[i], err)
			}
		}
		out.Rows = append(out.Rows, vals)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return out, nil
}

// convertValue narrows pgx result values to the cell types a frame carries:
// string, int64, float64 or nil.
func convertValue(v any) (any, error) {
	switch x := v.(type) {
	case nil, string, int64, float64:
		return x, nil
	case int16:
		return int64(x), nil
	case int32:
		return int64(x), nil
	case float32:
		return float64(x), nil
	case []byte:
		return string(x), nil
	case pgtype.Numeric:
		if !x.Valid {
			return nil, nil
		}
		f, err := x.Float64Value()
		if err != nil {
			return nil, err
		}
		if !f.Valid {
			return nil, nil
		}
		return f.Float64, nil
	default:
		return fmt.Sprint(x), nil
	}
}
