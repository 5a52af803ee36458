package sqldb

import (
	"context"
	"database/sql"
	"fmt"

	"todo-assistant/internal/todo/repository"
	"todo-assistant/pkg/database"
	"todo-assistant/pkg/log"
)

// dbtx is the subset of *sql.DB and *sql.Tx the queries need.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type implRepository struct {
	db     *sql.DB
	q      dbtx
	inTx   bool
	driver database.Driver
	l      log.Logger
}

// New creates a SQL-backed Repository for the todo domain. The same
// queries run on PostgreSQL and SQLite.
func New(db *sql.DB, driver database.Driver, l log.Logger) repository.Repository {
	if db == nil {
		panic("todo/repository/sqldb: db is required")
	}
	return &implRepository{db: db, q: db, driver: driver, l: l}
}

// dsn is a helper to return a method-scoped context string for logging.
func (r *implRepository) dsn(method string) string {
	return fmt.Sprintf("todo/repository/sqldb.%s", method)
}

func (r *implRepository) rebind(query string) string {
	return r.driver.Rebind(query)
}

// WithTx runs fn in a transaction. Nested calls reuse the outer transaction.
func (r *implRepository) WithTx(ctx context.Context, fn func(ctx context.Context, tx repository.Repository) error) error {
	if r.inTx {
		return fn(ctx, r)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		r.l.Errorf(ctx, "%s: %v", r.dsn("WithTx"), err)
		return repository.ErrFailedToBegin
	}
	defer func() { _ = tx.Rollback() }()

	txRepo := &implRepository{db: r.db, q: tx, inTx: true, driver: r.driver, l: r.l}
	if err := fn(ctx, txRepo); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		r.l.Errorf(ctx, "%s commit: %v", r.dsn("WithTx"), err)
		return repository.ErrFailedToCommit
	}
	return nil
}

// mapWriteErr turns unique violations into ErrDuplicate and everything else
// into fallback.
func (r *implRepository) mapWriteErr(ctx context.Context, method string, err error, fallback error) error {
	if database.IsUniqueViolation(err) {
		return repository.ErrDuplicate
	}
	r.l.Errorf(ctx, "%s: %v", r.dsn(method), err)
	return fallback
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func nullInt(p *int) any {
	if p == nil {
		return nil
	}
	return int64(*p)
}

func intPtr(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int64)
	return &v
}
