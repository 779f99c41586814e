package db

import (
	"context"
	"database/sql"
)

// DBTX is what repositories run their SQL against. Both *sql.DB and *sql.Tx
// satisfy it, so a repository built inside UnitOfWork.WithinTx joins the
// surrounding transaction without knowing about it.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var (
	_ DBTX = (*sql.DB)(nil)
	_ DBTX = (*sql.Tx)(nil)
)
