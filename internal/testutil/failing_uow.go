package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/alexanderramin/prodtime/internal/db"
)

// FaultyUoW is a UnitOfWork whose transactions pass every write through
// Fault. A non-nil result is returned in place of executing the statement,
// and the transaction is rolled back when fn returns it. Reads are not
// intercepted.
type FaultyUoW struct {
	DB *sql.DB
	// Fault receives the 1-based write number within the transaction and
	// the SQL text.
	Fault func(n int32, query string) error
}

// FailOnNthExec fails the nth write of each transaction with err.
func FailOnNthExec(database *sql.DB, n int32, err error) *FaultyUoW {
	return &FaultyUoW{DB: database, Fault: func(i int32, _ string) error {
		if i == n {
			return err
		}
		return nil
	}}
}

// FailOnTable fails the first write whose SQL mentions table.
func FailOnTable(database *sql.DB, table string, err error) *FaultyUoW {
	return &FaultyUoW{DB: database, Fault: func(_ int32, query string) error {
		if strings.Contains(query, table) {
			return err
		}
		return nil
	}}
}

func (u *FaultyUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	tx, err := u.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	if err := fn(ctx, &faultyTx{DBTX: tx, fault: u.Fault}); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

type faultyTx struct {
	db.DBTX
	writes atomic.Int32
	fault  func(int32, string) error
}

func (f *faultyTx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if err := f.fault(f.writes.Add(1), query); err != nil {
		return nil, err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
