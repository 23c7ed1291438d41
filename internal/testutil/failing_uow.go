package testutil

import (
	"context"
	"database/sql"

	"github.com/alexanderramin/revgantt/internal/db"
)

// FailingExecUoW runs real SQLite transactions but makes write number FailOn
// (counting from 1) return Err, so multi-write operations can be checked for
// rollback. Reads are never counted.
type FailingExecUoW struct {
	DB     *sql.DB
	FailOn int
	Err    error
}

func (u *FailingExecUoW) WithinTx(ctx context.Context, fn db.TxFunc) error {
	return db.NewSQLiteUnitOfWork(u.DB).WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return fn(ctx, &countingTx{DBTX: tx, failOn: u.FailOn, err: u.Err})
	})
}

// countingTx is used by one transaction body at a time.
type countingTx struct {
	db.DBTX
	writes int
	failOn int
	err    error
}

func (c *countingTx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	c.writes++
	if c.writes == c.failOn {
		return nil, c.err
	}
	return c.DBTX.ExecContext(ctx, query, args...)
}
