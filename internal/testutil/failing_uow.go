package testutil

import (
	"context"
	"database/sql"
	"strings"

	"github.com/alexanderramin/timereport/internal/db"
)

// FailingUoW runs transactions on DB but fails every write whose SQL
// contains Match with Err. Earlier writes of the same transaction are rolled
// back, which lets tests check atomicity of multi-step service operations.
type FailingUoW struct {
	DB    *sql.DB
	Match string
	Err   error
}

func (u *FailingUoW) WithinTx(ctx context.Context, fn func(ctx context.Context, tx db.DBTX) error) error {
	return db.NewSQLiteUnitOfWork(u.DB).WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return fn(ctx, failingTx{DBTX: tx, match: u.Match, err: u.Err})
	})
}

type failingTx struct {
	db.DBTX
	match string
	err   error
}

func (f failingTx) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	if f.match != "" && strings.Contains(query, f.match) {
		return nil, f.err
	}
	return f.DBTX.ExecContext(ctx, query, args...)
}
