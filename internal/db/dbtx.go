package db

import (
	"context"
	"database/sql"
)

// DBTX is what the report, item, employee, week and holiday repositories
// run their statements against. Outside a transaction it is the *sql.DB;
// inside UnitOfWork.WithinTx it is the *sql.Tx, so saving an item can upsert
// the employee and week mapping in the same transaction as the row.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

var _, _ DBTX = (*sql.DB)(nil), (*sql.Tx)(nil)
