package store

import (
	"context"
	"database/sql"
)

// DBTX is the minimal database surface the tissue-config store needs.
// Both *sql.DB and *sql.Tx satisfy it, so the same store code runs
// against the pool directly or inside RunInTransaction via WithTx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
