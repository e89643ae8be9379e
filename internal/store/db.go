package store

import (
	"context"
	"database/sql"
)

// DBTX is the slice of database/sql the stores execute queries
// through. Both *sql.DB and *sql.Tx satisfy it, so a store runs
// against the shared pool in production and can run inside a
// caller-managed transaction without any change to the store.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
