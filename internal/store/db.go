package store

import (
	"context"
	"database/sql"
)

// DBTX abstracts the database handle used by store implementations.
// Both *sql.DB and *sql.Tx satisfy it, so a store can run against a
// plain connection pool or inside a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
