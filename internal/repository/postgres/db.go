package postgres

import (
	"context"
	"database/sql"
)

// Querier is an interface satisfied by both *sql.DB and *sql.Tx.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Ensure interfaces are satisfied.
var (
	_ Querier = (*sql.DB)(nil)
	_ Querier = (*sql.Tx)(nil)
)

// Probe issues one cheap read to decide whether the remote backend is
// reachable. It is called exactly once at startup; the result is
// latched for the session.
func Probe(ctx context.Context, db *sql.DB) error {
	var count int
	return db.QueryRowContext(ctx, `SELECT count(*) FROM vehicles`).Scan(&count)
}
