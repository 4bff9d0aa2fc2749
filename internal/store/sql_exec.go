package store

import (
	"context"
	"database/sql"
)

// sqlExecutor is implemented by *sql.DB and *sql.Tx so the catalog reads can
// run against either the pool or an explicit transaction.
type sqlExecutor interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}
