package database

import (
	"context"
	"database/sql"
)

// Querier is the statement surface repositories depend on.
type Querier interface {
	Exec(ctx context.Context, query string, args ...any) (int64, error)
	QueryRow(ctx context.Context, query string, args ...any) Row
}

// DB is an owned connection pool. SQLDB exposes it to database/sql users
// such as the migration runner.
type DB interface {
	Querier

	Ping(ctx context.Context) error
	Close() error
	SQLDB() *sql.DB
}

type Row interface {
	Scan(dest ...any) error
}
