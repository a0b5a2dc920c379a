// Package sqltable reads database query results into table rows.
package sqltable

import (
	"context"
	"database/sql"
)

var _ Rows = &sql.Rows{}

// Rows is the subset of the methods of *sql.Rows
// needed to read a result set.
type Rows interface {
	Columns() ([]string, error)
	Scan(dest ...any) error
	Close() error
	Next() bool
	Err() error
}

var _ Querier = &sql.DB{}

// Querier is implemented by *sql.DB, *sql.Conn and *sql.Tx.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}
