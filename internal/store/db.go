package store

import (
	"context"
	"database/sql"
	"strings"
)

// DBTX is an interface that abstracts the database access layer.
// It is implemented by both *sql.DB and *sql.Tx, allowing our code
// to work with either a database connection or a transaction.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Dialect names the SQL flavor behind a connection.
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

// Rebind rewrites a query written with PostgreSQL $N placeholders for the
// dialect. SQLite receives the equivalent numbered ?N form.
func (d Dialect) Rebind(query string) string {
	if d != DialectSQLite {
		return query
	}
	return strings.ReplaceAll(query, "$", "?")
}
