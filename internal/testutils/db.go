package testutils

import (
	"context"
	"database/sql"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/ncert-revision/revision-api/internal/platform/migrations"
	"github.com/ncert-revision/revision-api/internal/store"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

// SQLiteDSN returns a DSN for a database file at path with the pragmas the
// application relies on.
func SQLiteDSN(path string) string {
	return "file:" + path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

// NewTestDB opens a fresh, fully migrated SQLite database in the test's
// temp directory. It is closed automatically when the test ends.
func NewTestDB(t *testing.T) (*sql.DB, store.Dialect) {
	t.Helper()

	db, err := sql.Open("sqlite", SQLiteDSN(filepath.Join(t.TempDir(), "test.db")))
	require.NoError(t, err, "failed to open test database")
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	err = migrations.Up(context.Background(), db, store.DialectSQLite, slog.New(slog.DiscardHandler))
	require.NoError(t, err, "failed to migrate test database")

	return db, store.DialectSQLite
}

// WithTx runs fn inside a transaction that is always rolled back.
func WithTx(t *testing.T, db *sql.DB, fn func(t *testing.T, tx *sql.Tx)) {
	t.Helper()

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err, "failed to begin transaction")
	defer func() { _ = tx.Rollback() }()

	fn(t, tx)
}

// CountRows counts rows of table matching where, written with $N placeholders.
func CountRows(t *testing.T, db store.DBTX, table, where string, args ...any) int {
	t.Helper()

	query := "SELECT COUNT(*) FROM " + table
	if where != "" {
		query += " WHERE " + where
	}
	var n int
	err := db.QueryRowContext(context.Background(), store.DialectSQLite.Rebind(query), args...).Scan(&n)
	require.NoError(t, err, "failed to count %s", table)
	return n
}
