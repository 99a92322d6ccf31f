package testutils

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"strings"
	"testing"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" driver
	"github.com/ncert-revision/revision-api/internal/platform/migrations"
	"github.com/ncert-revision/revision-api/internal/store"
	"github.com/stretchr/testify/require"
)

// EnvTestDatabaseURL names the variable holding a PostgreSQL URL for
// integration tests. Tests needing PostgreSQL are skipped when it is unset.
const EnvTestDatabaseURL = "REVISION_TEST_DB_URL"

// resettableTables are emptied after each PostgreSQL test, children first.
var resettableTables = []string{
	"user_reset_logs",
	"user_mcq_attempts",
	"progress",
	"api_usages",
	"mcqs",
	"flashcards",
	"users",
	"chapters",
	"subjects",
	"classes",
}

// NewPostgresTestDB connects to the database named by REVISION_TEST_DB_URL,
// migrates it and empties every table when the test ends.
func NewPostgresTestDB(t *testing.T) (*sql.DB, store.Dialect) {
	t.Helper()

	url := os.Getenv(EnvTestDatabaseURL)
	if url == "" {
		t.Skipf("%s not set, skipping PostgreSQL test", EnvTestDatabaseURL)
	}

	db, err := sql.Open("pgx", url)
	require.NoError(t, err, "failed to open PostgreSQL test database")
	require.NoError(t, db.PingContext(context.Background()), "failed to reach PostgreSQL test database")

	err = migrations.Up(context.Background(), db, store.DialectPostgres, slog.New(slog.DiscardHandler))
	require.NoError(t, err, "failed to migrate PostgreSQL test database")

	t.Cleanup(func() {
		query := "TRUNCATE " + strings.Join(resettableTables, ", ") + " RESTART IDENTITY CASCADE"
		if _, err := db.ExecContext(context.Background(), query); err != nil {
			t.Errorf("failed to reset PostgreSQL test database: %v", err)
		}
		_ = db.Close()
	})

	return db, store.DialectPostgres
}

// ForEachDialect runs fn against a fresh SQLite database and, when
// REVISION_TEST_DB_URL is set, against PostgreSQL.
func ForEachDialect(t *testing.T, fn func(t *testing.T, db *sql.DB, dialect store.Dialect)) {
	t.Helper()

	t.Run("sqlite", func(t *testing.T) {
		db, dialect := NewTestDB(t)
		fn(t, db, dialect)
	})
	t.Run("postgres", func(t *testing.T) {
		db, dialect := NewPostgresTestDB(t)
		fn(t, db, dialect)
	})
}
