// Package database opens the SQL connection for the configured driver:
// PostgreSQL through pgx's database/sql adapter, or an embedded SQLite file
// through modernc.org/sqlite.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" driver
	"github.com/ncert-revision/revision-api/internal/config"
	"github.com/ncert-revision/revision-api/internal/store"
	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

// driverName maps a configured driver to its database/sql registration.
func driverName(dialect store.Dialect) (string, error) {
	switch dialect {
	case store.DialectPostgres:
		return "pgx", nil
	case store.DialectSQLite:
		return "sqlite", nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", dialect)
	}
}

// Open establishes a connection for cfg, configures the pool and pings it.
// It returns the connection together with the SQL dialect the stores use.
func Open(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*sql.DB, store.Dialect, error) {
	dialect := store.Dialect(cfg.Driver)
	name, err := driverName(dialect)
	if err != nil {
		return nil, "", err
	}

	db, err := sql.Open(name, cfg.URL)
	if err != nil {
		return nil, "", fmt.Errorf("failed to open database connection: %w", err)
	}

	switch dialect {
	case store.DialectSQLite:
		// SQLite allows one writer; a single connection keeps transactions
		// from failing with SQLITE_BUSY.
		db.SetMaxOpenConns(1)
	default:
		maxOpen := cfg.MaxOpenConns
		if maxOpen <= 0 {
			maxOpen = 10
		}
		db.SetMaxOpenConns(maxOpen)
		db.SetMaxIdleConns(maxOpen / 2)
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, "", fmt.Errorf("failed to ping database: %w", err)
	}

	if dialect == store.DialectSQLite {
		if _, err := db.ExecContext(ctx, "PRAGMA foreign_keys = ON"); err != nil {
			_ = db.Close()
			return nil, "", fmt.Errorf("failed to enable foreign keys: %w", err)
		}
	}

	logger.Info("database connection established", slog.String("driver", name))
	return db, dialect, nil
}
