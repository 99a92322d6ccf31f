package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/ncert-revision/revision-api/internal/platform/migrations"
	"github.com/ncert-revision/revision-api/internal/store"
)

// handleMigrations runs one migration command against db.
func handleMigrations(
	ctx context.Context,
	db *sql.DB,
	dialect store.Dialect,
	command string,
	logger *slog.Logger,
) error {
	logger.Info("executing migrations", slog.String("command", command))

	var err error
	switch command {
	case "up":
		err = migrations.Up(ctx, db, dialect, logger)
	case "down":
		err = migrations.Down(ctx, db, dialect, logger)
	case "status":
		err = migrations.Status(ctx, db, dialect, logger)
	default:
		return fmt.Errorf("unknown migration command %q (want up, down or status)", command)
	}
	if err != nil {
		return fmt.Errorf("migration %s failed: %w", command, err)
	}
	return nil
}
