// Command seed loads the starter catalog, sample items and a demo account
// into the configured database. Running it again changes nothing.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/ncert-revision/revision-api/internal/config"
	"github.com/ncert-revision/revision-api/internal/platform/database"
	"github.com/ncert-revision/revision-api/internal/platform/logger"
	"github.com/ncert-revision/revision-api/internal/platform/migrations"
	"github.com/ncert-revision/revision-api/internal/platform/sqlstore"
)

func main() {
	more := flag.Bool("more", false, "also seed classes 6 to 12 with their subjects and chapters")
	flag.Parse()

	if err := run(context.Background(), *more); err != nil {
		slog.Error("seeding failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, more bool) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	db, dialect, err := database.Open(ctx, cfg.Database, log)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	if err := migrations.Up(ctx, db, dialect, log); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	s := &seeder{
		catalog: sqlstore.NewCatalogStore(db, dialect, log),
		items:   sqlstore.NewItemStore(db, dialect, log),
		users:   sqlstore.NewUserStore(db, dialect, cfg.Auth.BcryptCost, log),
		logger:  log,
	}
	if err := s.seedBase(ctx); err != nil {
		return err
	}
	if more {
		if err := s.seedExtended(ctx); err != nil {
			return err
		}
	}

	log.Info("database seeding completed",
		slog.String("demo_login", demoEmail))
	return nil
}
