// Package main implements the entry point for the revision API server,
// which serves the school catalog, tracks practice and generates study
// items with an LLM.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ncert-revision/revision-api/internal/config"
	"github.com/ncert-revision/revision-api/internal/platform/database"
	"github.com/ncert-revision/revision-api/internal/platform/logger"
)

func main() {
	migrateCmd := flag.String("migrate", "", "run a migration command (up, down, status) and exit")
	skipMigrations := flag.Bool("skip-migrations", false, "do not apply pending migrations at startup")
	flag.Parse()

	if err := run(*migrateCmd, *skipMigrations); err != nil {
		slog.Error("server exited with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(migrateCmd string, skipMigrations bool) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}
	log.Info("server configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.String("database_driver", cfg.Database.Driver),
		slog.String("llm_provider", cfg.LLM.Provider))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, dialect, err := database.Open(ctx, cfg.Database, log)
	if err != nil {
		return err
	}

	if migrateCmd != "" {
		defer func() { _ = db.Close() }()
		return handleMigrations(ctx, db, dialect, migrateCmd, log)
	}
	if !skipMigrations {
		if err := handleMigrations(ctx, db, dialect, "up", log); err != nil {
			_ = db.Close()
			return err
		}
	}

	provider, err := newProvider(ctx, cfg.LLM, log)
	if err != nil {
		_ = db.Close()
		return err
	}

	app, err := newApplication(cfg, log, db, dialect, provider)
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.Run(ctx)
}
