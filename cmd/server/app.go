package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/ncert-revision/revision-api/internal/config"
	"github.com/ncert-revision/revision-api/internal/generation"
	"github.com/ncert-revision/revision-api/internal/platform/gemini"
	"github.com/ncert-revision/revision-api/internal/platform/mailer"
	"github.com/ncert-revision/revision-api/internal/platform/openrouter"
	"github.com/ncert-revision/revision-api/internal/platform/sqlstore"
	"github.com/ncert-revision/revision-api/internal/quota"
	"github.com/ncert-revision/revision-api/internal/service"
	"github.com/ncert-revision/revision-api/internal/service/auth"
	"github.com/ncert-revision/revision-api/internal/store"
)

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	catalogStore store.CatalogStore
	itemStore    store.ItemStore

	jwtService        auth.JWTService
	userService       service.UserService
	generationService service.GenerationService
	revisionService   service.RevisionService
}

// newProvider builds the configured content provider. It returns a nil
// provider, not an error, when the selected provider has no credential, so
// the server still starts and generation reports itself unavailable.
func newProvider(ctx context.Context, cfg config.LLMConfig, logger *slog.Logger) (generation.Provider, error) {
	if cfg.APIKey() == "" {
		logger.Warn("no LLM credential configured, generation disabled",
			slog.String("provider", cfg.Provider))
		return nil, nil
	}

	var (
		p   generation.Provider
		err error
	)
	switch cfg.Provider {
	case config.ProviderOpenRouter:
		p, err = openrouter.New(cfg, logger.With(slog.String("component", "openrouter")))
	default:
		p, err = gemini.New(ctx, cfg, logger.With(slog.String("component", "gemini")))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize %s provider: %w", cfg.Provider, err)
	}

	logger.Info("LLM provider initialized",
		slog.String("provider", p.Name()),
		slog.String("model", cfg.ModelName))
	return p, nil
}

// newApplication wires stores and services over an open database. provider
// may be nil.
func newApplication(
	cfg *config.Config,
	logger *slog.Logger,
	db *sql.DB,
	dialect store.Dialect,
	provider generation.Provider,
) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}

	userStore := sqlstore.NewUserStore(db, dialect, cfg.Auth.BcryptCost, logger)
	app.catalogStore = sqlstore.NewCatalogStore(db, dialect, logger)
	app.itemStore = sqlstore.NewItemStore(db, dialect, logger)
	progressStore := sqlstore.NewProgressStore(db, dialect, logger)
	attemptStore := sqlstore.NewAttemptStore(db, dialect, logger)

	ledger, err := quota.NewLedger(sqlstore.NewQuotaStore(db, dialect, logger), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create quota ledger: %w", err)
	}

	mail := mailer.New(cfg.Mail, logger)
	if mail == nil {
		logger.Info("mail not configured, login issues tokens without a passcode step")
	}

	app.userService, err = service.NewUserService(
		userStore,
		app.jwtService,
		auth.NewBcryptVerifier(),
		mail,
		nil,
		service.UserConfig{OTPLifetime: cfg.Auth.OTPLifetime()},
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create user service: %w", err)
	}

	app.generationService, err = service.NewGenerationService(
		db,
		app.catalogStore,
		app.itemStore,
		ledger,
		provider,
		service.GenerationConfigFrom(cfg.LLM),
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create generation service: %w", err)
	}

	app.revisionService, err = service.NewRevisionService(
		db,
		userStore,
		app.catalogStore,
		app.itemStore,
		progressStore,
		attemptStore,
		nil,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create revision service: %w", err)
	}

	logger.Info("application initialized successfully")
	return app, nil
}

// Run starts the HTTP server and blocks until ctx is canceled or the server
// fails.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", slog.String("error", err.Error()))
		}
	}
	app.logger.Info("application shutdown completed")
}
