package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/MonksterFX/fermentation-station/internal/blob"
	"github.com/MonksterFX/fermentation-station/internal/config"
	"github.com/MonksterFX/fermentation-station/internal/dispatch"
	"github.com/MonksterFX/fermentation-station/internal/domain/schedule"
	"github.com/MonksterFX/fermentation-station/internal/metrics"
	"github.com/MonksterFX/fermentation-station/internal/service"
	"github.com/MonksterFX/fermentation-station/internal/service/auth"
	"github.com/MonksterFX/fermentation-station/internal/store"
	"github.com/MonksterFX/fermentation-station/internal/store/memory"
	"github.com/MonksterFX/fermentation-station/internal/store/postgres"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	// db is nil when the server runs purely in memory.
	db *sql.DB

	// Stores (using interfaces for proper abstraction)
	ferments store.FermentStore
	users    store.UserStore
	images   blob.Store

	// Service interfaces
	jwtService       auth.JWTService
	passwordVerifier auth.PasswordVerifier
	fermentService   service.FermentService
	userService      service.UserService

	// Observability and background work
	metrics    *metrics.Metrics
	dispatcher *dispatch.Dispatcher
}

// newApplication creates a new application instance with all dependencies
// initialized. The context bounds startup work such as loading the database
// snapshot and connecting to blob storage.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	app.passwordVerifier = auth.NewBcryptVerifier(cfg.Auth.BcryptCost)

	if err := app.setupStores(ctx); err != nil {
		return nil, err
	}

	app.images, err = blob.Open(ctx, cfg.Blob)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize blob storage: %w", err)
	}
	logger.Info("blob storage initialized", "driver", app.images.Driver())

	app.fermentService = service.NewFermentService(app.ferments, schedule.NewService(), logger)
	app.userService = service.NewUserService(app.users, app.jwtService, app.passwordVerifier, logger)

	app.metrics = metrics.New(app.ferments)

	if cfg.Dispatch.Enabled {
		interval := time.Duration(cfg.Dispatch.PollIntervalSeconds) * time.Second
		app.dispatcher = dispatch.NewDispatcher(
			app.ferments,
			dispatch.NewLogNotifier(logger),
			interval,
			logger,
		)
		app.dispatcher.Start()
	}

	logger.Info("application initialized successfully")
	return app, nil
}

// setupStores builds the ferment and user stores. With a database URL the
// collection is write-through persisted to postgres and reloaded from it at
// startup; without one everything lives in memory.
func (app *application) setupStores(ctx context.Context) error {
	cfg := app.config

	if cfg.Database.URL == "" {
		ferments := memory.NewFermentStore(memory.WithLogger(app.logger))
		if cfg.Database.Seed {
			ferments.Seed(memory.SeedFerments())
		}
		app.ferments = ferments
		app.users = memory.NewUserStore(cfg.Auth.BcryptCost)
		app.logger.Info("running without persistence, collection is in-memory only")
		return nil
	}

	db, err := postgres.Open(ctx, cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	app.db = db

	if err := postgres.MigrateUp(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	source := postgres.NewSource(db, app.logger)
	ferments := memory.NewFermentStore(
		memory.WithLogger(app.logger),
		memory.WithSource(source),
	)

	snapshot, err := source.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load ferment snapshot: %w", err)
	}

	switch {
	case len(snapshot) > 0:
		ferments.Seed(snapshot)
		app.logger.Info("ferment snapshot loaded", "count", len(snapshot))
	case cfg.Database.Seed:
		demo := memory.SeedFerments()
		ferments.Seed(demo)
		for _, ferment := range demo {
			if err := source.SaveFerment(ctx, ferment); err != nil {
				return fmt.Errorf("failed to persist seed ferment: %w", err)
			}
		}
		app.logger.Info("empty collection seeded with demo ferments", "count", len(demo))
	}

	app.ferments = ferments
	app.users = postgres.NewUserStore(db, cfg.Auth.BcryptCost, app.logger)
	return nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.dispatcher != nil {
		app.dispatcher.Stop()
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", "error", err)
		}
	}

	app.logger.Info("application shutdown completed")
}
