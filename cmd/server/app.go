package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/roam-api/internal/config"
	"github.com/phrazzld/roam-api/internal/platform/geocoding"
	"github.com/phrazzld/roam-api/internal/platform/postgres"
	"github.com/phrazzld/roam-api/internal/platform/storage"
	"github.com/phrazzld/roam-api/internal/service"
	"github.com/phrazzld/roam-api/internal/service/auth"
	"github.com/phrazzld/roam-api/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	// Stores (using interfaces for proper abstraction)
	userStore  store.UserStore
	placeStore store.PlaceStore

	// Platform collaborators
	geocoder geocoding.Geocoder
	images   storage.ImageStore

	// Service interfaces
	jwtService   auth.JWTService
	userService  service.UserService
	placeService service.PlaceService
}

// newApplication creates a new application instance with all dependencies
// initialized. It accepts core dependencies like configuration, logger and
// database connection that must be established before initialization.
func newApplication(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	db *sql.DB,
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
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	passwords := auth.NewBcryptVerifier(cfg.Auth.BcryptCost)

	app.userStore = postgres.NewUserStore(db, logger)
	app.placeStore = postgres.NewPlaceStore(db, logger)

	app.images, err = setupImageStore(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize image storage: %w", err)
	}

	app.geocoder = geocoding.NewClient(
		cfg.Geocoding.BaseURL,
		time.Duration(cfg.Geocoding.TimeoutSeconds)*time.Second,
		logger,
	)

	app.userService, err = service.NewUserService(
		app.userStore,
		passwords,
		passwords,
		app.jwtService,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create user service: %w", err)
	}

	app.placeService, err = service.NewPlaceService(
		db,
		app.placeStore,
		app.userStore,
		app.geocoder,
		app.images,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create place service: %w", err)
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// setupImageStore builds the configured image storage backend.
func setupImageStore(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
) (storage.ImageStore, error) {
	switch cfg.Storage.Backend {
	case "s3":
		return storage.NewS3Store(ctx, storage.S3Options{
			Bucket:   cfg.Storage.Bucket,
			Region:   cfg.Storage.Region,
			Endpoint: cfg.Storage.Endpoint,
		}, logger)
	default:
		return storage.NewLocalStore(cfg.Storage.LocalDir, logger)
	}
}

// Run starts the application server, handling lifecycle and cleanup.
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
			app.logger.Error("Error closing database connection", "error", err)
		}
	}
	app.logger.Info("Application shutdown completed")
}
