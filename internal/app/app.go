// Package app assembles the placekeeper subsystems for a single launch:
// place store, session context, bootstrap gate, and the collaborator
// clients, all built from one Config.
package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"placekeeper/internal/authapi"
	"placekeeper/internal/bootstrap"
	"placekeeper/internal/config"
	"placekeeper/internal/geo"
	"placekeeper/internal/keyvalue"
	"placekeeper/internal/navigation"
	"placekeeper/internal/session"
	"placekeeper/internal/store"
)

// App owns the wired subsystems for one process lifetime.
type App struct {
	Config    *config.Config
	Places    *store.PlaceStore
	Session   *session.Context
	Bootstrap *bootstrap.Bootstrap
	Auth      authapi.Client
	Geocoder  geo.ReverseGeocoder

	logger *zap.Logger
}

// New wires an App from configuration. Nothing durable is touched until
// Start runs the bootstrap sequence.
func New(cfg *config.Config, logger *zap.Logger) *App {
	if logger == nil {
		logger = zap.NewNop()
	}

	places := store.NewPlaceStore(cfg.DatabasePath(), logger.Named("store"))
	sess := session.NewContext(keyvalue.NewFileStore(cfg.SlotPath()), logger.Named("session"))

	app := &App{
		Config:    cfg,
		Places:    places,
		Session:   sess,
		Bootstrap: bootstrap.New(places, sess, logger.Named("bootstrap")),
		Auth:      authapi.NewHTTPClient(cfg.Auth.BaseURL, cfg.AuthTimeout()),
		logger:    logger,
	}
	if cfg.Geocoding.Enabled {
		app.Geocoder = geo.NewNominatimGeocoder(cfg.Geocoding.BaseURL)
	}
	return app
}

// Start runs the one-time bootstrap and reports the startup result. A
// degraded result is not an error: the app stays usable with the failed
// feature disabled.
func (a *App) Start(ctx context.Context) bootstrap.Result {
	result := a.Bootstrap.Run(ctx)
	if result.Degraded() {
		a.logger.Warn("started in degraded mode")
	}
	return result
}

// Stack returns the screen stack the navigation gate selects for the
// current session state.
func (a *App) Stack() navigation.Stack {
	return navigation.Select(a.Session.IsAuthenticated())
}

// RequireAuthenticated fails unless the gate currently selects the
// authenticated stack.
func (a *App) RequireAuthenticated() error {
	if a.Stack() != navigation.StackAuthenticated {
		return fmt.Errorf("not logged in: run 'placekeeper login' first")
	}
	return nil
}

// Close releases the store's database handle.
func (a *App) Close() error {
	return a.Places.Close()
}
