// Package app provides the application bootstrap and initialization logic.
package app

import (
	"fmt"

	"github.com/wajeeh/souqadmin/internal/core/config"
	"github.com/wajeeh/souqadmin/internal/core/event"
	"github.com/wajeeh/souqadmin/internal/core/logger"
	"github.com/wajeeh/souqadmin/internal/feature/cache"
	"github.com/wajeeh/souqadmin/internal/feature/session"
	"github.com/wajeeh/souqadmin/internal/transport"
)

// App wires the dashboard core together: config, logging, the notification
// bus, the token store, the transport selected by mode and the cache
// coordinator on top of it.
type App struct {
	cfgManager  config.Manager
	cfg         *config.Config
	logger      logger.Logger
	bus         event.Bus
	tokens      *session.TokenStore
	client      transport.Client
	coordinator *cache.Coordinator
}

// New creates a new App instance with the given config file path
func New(cfgFile string) (*App, error) {
	a := &App{}

	// 1. Load Config
	a.cfgManager = config.NewManager(cfgFile)
	if err := a.cfgManager.Load(); err != nil {
		return nil, fmt.Errorf("failed to init config: %w", err)
	}
	a.cfg = a.cfgManager.GetConfig()

	// 2. Init Logger
	log, err := logger.NewZapLogger(logger.ParseLevel(a.cfg.Log.Level), a.cfg.Log.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to init logger: %w", err)
	}
	a.logger = log

	// 3. Notification bus
	a.bus = event.NewBus()

	// 4. Token store
	a.tokens, err = session.NewTokenStore(a.cfg.Auth.TokenFile)
	if err != nil {
		return nil, fmt.Errorf("failed to init token store: %w", err)
	}

	// 5. Transport, fixed for the process lifetime
	a.client, err = transport.New(a.cfg, a.tokens, a.bus, a.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to init transport: %w", err)
	}

	// 6. Cache coordinator
	a.coordinator = cache.New(a.cfg.Cache, a.client, a.bus, a.logger)

	return a, nil
}

// Config returns the loaded configuration.
func (a *App) Config() *config.Config {
	return a.cfg
}

// Logger returns the application logger.
func (a *App) Logger() logger.Logger {
	return a.logger
}

// Bus returns the notification bus the UI subscribes to.
func (a *App) Bus() event.Bus {
	return a.bus
}

// Tokens returns the bearer-token store.
func (a *App) Tokens() *session.TokenStore {
	return a.tokens
}

// Coordinator returns the cache coordinator, the entry point for every
// read and mutation.
func (a *App) Coordinator() *cache.Coordinator {
	return a.coordinator
}

// Close releases resources and reports cache counters.
func (a *App) Close() {
	stats := a.coordinator.Stats()
	a.logger.Debug("cache stats",
		logger.Any("hits", stats.Hits),
		logger.Any("misses", stats.Misses),
		logger.Any("sets", stats.Sets),
		logger.Any("invalidations", stats.Invalidations),
	)
	if err := a.client.Close(); err != nil {
		a.logger.Warn("failed to close transport", logger.Err(err))
	}
	_ = a.logger.Sync()
}
