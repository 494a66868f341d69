package core

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/status-im/market-dashboard/api"
	"github.com/status-im/market-dashboard/cache"
	"github.com/status-im/market-dashboard/config"
	"github.com/status-im/market-dashboard/dashboard"
	"github.com/status-im/market-dashboard/marketdata"
	"github.com/status-im/market-dashboard/scheduler"
)

// App holds the wired services. Server is nil when the HTTP API is disabled.
type App struct {
	Registry *Registry
	Client   *marketdata.Service
	Store    *dashboard.Store
	Server   *api.Server
}

// Options selects the optional surfaces
type Options struct {
	// Serve starts the HTTP API on cfg.Server.Port
	Serve bool
}

// Setup creates and registers all services in start order
func Setup(ctx context.Context, cfg *config.Config, opts Options) (*App, error) {
	registry := NewRegistry()

	// Create Cache service
	cacheService := cache.NewService(cfg.Cache)
	registry.Register(cacheService)

	// Create the cached CoinGecko client
	client := marketdata.NewService(cacheService, cfg)
	registry.Register(client)

	// Create the dashboard store; its Start runs the first refresh
	store := dashboard.NewStore(client, cfg)
	registry.Register(store)

	// Periodic refresh
	refresh, err := scheduler.New(cfg.Dashboard.RefreshSchedule, func(ctx context.Context) {
		if err := store.Refresh(ctx); err != nil {
			log.Warn().Err(err).Msg("Scheduled refresh completed with errors")
		}
	})
	if err != nil {
		return nil, fmt.Errorf("refresh scheduler: %w", err)
	}
	registry.Register(&scheduledService{scheduler: refresh})

	app := &App{Registry: registry, Client: client, Store: store}

	if opts.Serve {
		app.Server = api.New(cfg.Server.Port, store, client).WithCacheStats(cacheService.Stats)
		registry.Register(app.Server)
	}

	return app, nil
}

// scheduledService adapts a Scheduler to Interface. The first run is left to
// the store's own Start.
type scheduledService struct {
	scheduler *scheduler.Scheduler
}

func (s *scheduledService) Start(ctx context.Context) error {
	s.scheduler.Start(ctx, false)
	return nil
}

func (s *scheduledService) Stop() {
	s.scheduler.Stop()
}
