package marketdata

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/status-im/market-dashboard/cache"
	cg "github.com/status-im/market-dashboard/coingecko_common"
	"github.com/status-im/market-dashboard/coingecko_global"
	"github.com/status-im/market-dashboard/coingecko_markets"
	"github.com/status-im/market-dashboard/coingecko_prices"
	"github.com/status-im/market-dashboard/coingecko_trending"
	"github.com/status-im/market-dashboard/config"
	"github.com/status-im/market-dashboard/interfaces"
)

var _ interfaces.MarketDataClient = (*Service)(nil)

// Clients bundles the per-endpoint API clients. Nil fields fall back to the
// CoinGecko implementation.
type Clients struct {
	Global   coingecko_global.APIClient
	Trending coingecko_trending.APIClient
	Prices   coingecko_prices.APIClient
	Markets  coingecko_markets.APIClient
}

// Service is the single entry point to CoinGecko data. Every call goes
// through the shared response cache, which the service also invalidates.
type Service struct {
	cache    cache.Cache
	global   *coingecko_global.Service
	trending *coingecko_trending.Service
	prices   *coingecko_prices.Service
	markets  *coingecko_markets.Service
}

// NewService creates the market data client backed by CoinGecko
func NewService(cache cache.Cache, cfg *config.Config) *Service {
	return NewServiceWithClients(cache, cfg, Clients{})
}

// NewServiceWithClients allows injecting custom endpoint clients
func NewServiceWithClients(cache cache.Cache, cfg *config.Config, clients Clients) *Service {
	s := &Service{cache: cache}

	if clients.Global != nil {
		s.global = coingecko_global.NewServiceWithClient(cache, cfg, clients.Global)
	} else {
		s.global = coingecko_global.NewService(cache, cfg)
	}
	if clients.Trending != nil {
		s.trending = coingecko_trending.NewServiceWithClient(cache, cfg, clients.Trending)
	} else {
		s.trending = coingecko_trending.NewService(cache, cfg)
	}
	if clients.Prices != nil {
		s.prices = coingecko_prices.NewServiceWithClient(cache, cfg, clients.Prices)
	} else {
		s.prices = coingecko_prices.NewService(cache, cfg)
	}
	if clients.Markets != nil {
		s.markets = coingecko_markets.NewServiceWithClient(cache, cfg, clients.Markets)
	} else {
		s.markets = coingecko_markets.NewService(cache, cfg)
	}

	return s
}

// Start implements core.Interface
func (s *Service) Start(ctx context.Context) error {
	services := []struct {
		name string
		svc  interface{ Start(context.Context) error }
	}{
		{cg.OpGlobal, s.global},
		{cg.OpTrending, s.trending},
		{cg.OpSimplePrice, s.prices},
		{cg.OpMarkets, s.markets},
	}
	for _, entry := range services {
		if err := entry.svc.Start(ctx); err != nil {
			return fmt.Errorf("failed to start %s service: %w", entry.name, err)
		}
	}
	return nil
}

// Stop implements core.Interface
func (s *Service) Stop() {
	s.global.Stop()
	s.trending.Stop()
	s.prices.Stop()
	s.markets.Stop()
}

// FetchGlobal returns aggregate market statistics
func (s *Service) FetchGlobal(ctx context.Context) (*coingecko_global.GlobalStats, error) {
	return s.global.FetchGlobal(ctx)
}

// FetchTrending returns trending coins in provider order
func (s *Service) FetchTrending(ctx context.Context) ([]coingecko_trending.TrendingCoin, error) {
	return s.trending.FetchTrending(ctx)
}

// FetchSimplePrice returns a price per id. Empty ids return an empty map
// without a network call.
func (s *Service) FetchSimplePrice(ctx context.Context, ids []string, currency cg.Currency) (coingecko_prices.Prices, error) {
	prices, status, err := s.prices.FetchSimplePrice(ctx, ids, currency)
	if err != nil {
		return nil, err
	}
	log.Debug().Int("ids", len(ids)).Str("currency", currency.String()).Str("cache", status.String()).
		Msg("MarketData: resolved prices")
	return prices, nil
}

// FetchMarkets returns one page of the market listing
func (s *Service) FetchMarkets(ctx context.Context, params coingecko_markets.MarketsParams) ([]coingecko_markets.MarketEntry, error) {
	return s.markets.FetchMarkets(ctx, params)
}

// InvalidateCurrency drops the cached prices and listings of currency.
// Global stats and trending coins are currency independent and stay cached.
func (s *Service) InvalidateCurrency(currency cg.Currency) int {
	removed := s.prices.InvalidateCurrency(currency) + s.markets.InvalidateCurrency(currency)
	log.Debug().Str("currency", currency.String()).Int("removed", removed).Msg("MarketData: invalidated currency")
	return removed
}

// Invalidate drops the cached responses of operation. An empty operation
// clears the whole cache.
func (s *Service) Invalidate(operation string) int {
	switch operation {
	case cg.OpGlobal:
		return s.global.Invalidate()
	case cg.OpTrending:
		return s.trending.Invalidate()
	case cg.OpSimplePrice:
		return s.prices.Invalidate()
	case cg.OpMarkets:
		return s.markets.Invalidate()
	case "":
		return s.cache.Invalidate("")
	}
	log.Warn().Str("operation", operation).Msg("MarketData: invalidate called with unknown operation")
	return 0
}

// Healthy reports per operation whether the provider answered at least once
func (s *Service) Healthy() map[string]bool {
	return map[string]bool{
		cg.OpGlobal:      s.global.Healthy(),
		cg.OpTrending:    s.trending.Healthy(),
		cg.OpSimplePrice: s.prices.Healthy(),
		cg.OpMarkets:     s.markets.Healthy(),
	}
}
