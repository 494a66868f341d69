package coingecko_markets

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/status-im/market-dashboard/cache"
	cg "github.com/status-im/market-dashboard/coingecko_common"
	"github.com/status-im/market-dashboard/config"
	"github.com/status-im/market-dashboard/metrics"
)

// Service serves market listing pages through the response cache
type Service struct {
	cache         cache.Cache
	config        *config.Config
	metricsWriter *metrics.MetricsWriter
	apiClient     APIClient
}

// NewService creates a markets service backed by CoinGecko
func NewService(cache cache.Cache, cfg *config.Config) *Service {
	metricsWriter := metrics.NewMetricsWriter(metrics.ServiceMarkets)
	return newService(cache, cfg, NewCoinGeckoClient(&cfg.Coingecko, metricsWriter), metricsWriter)
}

// NewServiceWithClient allows injecting a custom APIClient
func NewServiceWithClient(cache cache.Cache, cfg *config.Config, apiClient APIClient) *Service {
	return newService(cache, cfg, apiClient, metrics.NewMetricsWriter(metrics.ServiceMarkets))
}

func newService(cache cache.Cache, cfg *config.Config, apiClient APIClient, metricsWriter *metrics.MetricsWriter) *Service {
	return &Service{
		cache:         cache,
		config:        cfg,
		metricsWriter: metricsWriter,
		apiClient:     apiClient,
	}
}

// Start implements core.Interface
func (s *Service) Start(ctx context.Context) error {
	if s.cache == nil {
		return fmt.Errorf("cache dependency not provided")
	}
	return nil
}

// Stop implements core.Interface
func (s *Service) Stop() {}

// CacheKey returns the cache slot for one page: markets|<currency>|<per_page>|<page>|<windows>
func CacheKey(params MarketsParams) string {
	return cg.CacheKey(cg.OpMarkets, params.Currency,
		strconv.Itoa(params.PerPage), strconv.Itoa(params.Page), windowsArg(params.Windows))
}

// FetchMarkets returns one page in provider order (market cap descending).
// Invalid params are rejected before any cache lookup or network call.
func (s *Service) FetchMarkets(ctx context.Context, params MarketsParams) ([]MarketEntry, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("invalid markets params: %w", err)
	}
	defer s.metricsWriter.RecordLatency(time.Now())

	body, hit, err := cg.LoadCached(s.cache, CacheKey(params), s.config.CoingeckoMarkets.GetTTL(), func() ([]byte, error) {
		return s.apiClient.FetchPage(ctx, params)
	})
	if err != nil {
		log.Error().Err(err).Str("currency", string(params.Currency)).Int("page", params.Page).
			Msg("CoingeckoMarkets: fetch failed")
		return nil, err
	}
	s.metricsWriter.RecordCacheLookup(hit)

	return DecodeMarkets(body)
}

// InvalidateCurrency drops every cached page in currency
func (s *Service) InvalidateCurrency(currency cg.Currency) int {
	removed := s.cache.Invalidate(cg.CurrencyPrefix(cg.OpMarkets, currency))
	s.metricsWriter.RecordInvalidation(removed)
	return removed
}

// Invalidate drops every cached page
func (s *Service) Invalidate() int {
	removed := s.cache.Invalidate(cg.OperationPrefix(cg.OpMarkets))
	s.metricsWriter.RecordInvalidation(removed)
	return removed
}

// Healthy reports whether the provider answered at least once
func (s *Service) Healthy() bool {
	return s.apiClient.Healthy()
}
