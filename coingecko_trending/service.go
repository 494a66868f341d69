package coingecko_trending

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/status-im/market-dashboard/cache"
	cg "github.com/status-im/market-dashboard/coingecko_common"
	"github.com/status-im/market-dashboard/config"
	"github.com/status-im/market-dashboard/metrics"
)

// Service serves the trending list through the response cache
type Service struct {
	cache         cache.Cache
	config        *config.Config
	metricsWriter *metrics.MetricsWriter
	apiClient     APIClient
}

// NewService creates a trending service backed by CoinGecko
func NewService(cache cache.Cache, cfg *config.Config) *Service {
	metricsWriter := metrics.NewMetricsWriter(metrics.ServiceTrending)
	return newService(cache, cfg, NewCoinGeckoClient(&cfg.Coingecko, metricsWriter), metricsWriter)
}

// NewServiceWithClient allows injecting a custom APIClient
func NewServiceWithClient(cache cache.Cache, cfg *config.Config, apiClient APIClient) *Service {
	return newService(cache, cfg, apiClient, metrics.NewMetricsWriter(metrics.ServiceTrending))
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

// CacheKey is the single cache slot used for /search/trending
func CacheKey() string {
	return cg.CacheKey(cg.OpTrending, "")
}

// FetchTrending returns the full trending list in provider order
func (s *Service) FetchTrending(ctx context.Context) ([]TrendingCoin, error) {
	defer s.metricsWriter.RecordLatency(time.Now())

	body, hit, err := cg.LoadCached(s.cache, CacheKey(), s.config.CoingeckoTrending.GetTTL(), func() ([]byte, error) {
		return s.apiClient.FetchTrending(ctx)
	})
	if err != nil {
		log.Error().Err(err).Msg("CoingeckoTrending: fetch failed")
		return nil, err
	}
	s.metricsWriter.RecordCacheLookup(hit)

	return DecodeTrending(body)
}

// Invalidate drops the cached list
func (s *Service) Invalidate() int {
	removed := s.cache.Invalidate(CacheKey())
	s.metricsWriter.RecordInvalidation(removed)
	return removed
}

// Healthy reports whether the provider answered at least once
func (s *Service) Healthy() bool {
	return s.apiClient.Healthy()
}
