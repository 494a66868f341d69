package coingecko_global

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

// Service serves GlobalStats through the response cache
type Service struct {
	cache         cache.Cache
	config        *config.Config
	metricsWriter *metrics.MetricsWriter
	apiClient     APIClient
}

// NewService creates a global stats service backed by CoinGecko
func NewService(cache cache.Cache, cfg *config.Config) *Service {
	metricsWriter := metrics.NewMetricsWriter(metrics.ServiceGlobal)
	return newService(cache, cfg, NewCoinGeckoClient(&cfg.Coingecko, metricsWriter), metricsWriter)
}

// NewServiceWithClient allows injecting a custom APIClient
func NewServiceWithClient(cache cache.Cache, cfg *config.Config, apiClient APIClient) *Service {
	return newService(cache, cfg, apiClient, metrics.NewMetricsWriter(metrics.ServiceGlobal))
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

// CacheKey is the single cache slot used for /global
func CacheKey() string {
	return cg.CacheKey(cg.OpGlobal, "")
}

// FetchGlobal returns the cached snapshot or fetches a new one on a miss
func (s *Service) FetchGlobal(ctx context.Context) (*GlobalStats, error) {
	defer s.metricsWriter.RecordLatency(time.Now())

	body, hit, err := cg.LoadCached(s.cache, CacheKey(), s.config.CoingeckoGlobal.GetTTL(), func() ([]byte, error) {
		return s.apiClient.FetchGlobal(ctx)
	})
	if err != nil {
		log.Error().Err(err).Msg("CoingeckoGlobal: fetch failed")
		return nil, err
	}
	s.metricsWriter.RecordCacheLookup(hit)

	return DecodeGlobal(body)
}

// Invalidate drops the cached snapshot
func (s *Service) Invalidate() int {
	removed := s.cache.Invalidate(CacheKey())
	s.metricsWriter.RecordInvalidation(removed)
	return removed
}

// Healthy reports whether the provider answered at least once
func (s *Service) Healthy() bool {
	return s.apiClient.Healthy()
}
