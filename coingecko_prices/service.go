package coingecko_prices

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/status-im/market-dashboard/cache"
	cg "github.com/status-im/market-dashboard/coingecko_common"
	"github.com/status-im/market-dashboard/config"
	"github.com/status-im/market-dashboard/metrics"
)

// Service resolves coin prices through a per-id response cache. Each
// (currency, id) pair is its own cache slot, so only missing ids hit the
// provider.
type Service struct {
	cache         cache.Cache
	config        *config.Config
	metricsWriter *metrics.MetricsWriter
	apiClient     APIClient
}

// NewService creates a new price service with the given cache and config
func NewService(cache cache.Cache, cfg *config.Config) *Service {
	metricsWriter := metrics.NewMetricsWriter(metrics.ServicePrices)
	return newService(cache, cfg, NewCoinGeckoClient(&cfg.Coingecko, metricsWriter), metricsWriter)
}

// NewServiceWithClient allows injecting a custom APIClient
func NewServiceWithClient(cache cache.Cache, cfg *config.Config, apiClient APIClient) *Service {
	return newService(cache, cfg, apiClient, metrics.NewMetricsWriter(metrics.ServicePrices))
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

// CacheKey returns the cache slot of one coin price
func CacheKey(currency cg.Currency, id string) string {
	return cg.CacheKey(cg.OpSimplePrice, currency, strings.ToLower(id))
}

// FetchSimplePrice returns a price for every requested id; ids the provider
// does not know map to nil. Empty ids return an empty map without a call.
func (s *Service) FetchSimplePrice(ctx context.Context, ids []string, currency cg.Currency) (Prices, cg.CacheStatus, error) {
	canonical := cg.CanonicalSet(ids)
	if canonical == "" {
		return Prices{}, cg.CacheStatusFull, nil
	}
	defer s.metricsWriter.RecordLatency(time.Now())

	uniqueIDs := strings.Split(canonical, ",")
	keys := make([]string, len(uniqueIDs))
	idByKey := make(map[string]string, len(uniqueIDs))
	for i, id := range uniqueIDs {
		keys[i] = CacheKey(currency, id)
		idByKey[keys[i]] = id
	}

	fetched := 0
	var fetchErr error
	loader := func(missingKeys []string) (map[string][]byte, error) {
		missingIDs := make([]string, len(missingKeys))
		for i, key := range missingKeys {
			missingIDs[i] = idByKey[key]
		}
		fetched = len(missingIDs)

		entries, err := s.apiClient.FetchPrices(ctx, missingIDs, currency)
		if err != nil {
			fetchErr = err
			return nil, err
		}

		loaded := make(map[string][]byte, len(missingKeys))
		for _, id := range missingIDs {
			entry, ok := entries[id]
			if !ok {
				entry = absentEntry
			}
			if _, err := decodeEntry(id, entry, currency); err != nil {
				fetchErr = err
				return nil, err
			}
			loaded[CacheKey(currency, id)] = entry
		}
		return loaded, nil
	}

	data, err := s.cache.GetOrLoad(keys, loader, true, s.config.CoingeckoPrices.GetTTL())
	if fetchErr != nil {
		err = fetchErr
	}
	if err != nil {
		log.Error().Err(err).Int("ids", len(uniqueIDs)).Msg("CoingeckoPrices: fetch failed")
		return nil, cg.CacheStatusMiss, err
	}

	status := cg.CacheStatusFor(len(keys), fetched)
	s.metricsWriter.RecordCacheLookup(status == cg.CacheStatusFull)

	prices := make(Prices, len(uniqueIDs))
	for _, key := range keys {
		id := idByKey[key]
		price, err := decodeEntry(id, data[key], currency)
		if err != nil {
			return nil, status, err
		}
		prices[id] = price
	}
	return prices, status, nil
}

// InvalidateCurrency drops every cached price in currency
func (s *Service) InvalidateCurrency(currency cg.Currency) int {
	removed := s.cache.Invalidate(cg.CurrencyPrefix(cg.OpSimplePrice, currency))
	s.metricsWriter.RecordInvalidation(removed)
	return removed
}

// Invalidate drops every cached price
func (s *Service) Invalidate() int {
	removed := s.cache.Invalidate(cg.OperationPrefix(cg.OpSimplePrice))
	s.metricsWriter.RecordInvalidation(removed)
	return removed
}

// Healthy reports whether the provider answered at least once
func (s *Service) Healthy() bool {
	return s.apiClient.Healthy()
}
