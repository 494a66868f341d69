package coingecko_prices

import (
	"context"
	"sync/atomic"

	"github.com/rs/zerolog/log"

	cg "github.com/status-im/market-dashboard/coingecko_common"
	"github.com/status-im/market-dashboard/config"
	"github.com/status-im/market-dashboard/metrics"
)

//go:generate mockgen -destination=mocks/api_client.go . APIClient

// APIClient defines interface for API operations
type APIClient interface {
	// FetchPrices returns one raw JSON entry per id the provider knows
	FetchPrices(ctx context.Context, ids []string, currency cg.Currency) (map[string][]byte, error)
	// Healthy reports whether at least one fetch succeeded
	Healthy() bool
}

// CoinGeckoClient implements APIClient for CoinGecko
type CoinGeckoClient struct {
	config          *config.CoingeckoConfig
	keyManager      cg.IAPIKeyManager
	httpClient      *cg.HTTPClientWithRetries
	metricsWriter   *metrics.MetricsWriter
	successfulFetch atomic.Bool
}

// NewCoinGeckoClient creates a new CoinGecko API client
func NewCoinGeckoClient(cfg *config.CoingeckoConfig, metricsWriter *metrics.MetricsWriter) *CoinGeckoClient {
	retryOpts := cg.RetryOptionsFromConfig(cfg, cg.OpSimplePrice)
	if metricsWriter == nil {
		metricsWriter = metrics.NewMetricsWriter(metrics.ServicePrices)
	}

	return &CoinGeckoClient{
		config:        cfg,
		keyManager:    cg.NewAPIKeyManager(cfg.APITokens),
		httpClient:    cg.NewHTTPClientWithRetries(retryOpts, metricsWriter, cg.GetRateLimiterManagerInstance()),
		metricsWriter: metricsWriter,
	}
}

// Healthy checks if the API has had at least one successful fetch
func (c *CoinGeckoClient) Healthy() bool {
	return c.successfulFetch.Load()
}

// FetchPrices implements APIClient
func (c *CoinGeckoClient) FetchPrices(ctx context.Context, ids []string, currency cg.Currency) (map[string][]byte, error) {
	body, err := cg.FetchWithKeys(ctx, c.config, c.keyManager, c.httpClient,
		func(ctx context.Context, baseURL string, apiKey cg.APIKey) (*cg.CoingeckoRequestBuilder, error) {
			return NewPricesRequestBuilder(baseURL).
				WithIds(ids).
				WithCurrencies(currency).
				CoingeckoRequestBuilder, nil
		})
	if err != nil {
		return nil, err
	}

	result, err := splitSimplePrice(body)
	if err != nil {
		return nil, err
	}

	log.Debug().Int("requested", len(ids)).Int("returned", len(result)).Str("currency", string(currency)).
		Msg("CoingeckoPrices: fetched simple prices")
	c.successfulFetch.Store(true)
	return result, nil
}
