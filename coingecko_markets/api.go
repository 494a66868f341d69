package coingecko_markets

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
	// FetchPage returns the raw body of one listing page after checking it decodes
	FetchPage(ctx context.Context, params MarketsParams) ([]byte, error)
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
	retryOpts := cg.RetryOptionsFromConfig(cfg, cg.OpMarkets)
	if metricsWriter == nil {
		metricsWriter = metrics.NewMetricsWriter(metrics.ServiceMarkets)
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

// FetchPage implements APIClient
func (c *CoinGeckoClient) FetchPage(ctx context.Context, params MarketsParams) ([]byte, error) {
	body, err := cg.FetchWithKeys(ctx, c.config, c.keyManager, c.httpClient,
		func(ctx context.Context, baseURL string, apiKey cg.APIKey) (*cg.CoingeckoRequestBuilder, error) {
			return NewMarketRequestBuilder(baseURL).WithParams(params).CoingeckoRequestBuilder, nil
		})
	if err != nil {
		return nil, err
	}

	entries, err := DecodeMarkets(body)
	if err != nil {
		return nil, err
	}

	log.Debug().Str("currency", string(params.Currency)).Int("page", params.Page).Int("entries", len(entries)).
		Msg("CoingeckoMarkets: fetched page")
	c.successfulFetch.Store(true)
	return body, nil
}
