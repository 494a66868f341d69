package coingecko_global

import (
	"context"
	"sync/atomic"

	cg "github.com/status-im/market-dashboard/coingecko_common"
	"github.com/status-im/market-dashboard/config"
	"github.com/status-im/market-dashboard/metrics"
)

//go:generate mockgen -destination=mocks/api_client.go . APIClient

// APIClient defines interface for API operations
type APIClient interface {
	// FetchGlobal returns the raw /global body after checking it decodes
	FetchGlobal(ctx context.Context) ([]byte, error)
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
	retryOpts := cg.RetryOptionsFromConfig(cfg, cg.OpGlobal)
	if metricsWriter == nil {
		metricsWriter = metrics.NewMetricsWriter(metrics.ServiceGlobal)
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

// FetchGlobal implements APIClient
func (c *CoinGeckoClient) FetchGlobal(ctx context.Context) ([]byte, error) {
	body, err := cg.FetchWithKeys(ctx, c.config, c.keyManager, c.httpClient,
		func(ctx context.Context, baseURL string, apiKey cg.APIKey) (*cg.CoingeckoRequestBuilder, error) {
			return NewGlobalRequestBuilder(baseURL).CoingeckoRequestBuilder, nil
		})
	if err != nil {
		return nil, err
	}

	if _, err := DecodeGlobal(body); err != nil {
		return nil, err
	}

	c.successfulFetch.Store(true)
	return body, nil
}
