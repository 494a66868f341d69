package coingecko_global

import (
	cg "github.com/status-im/market-dashboard/coingecko_common"
)

const (
	// Complete path for global market data endpoint
	GLOBAL_API_PATH = "/api/v3/global"
)

// GlobalRequestBuilder builds /global requests, which take no parameters
type GlobalRequestBuilder struct {
	*cg.CoingeckoRequestBuilder
}

// NewGlobalRequestBuilder creates a new request builder for the global endpoint
func NewGlobalRequestBuilder(baseURL string) *GlobalRequestBuilder {
	return &GlobalRequestBuilder{
		CoingeckoRequestBuilder: cg.NewCoingeckoRequestBuilder(baseURL, GLOBAL_API_PATH),
	}
}
