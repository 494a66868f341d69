package coingecko_trending

import (
	cg "github.com/status-im/market-dashboard/coingecko_common"
)

const (
	// Complete path for trending search endpoint
	TRENDING_API_PATH = "/api/v3/search/trending"
)

// TrendingRequestBuilder builds /search/trending requests
type TrendingRequestBuilder struct {
	*cg.CoingeckoRequestBuilder
}

// NewTrendingRequestBuilder creates a new request builder for the trending endpoint
func NewTrendingRequestBuilder(baseURL string) *TrendingRequestBuilder {
	return &TrendingRequestBuilder{
		CoingeckoRequestBuilder: cg.NewCoingeckoRequestBuilder(baseURL, TRENDING_API_PATH),
	}
}
