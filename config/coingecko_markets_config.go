package config

import (
	"fmt"
	"time"
)

// MaxMarketsPerPage is CoinGecko's upper bound for per_page on /coins/markets
const MaxMarketsPerPage = 250

type CoingeckoMarketsFetcher struct {
	PerPage       int           `yaml:"per_page"`        // Listing size for the main table
	SearchPerPage int           `yaml:"search_per_page"` // Listing size for the search pool
	TTL           time.Duration `yaml:"ttl"`
}

// Validate validates the CoingeckoMarketsFetcher configuration
func (c *CoingeckoMarketsFetcher) Validate() error {
	if c.PerPage < 1 || c.PerPage > MaxMarketsPerPage {
		return fmt.Errorf("per_page must be in [1, %d], got %d", MaxMarketsPerPage, c.PerPage)
	}
	if c.SearchPerPage < 1 || c.SearchPerPage > MaxMarketsPerPage {
		return fmt.Errorf("search_per_page must be in [1, %d], got %d", MaxMarketsPerPage, c.SearchPerPage)
	}
	return nil
}

func (c *CoingeckoMarketsFetcher) GetTTL() time.Duration {
	if c.TTL > 0 {
		return c.TTL
	}

	return 10 * time.Minute
}
