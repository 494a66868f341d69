package config

import "time"

// CoingeckoPricesFetcher represents configuration for the simple price endpoint
type CoingeckoPricesFetcher struct {
	TTL time.Duration `yaml:"ttl"`
}

func (c *CoingeckoPricesFetcher) GetTTL() time.Duration {
	if c.TTL > 0 {
		return c.TTL
	}
	return 5 * time.Minute
}

// CoingeckoGlobalFetcher represents configuration for the global stats endpoint
type CoingeckoGlobalFetcher struct {
	TTL time.Duration `yaml:"ttl"`
}

func (c *CoingeckoGlobalFetcher) GetTTL() time.Duration {
	if c.TTL > 0 {
		return c.TTL
	}
	return 5 * time.Minute
}

// CoingeckoTrendingFetcher represents configuration for the trending search endpoint
type CoingeckoTrendingFetcher struct {
	TTL time.Duration `yaml:"ttl"`
}

func (c *CoingeckoTrendingFetcher) GetTTL() time.Duration {
	if c.TTL > 0 {
		return c.TTL
	}
	return 5 * time.Minute
}
