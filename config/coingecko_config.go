package config

import (
	"fmt"
	"time"
)

// CoingeckoConfig holds settings shared by every CoinGecko endpoint client
type CoingeckoConfig struct {
	TokensFile string     `yaml:"tokens_file"`
	APITokens  *APITokens `yaml:"-"`

	OverridePublicURL string `yaml:"override_public_url"`
	OverrideProURL    string `yaml:"override_pro_url"`

	ConnectionTimeout time.Duration `yaml:"connection_timeout"`
	RequestTimeout    time.Duration `yaml:"request_timeout"`
	// MaxRetries is the number of attempts per API key. 1 disables retries.
	MaxRetries int          `yaml:"max_retries"`
	RateLimits APIKeyConfig `yaml:"rate_limits"`
}

func DefaultCoingeckoConfig() CoingeckoConfig {
	return CoingeckoConfig{
		APITokens:         &APITokens{Tokens: []string{}},
		ConnectionTimeout: 10 * time.Second,
		RequestTimeout:    30 * time.Second,
		MaxRetries:        1,
	}
}

func (c *CoingeckoConfig) Validate() error {
	if c.MaxRetries < 1 {
		return fmt.Errorf("max_retries must be at least 1, got %d", c.MaxRetries)
	}
	if c.RequestTimeout < 0 || c.ConnectionTimeout < 0 {
		return fmt.Errorf("timeouts cannot be negative")
	}
	return nil
}
