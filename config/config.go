package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/status-im/market-dashboard/cache"
)

type Config struct {
	Coingecko         CoingeckoConfig          `yaml:"coingecko"`
	CoingeckoGlobal   CoingeckoGlobalFetcher   `yaml:"coingecko_global"`
	CoingeckoTrending CoingeckoTrendingFetcher `yaml:"coingecko_trending"`
	CoingeckoPrices   CoingeckoPricesFetcher   `yaml:"coingecko_prices"`
	CoingeckoMarkets  CoingeckoMarketsFetcher  `yaml:"coingecko_markets"`
	Cache             cache.Config             `yaml:"cache"`
	Dashboard         DashboardConfig          `yaml:"dashboard"`
	Server            ServerConfig             `yaml:"server"`
	Logging           LoggingConfig            `yaml:"logging"`
}

type ServerConfig struct {
	Port string `yaml:"port"`
}

// LoggingConfig configures the zerolog root logger
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"`
	File   string `yaml:"file"` // when set, logs go to this file instead of stderr
}

// Default returns a configuration that works against the public CoinGecko API
func Default() *Config {
	return &Config{
		Coingecko: DefaultCoingeckoConfig(),
		CoingeckoMarkets: CoingeckoMarketsFetcher{
			PerPage:       MaxMarketsPerPage,
			SearchPerPage: 100,
		},
		Cache:     cache.DefaultCacheConfig(),
		Dashboard: DefaultDashboardConfig(),
		Server:    ServerConfig{Port: "8080"},
		Logging:   LoggingConfig{Level: "info"},
	}
}

// LoadConfig reads the YAML file at path on top of Default(), then applies
// .env and environment overrides. A missing file is not an error.
func LoadConfig(path string) (*Config, error) {
	config := Default()

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// .env is optional
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Msg("Config: failed to read .env file")
	}
	config.applyEnv()

	apiTokens, err := LoadAPITokens(config.Coingecko.TokensFile)
	if err != nil {
		log.Warn().Err(err).Str("file", config.Coingecko.TokensFile).
			Msg("Config: error loading API tokens, using public API without authentication")
		config.Coingecko.APITokens = &APITokens{Tokens: []string{}}
	} else {
		config.Coingecko.APITokens = apiTokens
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("PORT"); v != "" {
		c.Server.Port = v
	}
	if v := os.Getenv("COINGECKO_TOKENS_FILE"); v != "" {
		c.Coingecko.TokensFile = v
	}
	if v := os.Getenv("COINGECKO_PUBLIC_URL"); v != "" {
		c.Coingecko.OverridePublicURL = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("LOG_PRETTY"); v != "" {
		if pretty, err := strconv.ParseBool(v); err == nil {
			c.Logging.Pretty = pretty
		}
	}
	if v := os.Getenv("DASHBOARD_CURRENCY"); v != "" {
		c.Dashboard.DefaultCurrency = v
	}
}

// Validate checks every section and returns the first problem found
func (c *Config) Validate() error {
	if err := c.Coingecko.Validate(); err != nil {
		return fmt.Errorf("coingecko: %w", err)
	}
	if err := c.CoingeckoMarkets.Validate(); err != nil {
		return fmt.Errorf("coingecko_markets: %w", err)
	}
	if err := c.Dashboard.Validate(); err != nil {
		return fmt.Errorf("dashboard: %w", err)
	}
	if c.Server.Port == "" {
		return fmt.Errorf("server: port cannot be empty")
	}
	return nil
}
