package coingecko_common

import (
	"github.com/status-im/market-dashboard/config"
)

const (
	// Base URL for public API
	COINGECKO_PUBLIC_URL = "https://api.coingecko.com"
	// Base URL for Pro API
	COINGECKO_PRO_URL = "https://pro-api.coingecko.com"
)

// GetApiBaseUrl returns the API URL for the key type, honouring overrides from config
func GetApiBaseUrl(cfg *config.CoingeckoConfig, keyType KeyType) string {
	if keyType == ProKey {
		if cfg != nil && cfg.OverrideProURL != "" {
			return cfg.OverrideProURL
		}
		return COINGECKO_PRO_URL
	}
	if cfg != nil && cfg.OverridePublicURL != "" {
		return cfg.OverridePublicURL
	}
	return COINGECKO_PUBLIC_URL
}
