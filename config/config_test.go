package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, pattern, content string) string {
	t.Helper()
	tmpfile, err := os.CreateTemp(t.TempDir(), pattern)
	require.NoError(t, err)
	_, err = tmpfile.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, tmpfile.Close())
	return tmpfile.Name()
}

// TestLoadConfig verifies YAML values override the defaults
func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name        string
		configYAML  string
		wantErr     bool
		validateCfg func(*testing.T, *Config)
	}{
		{
			name: "valid config",
			configYAML: `
coingecko:
  override_public_url: "http://localhost:9999"
  max_retries: 2
coingecko_global:
  ttl: 1m
coingecko_markets:
  per_page: 50
  search_per_page: 20
  ttl: 2m
dashboard:
  currencies: [usd, inr, eur]
  default_currency: eur
  default_window: 7d
  top_n: 10
  trending_limit: 3
  refresh_schedule: "@every 1m"
server:
  port: "9090"
`,
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "http://localhost:9999", cfg.Coingecko.OverridePublicURL)
				assert.Equal(t, 2, cfg.Coingecko.MaxRetries)
				assert.Equal(t, time.Minute, cfg.CoingeckoGlobal.GetTTL())
				assert.Equal(t, 5*time.Minute, cfg.CoingeckoTrending.GetTTL())
				assert.Equal(t, 50, cfg.CoingeckoMarkets.PerPage)
				assert.Equal(t, 2*time.Minute, cfg.CoingeckoMarkets.GetTTL())
				assert.Equal(t, []string{"usd", "inr", "eur"}, cfg.Dashboard.Currencies)
				assert.Equal(t, "eur", cfg.Dashboard.DefaultCurrency)
				assert.Equal(t, "7d", cfg.Dashboard.DefaultWindow)
				assert.Equal(t, "9090", cfg.Server.Port)
			},
		},
		{
			name:       "empty file uses defaults",
			configYAML: ``,
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "usd", cfg.Dashboard.DefaultCurrency)
				assert.Equal(t, "24h", cfg.Dashboard.DefaultWindow)
				assert.True(t, cfg.Dashboard.SortValues)
				assert.Equal(t, MaxMarketsPerPage, cfg.CoingeckoMarkets.PerPage)
				assert.Equal(t, 100, cfg.CoingeckoMarkets.SearchPerPage)
				assert.Equal(t, 10*time.Minute, cfg.CoingeckoMarkets.GetTTL())
				assert.Equal(t, 1, cfg.Coingecko.MaxRetries)
				assert.NotNil(t, cfg.Coingecko.APITokens)
			},
		},
		{
			name: "invalid yaml",
			configYAML: `
coingecko_markets:
  per_page: invalid
`,
			wantErr: true,
		},
		{
			name: "default currency not configured",
			configYAML: `
dashboard:
  currencies: [usd]
  default_currency: inr
`,
			wantErr: true,
		},
		{
			name: "per page over provider limit",
			configYAML: `
coingecko_markets:
  per_page: 500
`,
			wantErr: true,
		},
		{
			name: "bad refresh schedule",
			configYAML: `
dashboard:
  refresh_schedule: "every now and then"
`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTempFile(t, "config-*.yaml", tt.configYAML)

			cfg, err := LoadConfig(path)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.validateCfg != nil {
				tt.validateCfg(t, cfg)
			}
		})
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Server.Port)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "7070")
	t.Setenv("DASHBOARD_CURRENCY", "INR")
	t.Setenv("COINGECKO_PUBLIC_URL", "http://mock")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "7070", cfg.Server.Port)
	assert.Equal(t, "inr", cfg.Dashboard.DefaultCurrency)
	assert.Equal(t, "http://mock", cfg.Coingecko.OverridePublicURL)
}

func TestLoadConfig_WithTokens(t *testing.T) {
	tokensPath := writeTempFile(t, "tokens-*.json", `{
		"api_tokens": ["test-token-1", "test-token-2"],
		"demo_api_tokens": ["demo-1"]
	}`)
	configPath := writeTempFile(t, "config-*.yaml", "coingecko:\n  tokens_file: \""+tokensPath+"\"\n")

	cfg, err := LoadConfig(configPath)
	require.NoError(t, err)
	assert.Equal(t, []string{"test-token-1", "test-token-2"}, cfg.Coingecko.APITokens.Tokens)
	assert.Equal(t, []string{"demo-1"}, cfg.Coingecko.APITokens.DemoTokens)
}

func TestLoadAPITokens(t *testing.T) {
	t.Run("missing file yields empty tokens", func(t *testing.T) {
		tokens, err := LoadAPITokens(filepath.Join(t.TempDir(), "missing.json"))
		require.NoError(t, err)
		assert.Empty(t, tokens.Tokens)
	})

	t.Run("invalid json", func(t *testing.T) {
		path := writeTempFile(t, "tokens-*.json", "{not json")
		_, err := LoadAPITokens(path)
		assert.Error(t, err)
	})
}

func TestDefault_RefreshIntervalExceedsPanelTTLs(t *testing.T) {
	cfg := Default()
	schedule, err := cron.ParseStandard(cfg.Dashboard.RefreshSchedule)
	require.NoError(t, err)

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	interval := schedule.Next(start).Sub(start)

	ttls := map[string]time.Duration{
		"global":   cfg.CoingeckoGlobal.GetTTL(),
		"trending": cfg.CoingeckoTrending.GetTTL(),
		"prices":   cfg.CoingeckoPrices.GetTTL(),
	}
	for name, ttl := range ttls {
		assert.Greater(t, interval, ttl, name)
	}
}
