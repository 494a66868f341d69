package e2etest

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/status-im/market-dashboard/config"
)

// createTestConfig writes a configuration pointing every CoinGecko URL at
// mockURL and returns the path to the file
func createTestConfig(mockURL, port string) (string, error) {
	tempDir, err := os.MkdirTemp("", "market-dashboard-test")
	if err != nil {
		return "", err
	}

	tokensFilePath := filepath.Join(tempDir, "tokens.json")
	tokensContent := `
{
  "api_tokens": ["test-api-key"],
  "demo_api_tokens": ["test-demo-key"]
}
`
	if err := os.WriteFile(tokensFilePath, []byte(tokensContent), 0644); err != nil {
		os.RemoveAll(tempDir)
		return "", err
	}

	configContent := fmt.Sprintf(`
coingecko:
  tokens_file: "%s"
  override_public_url: "%s"
  override_pro_url: "%s"
  request_timeout: 5s
  max_retries: 1
  rate_limits:
    pro: {rate_limit_per_minute: 6000, burst: 100}
    demo: {rate_limit_per_minute: 6000, burst: 100}
    nokey: {rate_limit_per_minute: 6000, burst: 100}

coingecko_global:
  ttl: 1m
coingecko_trending:
  ttl: 1m
coingecko_prices:
  ttl: 1m
coingecko_markets:
  per_page: 250
  search_per_page: 100
  ttl: 1m

dashboard:
  currencies: [usd, inr]
  default_currency: usd
  default_window: 24h
  sort_values: true
  top_n: 25
  trending_limit: 3
  refresh_schedule: "@every 1h"   # refreshes are triggered by the tests

server:
  port: "%s"

logging:
  level: warn
`, tokensFilePath, mockURL, mockURL, port)

	configPath := filepath.Join(tempDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		os.RemoveAll(tempDir)
		return "", err
	}

	return configPath, nil
}

// loadTestConfig creates and loads test configuration
func loadTestConfig(mockURL, port string) (*config.Config, string, error) {
	configPath, err := createTestConfig(mockURL, port)
	if err != nil {
		return nil, "", err
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		os.RemoveAll(filepath.Dir(configPath))
		return nil, "", err
	}

	return cfg, configPath, nil
}

// cleanupTestConfig removes the temporary directory with configuration
func cleanupTestConfig(configPath string) {
	os.RemoveAll(filepath.Dir(configPath))
}
