package config

import (
	"strings"
	"testing"
	"time"
)

func TestCoingeckoMarketsFetcher_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  CoingeckoMarketsFetcher
		wantErr bool
		errMsg  string
	}{
		{
			name:   "valid configuration",
			config: CoingeckoMarketsFetcher{PerPage: 250, SearchPerPage: 100},
		},
		{
			name:    "zero per page",
			config:  CoingeckoMarketsFetcher{PerPage: 0, SearchPerPage: 100},
			wantErr: true,
			errMsg:  "per_page",
		},
		{
			name:    "search pool too large",
			config:  CoingeckoMarketsFetcher{PerPage: 100, SearchPerPage: 300},
			wantErr: true,
			errMsg:  "search_per_page",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if tt.wantErr && tt.errMsg != "" && !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("Validate() error = %v, expected to contain %v", err, tt.errMsg)
			}
		})
	}
}

func TestCoingeckoMarketsFetcher_GetTTL(t *testing.T) {
	cfg := CoingeckoMarketsFetcher{}
	if cfg.GetTTL() != 10*time.Minute {
		t.Errorf("Expected default TTL of 10m, got %v", cfg.GetTTL())
	}

	cfg.TTL = 30 * time.Second
	if cfg.GetTTL() != 30*time.Second {
		t.Errorf("Expected configured TTL of 30s, got %v", cfg.GetTTL())
	}
}

func TestDashboardConfig_Validate(t *testing.T) {
	cfg := DefaultDashboardConfig()
	cfg.Currencies = []string{" USD ", "Inr"}
	cfg.DefaultCurrency = "USD"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Expected valid config, got %v", err)
	}
	if cfg.Currencies[0] != "usd" || cfg.Currencies[1] != "inr" {
		t.Errorf("Expected currencies to be normalized, got %v", cfg.Currencies)
	}

	cfg.DefaultWindow = "30d"
	if err := cfg.Validate(); err == nil {
		t.Error("Expected error for unsupported window")
	}
}
