package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/robfig/cron/v3"
)

var supportedWindows = []string{"1h", "24h", "7d"}

// DashboardConfig holds the selectable currencies and the initial selections
type DashboardConfig struct {
	Currencies      []string `yaml:"currencies"`
	DefaultCurrency string   `yaml:"default_currency"`
	DefaultWindow   string   `yaml:"default_window"`
	SortValues      bool     `yaml:"sort_values"`
	TopN            int      `yaml:"top_n"`
	TrendingLimit   int      `yaml:"trending_limit"`
	// RefreshSchedule is a cron spec ("@every 5m" style descriptors are accepted).
	// The interval must exceed the panel TTLs or ticks land on live entries.
	RefreshSchedule string `yaml:"refresh_schedule"`
}

func DefaultDashboardConfig() DashboardConfig {
	return DashboardConfig{
		Currencies:      []string{"usd", "inr"},
		DefaultCurrency: "usd",
		DefaultWindow:   "24h",
		SortValues:      true,
		TopN:            25,
		TrendingLimit:   3,
		RefreshSchedule: "@every 5m30s",
	}
}

func (c *DashboardConfig) Validate() error {
	if len(c.Currencies) == 0 {
		return fmt.Errorf("at least one currency must be configured")
	}
	for i, currency := range c.Currencies {
		c.Currencies[i] = strings.ToLower(strings.TrimSpace(currency))
		if c.Currencies[i] == "" {
			return fmt.Errorf("currency at index %d cannot be empty", i)
		}
	}
	c.DefaultCurrency = strings.ToLower(c.DefaultCurrency)
	if !slices.Contains(c.Currencies, c.DefaultCurrency) {
		return fmt.Errorf("default_currency '%s' is not in currencies %v", c.DefaultCurrency, c.Currencies)
	}
	if !slices.Contains(supportedWindows, c.DefaultWindow) {
		return fmt.Errorf("default_window must be one of %v, got '%s'", supportedWindows, c.DefaultWindow)
	}
	if c.TopN < 1 {
		return fmt.Errorf("top_n must be greater than 0, got %d", c.TopN)
	}
	if c.TrendingLimit < 1 {
		return fmt.Errorf("trending_limit must be greater than 0, got %d", c.TrendingLimit)
	}
	if _, err := cron.ParseStandard(c.RefreshSchedule); err != nil {
		return fmt.Errorf("invalid refresh_schedule '%s': %w", c.RefreshSchedule, err)
	}
	return nil
}
