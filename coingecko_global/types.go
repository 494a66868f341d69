package coingecko_global

import (
	"encoding/json"
	"time"

	cg "github.com/status-im/market-dashboard/coingecko_common"
)

// GlobalStats is the market-wide snapshot returned by /global
type GlobalStats struct {
	TotalMarketCap           map[string]float64 `json:"total_market_cap"`
	TotalVolume              map[string]float64 `json:"total_volume"`
	MarketCapPercentage      map[string]float64 `json:"market_cap_percentage,omitempty"`
	MarketCapChangePct24hUSD *float64           `json:"market_cap_change_percentage_24h_usd"`
	ActiveCryptocurrencies   int                `json:"active_cryptocurrencies"`
	Markets                  int                `json:"markets"`
	UpdatedAt                time.Time          `json:"updated_at"`
}

// MarketCap returns the total market cap in currency, or nil when the provider omits it
func (g *GlobalStats) MarketCap(currency cg.Currency) *float64 {
	return lookup(g.TotalMarketCap, currency)
}

// Volume returns the total 24h volume in currency, or nil when the provider omits it
func (g *GlobalStats) Volume(currency cg.Currency) *float64 {
	return lookup(g.TotalVolume, currency)
}

func lookup(values map[string]float64, currency cg.Currency) *float64 {
	v, ok := values[string(currency)]
	if !ok {
		return nil
	}
	return &v
}

type globalEnvelope struct {
	Data *globalData `json:"data"`
}

type globalData struct {
	TotalMarketCap           map[string]float64 `json:"total_market_cap"`
	TotalVolume              map[string]float64 `json:"total_volume"`
	MarketCapPercentage      map[string]float64 `json:"market_cap_percentage"`
	MarketCapChangePct24hUSD *float64           `json:"market_cap_change_percentage_24h_usd"`
	ActiveCryptocurrencies   int                `json:"active_cryptocurrencies"`
	Markets                  int                `json:"markets"`
	UpdatedAt                int64              `json:"updated_at"`
}

// DecodeGlobal parses a /global body. The data object and both per-currency
// maps are required.
func DecodeGlobal(body []byte) (*GlobalStats, error) {
	var envelope globalEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, cg.NewMalformed(cg.OpGlobal, "invalid JSON", err)
	}
	if envelope.Data == nil {
		return nil, cg.NewMalformed(cg.OpGlobal, `missing "data" object`, nil)
	}

	data := envelope.Data
	if data.TotalMarketCap == nil {
		return nil, cg.NewMalformed(cg.OpGlobal, `missing "total_market_cap"`, nil)
	}
	if data.TotalVolume == nil {
		return nil, cg.NewMalformed(cg.OpGlobal, `missing "total_volume"`, nil)
	}

	stats := &GlobalStats{
		TotalMarketCap:           data.TotalMarketCap,
		TotalVolume:              data.TotalVolume,
		MarketCapPercentage:      data.MarketCapPercentage,
		MarketCapChangePct24hUSD: data.MarketCapChangePct24hUSD,
		ActiveCryptocurrencies:   data.ActiveCryptocurrencies,
		Markets:                  data.Markets,
	}
	if data.UpdatedAt > 0 {
		stats.UpdatedAt = time.Unix(data.UpdatedAt, 0).UTC()
	}
	return stats, nil
}
