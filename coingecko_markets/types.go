package coingecko_markets

import (
	"encoding/json"
	"fmt"

	cg "github.com/status-im/market-dashboard/coingecko_common"
	"github.com/status-im/market-dashboard/config"
)

// MarketEntry is one row of /coins/markets with provider field names.
// Every numeric field is nullable.
type MarketEntry struct {
	ID                                 string   `json:"id"`
	Symbol                             string   `json:"symbol"`
	Name                               string   `json:"name"`
	Image                              string   `json:"image,omitempty"`
	CurrentPrice                       *float64 `json:"current_price"`
	MarketCap                          *float64 `json:"market_cap"`
	MarketCapRank                      *int     `json:"market_cap_rank"`
	TotalVolume                        *float64 `json:"total_volume"`
	PriceChangePercentage1hInCurrency  *float64 `json:"price_change_percentage_1h_in_currency,omitempty"`
	PriceChangePercentage24hInCurrency *float64 `json:"price_change_percentage_24h_in_currency,omitempty"`
	PriceChangePercentage7dInCurrency  *float64 `json:"price_change_percentage_7d_in_currency,omitempty"`
	LastUpdated                        string   `json:"last_updated,omitempty"`
}

// MarketsParams selects one page of the market listing
type MarketsParams struct {
	Currency cg.Currency
	PerPage  int
	Page     int
	Windows  []cg.ChangeWindow
}

// Validate rejects paging and windows the provider would not accept
func (p MarketsParams) Validate() error {
	if p.Currency == "" {
		return fmt.Errorf("currency is required")
	}
	if p.PerPage < 1 || p.PerPage > config.MaxMarketsPerPage {
		return fmt.Errorf("per_page must be between 1 and %d, got %d", config.MaxMarketsPerPage, p.PerPage)
	}
	if p.Page < 1 {
		return fmt.Errorf("page must be at least 1, got %d", p.Page)
	}
	for _, w := range p.Windows {
		if !w.Valid() {
			return fmt.Errorf("unsupported change window %q", w)
		}
	}
	return nil
}

// DecodeMarkets parses a /coins/markets body. The body must be an array and
// every entry needs an id and a symbol.
func DecodeMarkets(body []byte) ([]MarketEntry, error) {
	var entries []MarketEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		return nil, cg.NewMalformed(cg.OpMarkets, "expected an array of market entries", err)
	}
	if entries == nil {
		return nil, cg.NewMalformed(cg.OpMarkets, "response is null", nil)
	}

	for i, e := range entries {
		if e.ID == "" || e.Symbol == "" {
			return nil, cg.NewMalformed(cg.OpMarkets, fmt.Sprintf("entry %d lacks id or symbol", i), nil)
		}
	}
	return entries, nil
}
