package markets_table

import (
	"fmt"

	cg "github.com/status-im/market-dashboard/coingecko_common"
	"github.com/status-im/market-dashboard/coingecko_markets"
)

// MarketRecord is one display row of the market table. Absent provider
// values stay nil and render as "N/A".
type MarketRecord struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	Symbol       string      `json:"symbol"`
	Currency     cg.Currency `json:"currency"`
	Price        *float64    `json:"price"`
	MarketCap    *float64    `json:"market_cap"`
	Volume24h    *float64    `json:"volume_24h"`
	PctChange1h  *float64    `json:"pct_change_1h"`
	PctChange24h *float64    `json:"pct_change_24h"`
	PctChange7d  *float64    `json:"pct_change_7d"`
}

// Column headers in display order
const (
	ColumnName      = "Coin Name"
	ColumnSymbol    = "Symbol"
	ColumnMarketCap = "Market Cap"
	ColumnVolume    = "24h Volume"
	ColumnChange1h  = "1h %"
	ColumnChange24h = "24h %"
	ColumnChange7d  = "7d %"
)

// PriceColumn is the price header for currency, e.g. "Price (USD)"
func PriceColumn(currency cg.Currency) string {
	return fmt.Sprintf("Price (%s)", currency.Label())
}

// Columns returns the table headers for currency
func Columns(currency cg.Currency) []string {
	return []string{
		ColumnName,
		ColumnSymbol,
		PriceColumn(currency),
		ColumnMarketCap,
		ColumnVolume,
		ColumnChange1h,
		ColumnChange24h,
		ColumnChange7d,
	}
}

// Normalize maps provider entries to records. Order is preserved and no
// value is defaulted.
func Normalize(entries []coingecko_markets.MarketEntry, currency cg.Currency) []MarketRecord {
	records := make([]MarketRecord, 0, len(entries))
	for _, e := range entries {
		records = append(records, MarketRecord{
			ID:           e.ID,
			Name:         e.Name,
			Symbol:       e.Symbol,
			Currency:     currency,
			Price:        e.CurrentPrice,
			MarketCap:    e.MarketCap,
			Volume24h:    e.TotalVolume,
			PctChange1h:  e.PriceChangePercentage1hInCurrency,
			PctChange24h: e.PriceChangePercentage24hInCurrency,
			PctChange7d:  e.PriceChangePercentage7dInCurrency,
		})
	}
	return records
}

// Renormalize relabels already normalized records with currency. Values are
// not converted.
func Renormalize(records []MarketRecord, currency cg.Currency) []MarketRecord {
	out := make([]MarketRecord, len(records))
	copy(out, records)
	for i := range out {
		out[i].Currency = currency
	}
	return out
}
