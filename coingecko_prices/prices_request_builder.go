package coingecko_prices

import (
	"strings"

	cg "github.com/status-im/market-dashboard/coingecko_common"
)

const (
	// Complete path for simple price API endpoint
	PRICES_API_PATH = "/api/v3/simple/price"
)

// PricesRequestBuilder implements the Builder pattern for CoinGecko simple price API requests
type PricesRequestBuilder struct {
	*cg.CoingeckoRequestBuilder
}

// NewPricesRequestBuilder creates a new request builder for simple price endpoint
func NewPricesRequestBuilder(baseURL string) *PricesRequestBuilder {
	return &PricesRequestBuilder{
		CoingeckoRequestBuilder: cg.NewCoingeckoRequestBuilder(baseURL, PRICES_API_PATH),
	}
}

// WithIds adds coin IDs parameter
func (rb *PricesRequestBuilder) WithIds(ids []string) *PricesRequestBuilder {
	rb.With("ids", strings.Join(ids, ","))
	return rb
}

// WithCurrencies adds vs_currencies parameter
func (rb *PricesRequestBuilder) WithCurrencies(currencies ...cg.Currency) *PricesRequestBuilder {
	codes := make([]string, 0, len(currencies))
	for _, c := range currencies {
		codes = append(codes, string(c))
	}
	rb.With("vs_currencies", strings.Join(codes, ","))
	return rb
}

// WithInclude24hChange adds include_24hr_change parameter
func (rb *PricesRequestBuilder) WithInclude24hChange(include bool) *PricesRequestBuilder {
	if include {
		rb.With("include_24hr_change", "true")
	}
	return rb
}
