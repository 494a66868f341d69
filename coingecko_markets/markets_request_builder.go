package coingecko_markets

import (
	"strconv"
	"strings"

	cg "github.com/status-im/market-dashboard/coingecko_common"
)

const (
	// Complete path for markets API endpoint
	MARKETS_API_PATH = "/api/v3/coins/markets"
)

// MarketsRequestBuilder implements the Builder pattern for CoinGecko markets API requests
type MarketsRequestBuilder struct {
	*cg.CoingeckoRequestBuilder
}

// NewMarketRequestBuilder creates a new request builder for markets endpoint
func NewMarketRequestBuilder(baseURL string) *MarketsRequestBuilder {
	rb := &MarketsRequestBuilder{
		CoingeckoRequestBuilder: cg.NewCoingeckoRequestBuilder(baseURL, MARKETS_API_PATH),
	}

	rb.WithCurrency(cg.USD)
	rb.WithOrder("market_cap_desc")

	return rb
}

// WithPage adds page parameter for pagination
func (rb *MarketsRequestBuilder) WithPage(page int) *MarketsRequestBuilder {
	rb.With("page", strconv.Itoa(page))
	return rb
}

// WithPerPage adds per_page parameter
func (rb *MarketsRequestBuilder) WithPerPage(perPage int) *MarketsRequestBuilder {
	rb.With("per_page", strconv.Itoa(perPage))
	return rb
}

// WithOrder adds ordering parameter
func (rb *MarketsRequestBuilder) WithOrder(order string) *MarketsRequestBuilder {
	if order != "" {
		rb.With("order", order)
	}
	return rb
}

// WithPriceChangePercentage asks for the *_in_currency change fields of each window
func (rb *MarketsRequestBuilder) WithPriceChangePercentage(windows []cg.ChangeWindow) *MarketsRequestBuilder {
	if len(windows) > 0 {
		rb.With("price_change_percentage", cg.CanonicalSet(windows))
	}
	return rb
}

// WithSparkline adds sparkline parameter
func (rb *MarketsRequestBuilder) WithSparkline(enabled bool) *MarketsRequestBuilder {
	rb.With("sparkline", strconv.FormatBool(enabled))
	return rb
}

// WithParams applies every field of params
func (rb *MarketsRequestBuilder) WithParams(params MarketsParams) *MarketsRequestBuilder {
	rb.WithCurrency(params.Currency)
	rb.WithPerPage(params.PerPage).
		WithPage(params.Page).
		WithPriceChangePercentage(params.Windows).
		WithSparkline(false)
	return rb
}

// windowsArg is the cache key fragment for a window set
func windowsArg(windows []cg.ChangeWindow) string {
	return strings.ReplaceAll(cg.CanonicalSet(windows), ",", "+")
}
