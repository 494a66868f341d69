package interfaces

import (
	"context"

	cg "github.com/status-im/market-dashboard/coingecko_common"
	"github.com/status-im/market-dashboard/coingecko_global"
	"github.com/status-im/market-dashboard/coingecko_markets"
	"github.com/status-im/market-dashboard/coingecko_prices"
	"github.com/status-im/market-dashboard/coingecko_trending"
)

//go:generate mockgen -destination=mocks/market_data.go . MarketDataClient

// MarketDataClient is the cached CoinGecko client consumed by the dashboard
type MarketDataClient interface {
	// FetchGlobal returns aggregate market statistics
	FetchGlobal(ctx context.Context) (*coingecko_global.GlobalStats, error)

	// FetchTrending returns trending coins in provider order
	FetchTrending(ctx context.Context) ([]coingecko_trending.TrendingCoin, error)

	// FetchSimplePrice returns the price of each id in currency; unknown ids map to nil
	FetchSimplePrice(ctx context.Context, ids []string, currency cg.Currency) (coingecko_prices.Prices, error)

	// FetchMarkets returns one page of the market listing ordered by market cap
	FetchMarkets(ctx context.Context, params coingecko_markets.MarketsParams) ([]coingecko_markets.MarketEntry, error)

	// InvalidateCurrency drops every cached response priced in currency
	InvalidateCurrency(currency cg.Currency) int

	// Invalidate drops every cached response of operation, or everything when operation is empty
	Invalidate(operation string) int

	// Healthy reports per operation whether the provider answered at least once
	Healthy() map[string]bool
}
