package marketdata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/status-im/market-dashboard/cache"
	cg "github.com/status-im/market-dashboard/coingecko_common"
	"github.com/status-im/market-dashboard/coingecko_global"
	"github.com/status-im/market-dashboard/coingecko_markets"
	mock_coingecko_markets "github.com/status-im/market-dashboard/coingecko_markets/mocks"
	"github.com/status-im/market-dashboard/coingecko_prices"
	mock_coingecko_prices "github.com/status-im/market-dashboard/coingecko_prices/mocks"
	"github.com/status-im/market-dashboard/coingecko_trending"
	"github.com/status-im/market-dashboard/config"
)

const (
	globalBody   = `{"data":{"active_cryptocurrencies":10,"markets":5,"total_market_cap":{"usd":2.5e12,"inr":2.1e14},"total_volume":{"usd":9.1e10,"inr":7.6e12},"market_cap_change_percentage_24h_usd":1.5}}`
	trendingBody = `{"coins":[{"item":{"id":"pepe","name":"Pepe","symbol":"PEPE","market_cap_rank":24,"score":0}}]}`
	pricesBody   = `{"pepe":{"usd":0.00001}}`
	marketsBody  = `[{"id":"bitcoin","symbol":"btc","name":"Bitcoin","current_price":64000,"price_change_percentage_24h_in_currency":5}]`
)

// provider counts calls per path
type provider struct {
	mu    sync.Mutex
	calls map[string]int
}

func (p *provider) count(path string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls[path]
}

func newProvider(t *testing.T) (*provider, *httptest.Server) {
	p := &provider{calls: map[string]int{}}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p.mu.Lock()
		p.calls[r.URL.Path]++
		p.mu.Unlock()

		switch r.URL.Path {
		case coingecko_global.GLOBAL_API_PATH:
			_, _ = w.Write([]byte(globalBody))
		case coingecko_trending.TRENDING_API_PATH:
			_, _ = w.Write([]byte(trendingBody))
		case coingecko_prices.PRICES_API_PATH:
			_, _ = w.Write([]byte(pricesBody))
		case coingecko_markets.MARKETS_API_PATH:
			_, _ = w.Write([]byte(marketsBody))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)
	return p, server
}

func newTestService(t *testing.T, serverURL string) *Service {
	cfg := config.Default()
	cfg.Coingecko.OverridePublicURL = serverURL
	cfg.CoingeckoGlobal.TTL = 100 * time.Millisecond

	s := NewService(cache.NewService(cache.DefaultCacheConfig()), cfg)
	require.NoError(t, s.Start(context.Background()))
	t.Cleanup(s.Stop)
	return s
}

func TestService_FetchGlobal_CachedWithinTTL(t *testing.T) {
	p, server := newProvider(t)
	s := newTestService(t, server.URL)
	ctx := context.Background()

	first, err := s.FetchGlobal(ctx)
	require.NoError(t, err)
	second, err := s.FetchGlobal(ctx)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, p.count(coingecko_global.GLOBAL_API_PATH))

	time.Sleep(150 * time.Millisecond)
	_, err = s.FetchGlobal(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, p.count(coingecko_global.GLOBAL_API_PATH))
}

func TestService_AllOperations(t *testing.T) {
	p, server := newProvider(t)
	s := newTestService(t, server.URL)
	ctx := context.Background()

	trending, err := s.FetchTrending(ctx)
	require.NoError(t, err)
	require.Len(t, trending, 1)

	prices, err := s.FetchSimplePrice(ctx, []string{"pepe", "unknown"}, cg.USD)
	require.NoError(t, err)
	assert.Equal(t, 0.00001, *prices["pepe"])
	assert.Nil(t, prices["unknown"])

	entries, err := s.FetchMarkets(ctx, coingecko_markets.MarketsParams{Currency: cg.USD, PerPage: 250, Page: 1, Windows: cg.AllChangeWindows})
	require.NoError(t, err)
	assert.Equal(t, "btc", entries[0].Symbol)

	health := s.Healthy()
	assert.True(t, health[cg.OpTrending])
	assert.True(t, health[cg.OpSimplePrice])
	assert.True(t, health[cg.OpMarkets])
	assert.False(t, health[cg.OpGlobal])

	assert.Equal(t, 3, s.InvalidateCurrency(cg.USD))
	_, err = s.FetchSimplePrice(ctx, []string{"pepe"}, cg.USD)
	require.NoError(t, err)
	assert.Equal(t, 2, p.count(coingecko_prices.PRICES_API_PATH))

	assert.Equal(t, 1, s.Invalidate(cg.OpTrending))
	assert.Equal(t, 0, s.Invalidate("unknown"))
	assert.Equal(t, 1, s.Invalidate(""))
}

func TestService_FetchSimplePrice_EmptyIDsMakeNoCall(t *testing.T) {
	ctrl := gomock.NewController(t)
	prices := mock_coingecko_prices.NewMockAPIClient(ctrl)
	s := NewServiceWithClients(cache.NewService(cache.DefaultCacheConfig()), config.Default(), Clients{Prices: prices})

	got, err := s.FetchSimplePrice(context.Background(), nil, cg.USD)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NotNil(t, got)
}

func TestService_FetchMarkets_InvalidPagingMakesNoCall(t *testing.T) {
	ctrl := gomock.NewController(t)
	markets := mock_coingecko_markets.NewMockAPIClient(ctrl)
	s := NewServiceWithClients(cache.NewService(cache.DefaultCacheConfig()), config.Default(), Clients{Markets: markets})

	_, err := s.FetchMarkets(context.Background(), coingecko_markets.MarketsParams{Currency: cg.USD, PerPage: 1000, Page: 1})
	assert.Error(t, err)
}

func TestService_FetchMarkets_ProviderErrorNotCached(t *testing.T) {
	ctrl := gomock.NewController(t)
	markets := mock_coingecko_markets.NewMockAPIClient(ctrl)
	s := NewServiceWithClients(cache.NewService(cache.DefaultCacheConfig()), config.Default(), Clients{Markets: markets})
	params := coingecko_markets.MarketsParams{Currency: cg.INR, PerPage: 100, Page: 1}

	gomock.InOrder(
		markets.EXPECT().FetchPage(gomock.Any(), params).Return(nil, &cg.ProviderError{Operation: cg.OpMarkets, StatusCode: 503}),
		markets.EXPECT().FetchPage(gomock.Any(), params).Return([]byte(marketsBody), nil),
	)

	_, err := s.FetchMarkets(context.Background(), params)
	assert.True(t, cg.IsProviderError(err))

	entries, err := s.FetchMarkets(context.Background(), params)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
