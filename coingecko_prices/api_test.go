package coingecko_prices

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cg "github.com/status-im/market-dashboard/coingecko_common"
	"github.com/status-im/market-dashboard/config"
)

func TestCoinGeckoClient_FetchPrices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, PRICES_API_PATH, r.URL.Path)
		assert.Equal(t, "bitcoin,ethereum", r.URL.Query().Get("ids"))
		assert.Equal(t, "usd", r.URL.Query().Get("vs_currencies"))
		_, _ = w.Write([]byte(`{"bitcoin":{"usd":64000},"ethereum":{"usd":3100.25}}`))
	}))
	defer server.Close()

	cfg := config.DefaultCoingeckoConfig()
	cfg.OverridePublicURL = server.URL
	client := NewCoinGeckoClient(&cfg, nil)

	entries, err := client.FetchPrices(context.Background(), []string{"bitcoin", "ethereum"}, cg.USD)
	require.NoError(t, err)
	assert.JSONEq(t, `{"usd":64000}`, string(entries["bitcoin"]))
	assert.JSONEq(t, `{"usd":3100.25}`, string(entries["ethereum"]))
	assert.True(t, client.Healthy())
}

func TestCoinGeckoClient_FetchPrices_Malformed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`["bitcoin"]`))
	}))
	defer server.Close()

	cfg := config.DefaultCoingeckoConfig()
	cfg.OverridePublicURL = server.URL
	client := NewCoinGeckoClient(&cfg, nil)

	_, err := client.FetchPrices(context.Background(), []string{"bitcoin"}, cg.USD)
	assert.True(t, cg.IsMalformedResponse(err))
	assert.False(t, client.Healthy())
}

func TestPricesRequestBuilder(t *testing.T) {
	url := NewPricesRequestBuilder("https://api.coingecko.com").
		WithIds([]string{"bitcoin", "solana"}).
		WithCurrencies(cg.USD, cg.INR).
		WithInclude24hChange(true).
		BuildURL()

	assert.Equal(t, "https://api.coingecko.com/api/v3/simple/price?ids=bitcoin%2Csolana&include_24hr_change=true&vs_currencies=usd%2Cinr", url)
}
