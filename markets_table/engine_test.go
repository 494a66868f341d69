package markets_table

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cg "github.com/status-im/market-dashboard/coingecko_common"
	"github.com/status-im/market-dashboard/coingecko_markets"
)

func f(v float64) *float64 { return &v }

func record(symbol string, change24h *float64) MarketRecord {
	return MarketRecord{ID: symbol, Name: symbol, Symbol: symbol, Currency: cg.USD, PctChange24h: change24h}
}

func symbols(records []MarketRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Symbol
	}
	return out
}

func TestNormalize(t *testing.T) {
	entries := []coingecko_markets.MarketEntry{
		{ID: "bitcoin", Symbol: "btc", Name: "Bitcoin", CurrentPrice: f(64000), PriceChangePercentage24hInCurrency: f(5)},
		{ID: "ripple", Symbol: "xrp", Name: "XRP"},
	}

	records := Normalize(entries, cg.INR)
	require.Len(t, records, 2)
	assert.Equal(t, "bitcoin", records[0].ID)
	assert.Equal(t, cg.INR, records[0].Currency)
	assert.Equal(t, 64000.0, *records[0].Price)
	assert.Nil(t, records[1].Price)
	assert.Nil(t, records[1].PctChange24h)

	assert.Equal(t, records, Normalize(entries, cg.INR))
	assert.Equal(t, records, Renormalize(records, cg.INR))

	relabelled := Renormalize(records, cg.USD)
	assert.Equal(t, cg.USD, relabelled[0].Currency)
	assert.Equal(t, cg.INR, records[0].Currency)
	assert.Equal(t, "Price (USD)", PriceColumn(cg.USD))
}

func TestFilterBySymbols(t *testing.T) {
	records := []MarketRecord{record("btc", nil), record("eth", nil), record("btc", f(1))}

	assert.Equal(t, records, FilterBySymbols(records, nil))
	assert.Equal(t, []string{"btc", "btc"}, symbols(FilterBySymbols(records, []string{"BTC"})))
	assert.Empty(t, FilterBySymbols(records, []string{"doge"}))
}

func TestClampTopN(t *testing.T) {
	tests := []struct {
		n, available, want int
	}{
		{0, 100, 1},
		{-4, 100, 1},
		{10, 100, 10},
		{50, 100, 25},
		{25, 3, 3},
		{5, 0, 0},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("n=%d/available=%d", tt.n, tt.available), func(t *testing.T) {
			assert.Equal(t, tt.want, ClampTopN(tt.n, tt.available))
		})
	}

	assert.Empty(t, Limit(nil, 10))
}

func TestSortByChange(t *testing.T) {
	records := []MarketRecord{
		record("btc", f(5)),
		record("eth", f(-2)),
		record("xrp", nil),
		record("sol", f(-2)),
	}

	sorted := SortByChange(records, cg.Window24h)
	assert.Equal(t, []string{"xrp", "eth", "sol", "btc"}, symbols(sorted))
	assert.Equal(t, []string{"btc", "eth", "xrp", "sol"}, symbols(records))

	records[0].PctChange1h = f(-9)
	assert.Equal(t, "btc", SortByChange(records, cg.Window1h)[3].Symbol)
	assert.Equal(t, "eth", SortByChange(records, cg.Window1h)[0].Symbol)
}

func TestActiveChange(t *testing.T) {
	r := MarketRecord{PctChange1h: f(1), PctChange24h: f(24), PctChange7d: f(7)}
	assert.Equal(t, 1.0, *ActiveChange(r, cg.Window1h))
	assert.Equal(t, 24.0, *ActiveChange(r, cg.Window24h))
	assert.Equal(t, 7.0, *ActiveChange(r, cg.Window7d))
}

func TestSearch(t *testing.T) {
	records := []MarketRecord{
		{Name: "Bitcoin", Symbol: "btc"},
		{Name: "Bitcoin Cash", Symbol: "bch"},
		{Name: "Ethereum", Symbol: "eth"},
	}

	found, err := Search(records, "BIT")
	require.NoError(t, err)
	assert.Equal(t, []string{"btc", "bch"}, symbols(found))

	found, err = Search(records, "eth")
	require.NoError(t, err)
	assert.Equal(t, []string{"eth"}, symbols(found))

	_, err = Search(records, "doge")
	var emptyErr *EmptyResultError
	assert.ErrorAs(t, err, &emptyErr)
}

func TestSearch_OnlyTopHundred(t *testing.T) {
	records := make([]MarketRecord, 0, SearchPoolSize+1)
	for i := 0; i < SearchPoolSize; i++ {
		records = append(records, MarketRecord{Name: fmt.Sprintf("Coin %d", i), Symbol: fmt.Sprintf("c%d", i)})
	}
	records = append(records, MarketRecord{Name: "Tail", Symbol: "tail"})

	_, err := Search(records, "tail")
	assert.Error(t, err)
}

func TestAvailableSymbols(t *testing.T) {
	records := []MarketRecord{record("eth", nil), record("btc", nil), record("eth", nil)}
	assert.Equal(t, []string{"BTC", "ETH"}, AvailableSymbols(records))
}
