package markets_table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cg "github.com/status-im/market-dashboard/coingecko_common"
)

func TestApply_ChartSortedTableNot(t *testing.T) {
	records := []MarketRecord{
		record("btc", f(5)),
		record("eth", f(-2)),
		record("xrp", nil),
	}

	view, err := Apply(records, Selection{Currency: cg.USD, Window: cg.Window24h, Sort: true, TopN: 25})
	require.NoError(t, err)

	assert.Equal(t, []string{"btc", "eth", "xrp"}, symbols(view.Table))
	require.Len(t, view.Chart, 3)
	assert.Equal(t, "XRP", view.Chart[0].Symbol)
	assert.Nil(t, view.Chart[0].Change)
	assert.False(t, view.Chart[0].Positive)
	assert.Equal(t, "ETH", view.Chart[1].Symbol)
	assert.False(t, view.Chart[1].Positive)
	assert.Equal(t, "BTC", view.Chart[2].Symbol)
	assert.True(t, view.Chart[2].Positive)
	assert.Equal(t, "Price (USD)", view.Columns[2])
}

func TestApply_Unsorted(t *testing.T) {
	records := []MarketRecord{record("btc", f(5)), record("eth", f(-2))}

	view, err := Apply(records, Selection{Currency: cg.USD, Window: cg.Window24h, TopN: 25})
	require.NoError(t, err)
	assert.Equal(t, "BTC", view.Chart[0].Symbol)
}

func TestApply_TopNClamped(t *testing.T) {
	records := make([]MarketRecord, 30)
	for i := range records {
		records[i] = record("c", f(float64(i)))
	}

	view, err := Apply(records, Selection{Currency: cg.USD, Window: cg.Window24h, TopN: 100})
	require.NoError(t, err)
	assert.Len(t, view.Table, 25)

	view, err = Apply(records, Selection{Currency: cg.USD, Window: cg.Window24h, TopN: 0})
	require.NoError(t, err)
	assert.Len(t, view.Table, 1)
}

func TestApply_EmptyResult(t *testing.T) {
	records := []MarketRecord{record("btc", f(5))}

	view, err := Apply(records, Selection{Currency: cg.USD, Window: cg.Window24h, Symbols: []string{"doge"}, TopN: 10})
	var emptyErr *EmptyResultError
	require.ErrorAs(t, err, &emptyErr)
	assert.Empty(t, view.Table)
	assert.Empty(t, view.Chart)
	assert.NotNil(t, view.Table)

	_, err = Apply(nil, Selection{Currency: cg.USD, Window: cg.Window24h, TopN: 10})
	assert.ErrorAs(t, err, &emptyErr)
}
