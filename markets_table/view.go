package markets_table

import (
	"strings"

	cg "github.com/status-im/market-dashboard/coingecko_common"
)

// Selection is what the user picked for the table and chart
type Selection struct {
	Currency cg.Currency     `json:"currency"`
	Window   cg.ChangeWindow `json:"window"`
	Sort     bool            `json:"sort"`
	Symbols  []string        `json:"symbols"`
	TopN     int             `json:"top_n"`
}

// ChartBar is one bar of the change chart
type ChartBar struct {
	Symbol   string   `json:"symbol"`
	Change   *float64 `json:"change"`
	Positive bool     `json:"positive"`
}

// View holds the derived table rows and chart bars
type View struct {
	Currency cg.Currency     `json:"currency"`
	Window   cg.ChangeWindow `json:"window"`
	Columns  []string        `json:"columns"`
	Table    []MarketRecord  `json:"table"`
	Chart    []ChartBar      `json:"chart"`
}

// Apply derives the view from a normalized listing. The table is filtered and
// limited in provider order. The chart uses the same rows, sorted by the
// active change when sel.Sort is set. When filtering leaves no rows the view
// is empty and an *EmptyResultError is returned with it.
func Apply(records []MarketRecord, sel Selection) (View, error) {
	view := View{
		Currency: sel.Currency,
		Window:   sel.Window,
		Columns:  Columns(sel.Currency),
		Table:    []MarketRecord{},
		Chart:    []ChartBar{},
	}

	filtered := FilterBySymbols(records, sel.Symbols)
	if len(filtered) == 0 {
		reason := "no market data"
		if len(sel.Symbols) > 0 {
			reason = "no coin matches the selected symbols"
		}
		return view, &EmptyResultError{Reason: reason}
	}

	view.Table = Limit(filtered, sel.TopN)

	chartRows := view.Table
	if sel.Sort {
		chartRows = SortByChange(chartRows, sel.Window)
	}
	view.Chart = ChartBars(chartRows, sel.Window)
	return view, nil
}

// ChartBars maps records to bars. Absent changes give a bar with a nil value.
func ChartBars(records []MarketRecord, window cg.ChangeWindow) []ChartBar {
	bars := make([]ChartBar, 0, len(records))
	for _, r := range records {
		change := ActiveChange(r, window)
		bars = append(bars, ChartBar{
			Symbol:   strings.ToUpper(r.Symbol),
			Change:   change,
			Positive: change != nil && *change > 0,
		})
	}
	return bars
}
