package dashboard

import (
	"slices"
	"time"

	"github.com/status-im/market-dashboard/coingecko_global"
	"github.com/status-im/market-dashboard/coingecko_trending"
	"github.com/status-im/market-dashboard/markets_table"
)

// Panel names, also used as event topics
const (
	PanelGlobal   = "global"
	PanelTrending = "trending"
	PanelMarkets  = "markets"
	PanelSearch   = "search"
	// PanelView is the derived table and chart
	PanelView = "view"
	// TopicSelections is emitted whenever a selection changes
	TopicSelections = "selections"
)

// FetchedPanels are the panels backed by a provider call
var FetchedPanels = []string{PanelGlobal, PanelTrending, PanelMarkets, PanelSearch}

// TrendingHighlight is a trending coin with its price in the selected currency
type TrendingHighlight struct {
	coingecko_trending.TrendingCoin
	Price *float64 `json:"price"`
}

// PanelStatus tells whether a panel's last refresh worked. On failure the
// panel keeps the data of its last successful refresh.
type PanelStatus struct {
	Error     string    `json:"error,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty"`
}

// Snapshot is an immutable copy of everything the dashboard shows
type Snapshot struct {
	Selections Selections                    `json:"selections"`
	Global     *coingecko_global.GlobalStats `json:"global"`
	Trending   []TrendingHighlight           `json:"trending"`
	Markets    []markets_table.MarketRecord  `json:"-"`
	SearchPool []markets_table.MarketRecord  `json:"-"`
	Symbols    []string                      `json:"symbols"`

	View      markets_table.View `json:"view"`
	ViewError string             `json:"view_error,omitempty"`

	SearchResults []markets_table.MarketRecord `json:"search_results"`
	SearchError   string                       `json:"search_error,omitempty"`

	Panels map[string]PanelStatus `json:"panels"`
}

// Errors lists the panel errors, keyed by panel
func (s Snapshot) Errors() map[string]string {
	out := make(map[string]string)
	for panel, status := range s.Panels {
		if status.Error != "" {
			out[panel] = status.Error
		}
	}
	return out
}

// clone copies the containers of s. Records are values, so copying the
// slices is enough to keep callers from seeing later updates.
func (s Snapshot) clone() Snapshot {
	s.Selections = s.Selections.clone()
	s.Trending = slices.Clone(s.Trending)
	s.Markets = slices.Clone(s.Markets)
	s.SearchPool = slices.Clone(s.SearchPool)
	s.Symbols = slices.Clone(s.Symbols)
	s.View.Table = slices.Clone(s.View.Table)
	s.View.Chart = slices.Clone(s.View.Chart)
	s.View.Columns = slices.Clone(s.View.Columns)
	s.SearchResults = slices.Clone(s.SearchResults)

	panels := make(map[string]PanelStatus, len(s.Panels))
	for k, v := range s.Panels {
		panels[k] = v
	}
	s.Panels = panels
	return s
}
