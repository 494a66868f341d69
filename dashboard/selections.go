package dashboard

import (
	"fmt"
	"slices"
	"strings"

	cg "github.com/status-im/market-dashboard/coingecko_common"
	"github.com/status-im/market-dashboard/config"
	"github.com/status-im/market-dashboard/markets_table"
)

// Selections are the user inputs that shape the dashboard
type Selections struct {
	Currency cg.Currency     `json:"currency"`
	Window   cg.ChangeWindow `json:"window"`
	Sort     bool            `json:"sort"`
	// Symbols filters the table and chart; empty means every coin
	Symbols []string `json:"symbols"`
	TopN    int      `json:"top_n"`
	Search  string   `json:"search"`
}

// DefaultSelections builds the initial selections from config
func DefaultSelections(cfg config.DashboardConfig) Selections {
	window, err := cg.ParseChangeWindow(cfg.DefaultWindow)
	if err != nil {
		window = cg.Window24h
	}
	return Selections{
		Currency: cg.NewCurrency(cfg.DefaultCurrency),
		Window:   window,
		Sort:     cfg.SortValues,
		Symbols:  []string{},
		TopN:     markets_table.ClampTopN(cfg.TopN, markets_table.MaxTopN),
	}
}

// TableSelection is the part of the selections the table engine reads
func (s Selections) TableSelection() markets_table.Selection {
	return markets_table.Selection{
		Currency: s.Currency,
		Window:   s.Window,
		Sort:     s.Sort,
		Symbols:  s.Symbols,
		TopN:     s.TopN,
	}
}

func (s Selections) clone() Selections {
	s.Symbols = slices.Clone(s.Symbols)
	return s
}

// normalizeSymbols upper-cases, trims and de-duplicates symbols, keeping order
func normalizeSymbols(symbols []string) []string {
	out := make([]string, 0, len(symbols))
	for _, s := range symbols {
		s = strings.ToUpper(strings.TrimSpace(s))
		if s == "" || slices.Contains(out, s) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// SelectionsUpdate is a partial update; nil fields are left unchanged
type SelectionsUpdate struct {
	Currency *string   `json:"currency,omitempty"`
	Window   *string   `json:"window,omitempty"`
	Sort     *bool     `json:"sort,omitempty"`
	Symbols  *[]string `json:"symbols,omitempty"`
	TopN     *int      `json:"top_n,omitempty"`
	Search   *string   `json:"search,omitempty"`
}

// Validate checks the update against the selectable currencies
func (u SelectionsUpdate) Validate(currencies []string) error {
	if u.Currency != nil && !slices.Contains(currencies, string(cg.NewCurrency(*u.Currency))) {
		return fmt.Errorf("unsupported currency %q, expected one of %v", *u.Currency, currencies)
	}
	if u.Window != nil {
		if _, err := cg.ParseChangeWindow(*u.Window); err != nil {
			return err
		}
	}
	return nil
}
