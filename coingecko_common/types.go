package coingecko_common

import (
	"fmt"
	"strings"
)

// Operation names identify a provider call in cache keys, errors and metrics
const (
	OpGlobal      = "global"
	OpTrending    = "trending"
	OpSimplePrice = "simple_price"
	OpMarkets     = "markets"
)

// Currency is a lower-case CoinGecko vs_currency code such as "usd"
type Currency string

const (
	USD Currency = "usd"
	INR Currency = "inr"
)

// NewCurrency normalizes a user supplied currency code
func NewCurrency(code string) Currency {
	return Currency(strings.ToLower(strings.TrimSpace(code)))
}

// Label is the upper-case form used in column headers, e.g. "USD"
func (c Currency) Label() string {
	return strings.ToUpper(string(c))
}

func (c Currency) String() string {
	return string(c)
}

// ChangeWindow selects which percent-change field is active
type ChangeWindow string

const (
	Window1h  ChangeWindow = "1h"
	Window24h ChangeWindow = "24h"
	Window7d  ChangeWindow = "7d"
)

// AllChangeWindows lists the windows in display order
var AllChangeWindows = []ChangeWindow{Window1h, Window24h, Window7d}

// ParseChangeWindow accepts "1h", "24h" or "7d" in any case
func ParseChangeWindow(s string) (ChangeWindow, error) {
	w := ChangeWindow(strings.ToLower(strings.TrimSpace(s)))
	if !w.Valid() {
		return "", fmt.Errorf("unknown change window %q, expected one of 1h, 24h, 7d", s)
	}
	return w, nil
}

// Valid reports whether w is one of the supported windows
func (w ChangeWindow) Valid() bool {
	switch w {
	case Window1h, Window24h, Window7d:
		return true
	}
	return false
}

func (w ChangeWindow) String() string {
	return string(w)
}
