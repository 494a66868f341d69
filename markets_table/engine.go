package markets_table

import (
	"fmt"
	"math"
	"sort"
	"strings"

	cg "github.com/status-im/market-dashboard/coingecko_common"
)

// MaxTopN caps how many rows the table and chart show
const MaxTopN = 25

// SearchPoolSize is the number of top coins searched by name or symbol
const SearchPoolSize = 100

// EmptyResultError reports that a filter or search left nothing to show
type EmptyResultError struct {
	Reason string
}

func (e *EmptyResultError) Error() string {
	return fmt.Sprintf("no results: %s", e.Reason)
}

// FilterBySymbols keeps records whose symbol is in symbols, matched case
// insensitively. An empty set keeps everything.
func FilterBySymbols(records []MarketRecord, symbols []string) []MarketRecord {
	if len(symbols) == 0 {
		return records
	}

	wanted := make(map[string]struct{}, len(symbols))
	for _, s := range symbols {
		wanted[strings.ToLower(strings.TrimSpace(s))] = struct{}{}
	}

	out := make([]MarketRecord, 0, len(records))
	for _, r := range records {
		if _, ok := wanted[strings.ToLower(r.Symbol)]; ok {
			out = append(out, r)
		}
	}
	return out
}

// ClampTopN bounds n to [1, min(MaxTopN, available)]. It returns 0 only when
// nothing is available.
func ClampTopN(n, available int) int {
	if available <= 0 {
		return 0
	}
	upper := min(MaxTopN, available)
	return max(1, min(n, upper))
}

// Limit returns the first n records with n clamped by ClampTopN
func Limit(records []MarketRecord, n int) []MarketRecord {
	return records[:ClampTopN(n, len(records))]
}

// ActiveChange returns the change field selected by window
func ActiveChange(r MarketRecord, window cg.ChangeWindow) *float64 {
	switch window {
	case cg.Window1h:
		return r.PctChange1h
	case cg.Window7d:
		return r.PctChange7d
	default:
		return r.PctChange24h
	}
}

// SortByChange returns a copy sorted ascending by the active change. The sort
// is stable and absent values come first.
func SortByChange(records []MarketRecord, window cg.ChangeWindow) []MarketRecord {
	out := make([]MarketRecord, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool {
		return changeKey(out[i], window) < changeKey(out[j], window)
	})
	return out
}

func changeKey(r MarketRecord, window cg.ChangeWindow) float64 {
	if v := ActiveChange(r, window); v != nil && !math.IsNaN(*v) {
		return *v
	}
	return math.Inf(-1)
}

// Search keeps records whose name or symbol contains query, ignoring case.
// Only the first SearchPoolSize records are searched.
func Search(records []MarketRecord, query string) ([]MarketRecord, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil, &EmptyResultError{Reason: "empty search query"}
	}
	if len(records) > SearchPoolSize {
		records = records[:SearchPoolSize]
	}

	var out []MarketRecord
	for _, r := range records {
		if strings.Contains(strings.ToLower(r.Name), q) || strings.Contains(strings.ToLower(r.Symbol), q) {
			out = append(out, r)
		}
	}
	if len(out) == 0 {
		return nil, &EmptyResultError{Reason: fmt.Sprintf("no coin matches %q", query)}
	}
	return out, nil
}

// AvailableSymbols lists distinct upper-case symbols, sorted
func AvailableSymbols(records []MarketRecord) []string {
	seen := make(map[string]struct{}, len(records))
	out := make([]string, 0, len(records))
	for _, r := range records {
		s := strings.ToUpper(r.Symbol)
		if _, ok := seen[s]; ok || s == "" {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
