package coingecko_trending

import (
	"encoding/json"
	"fmt"

	cg "github.com/status-im/market-dashboard/coingecko_common"
)

// TrendingCoin is one entry of /search/trending, in provider order
type TrendingCoin struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Symbol        string `json:"symbol"`
	MarketCapRank *int   `json:"market_cap_rank"`
	Score         int    `json:"score"`
	Thumb         string `json:"thumb,omitempty"`
}

type trendingEnvelope struct {
	Coins *[]struct {
		Item *TrendingCoin `json:"item"`
	} `json:"coins"`
}

// DecodeTrending parses a /search/trending body. The coins array is required
// and every entry needs an id, a name and a symbol.
func DecodeTrending(body []byte) ([]TrendingCoin, error) {
	var envelope trendingEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, cg.NewMalformed(cg.OpTrending, "invalid JSON", err)
	}
	if envelope.Coins == nil {
		return nil, cg.NewMalformed(cg.OpTrending, `missing "coins" array`, nil)
	}

	coins := make([]TrendingCoin, 0, len(*envelope.Coins))
	for i, entry := range *envelope.Coins {
		if entry.Item == nil {
			return nil, cg.NewMalformed(cg.OpTrending, fmt.Sprintf(`coin %d has no "item"`, i), nil)
		}
		if entry.Item.ID == "" || entry.Item.Name == "" || entry.Item.Symbol == "" {
			return nil, cg.NewMalformed(cg.OpTrending, fmt.Sprintf("coin %d lacks id, name or symbol", i), nil)
		}
		coins = append(coins, *entry.Item)
	}
	return coins, nil
}

// Top returns at most n coins from the head of coins
func Top(coins []TrendingCoin, n int) []TrendingCoin {
	if n < 0 {
		n = 0
	}
	if n > len(coins) {
		n = len(coins)
	}
	return coins[:n]
}

// IDs returns the coin ids in order
func IDs(coins []TrendingCoin) []string {
	ids := make([]string, len(coins))
	for i, c := range coins {
		ids[i] = c.ID
	}
	return ids
}
