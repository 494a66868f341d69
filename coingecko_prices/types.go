package coingecko_prices

import (
	"encoding/json"
	"fmt"

	cg "github.com/status-im/market-dashboard/coingecko_common"
)

// Prices maps a coin id to its price; nil means the provider has no price
type Prices map[string]*float64

// absentEntry is cached for ids the provider did not return, so a repeat
// lookup is still a cache hit
var absentEntry = []byte("null")

// splitSimplePrice splits a /simple/price body into per-id raw entries
func splitSimplePrice(body []byte) (map[string][]byte, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, cg.NewMalformed(cg.OpSimplePrice, "expected an object keyed by coin id", err)
	}

	result := make(map[string][]byte, len(raw))
	for id, entry := range raw {
		result[id] = []byte(entry)
	}
	return result, nil
}

// decodeEntry reads the price in currency from one per-id entry such as {"usd":123.4}
func decodeEntry(id string, entry []byte, currency cg.Currency) (*float64, error) {
	if len(entry) == 0 || string(entry) == string(absentEntry) {
		return nil, nil
	}

	var values map[string]*float64
	if err := json.Unmarshal(entry, &values); err != nil {
		return nil, cg.NewMalformed(cg.OpSimplePrice, fmt.Sprintf("entry for %q is not a price object", id), err)
	}
	return values[string(currency)], nil
}
