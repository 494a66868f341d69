package e2etest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
)

// Endpoint paths served by the mock provider
const (
	pathGlobal      = "/api/v3/global"
	pathTrending    = "/api/v3/search/trending"
	pathSimplePrice = "/api/v3/simple/price"
	pathMarkets     = "/api/v3/coins/markets"
)

// inrPerUSD converts the fixture prices so the two currencies are distinguishable
const inrPerUSD = 83.0

type mockCoin struct {
	id, symbol, name string
	priceUSD         float64
	marketCapUSD     float64
	volumeUSD        float64
	change1h         *float64
	change24h        *float64
	change7d         *float64
}

func pct(v float64) *float64 { return &v }

// mockCoins is the listing in market cap order
var mockCoins = []mockCoin{
	{"bitcoin", "btc", "Bitcoin", 50000, 950e9, 30e9, pct(0.5), pct(5), pct(10)},
	{"ethereum", "eth", "Ethereum", 3000, 360e9, 15e9, nil, pct(-2), pct(4)},
	{"ripple", "xrp", "XRP", 0.5, 27e9, 1e9, nil, nil, nil},
	{"dogecoin", "doge", "Dogecoin", 0.1, 14e9, 5e8, pct(1), pct(12), pct(-3)},
}

// MockServer imitates the CoinGecko endpoints used by the dashboard and
// counts requests per path and currency
type MockServer struct {
	server *httptest.Server

	mu        sync.Mutex
	calls     map[string]int
	keys      []string
	failPaths map[string]int
	rejectKey string
}

// NewMockServer starts the mock provider
func NewMockServer() *MockServer {
	ms := &MockServer{
		calls:     make(map[string]int),
		failPaths: make(map[string]int),
	}

	mux := http.NewServeMux()
	mux.HandleFunc(pathGlobal, ms.guard(ms.handleGlobal))
	mux.HandleFunc(pathTrending, ms.guard(ms.handleTrending))
	mux.HandleFunc(pathSimplePrice, ms.guard(ms.handleSimplePrice))
	mux.HandleFunc(pathMarkets, ms.guard(ms.handleMarkets))

	ms.server = httptest.NewServer(mux)
	return ms
}

// guard records the call, then applies configured key rejection and failures
func (ms *MockServer) guard(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		key := query.Get("x_cg_pro_api_key")
		if key == "" {
			key = query.Get("x_cg_demo_api_key")
		}

		ms.mu.Lock()
		ms.calls[callKey(r.URL.Path, query.Get("vs_currency")+query.Get("vs_currencies"))]++
		ms.keys = append(ms.keys, key)
		reject := ms.rejectKey != "" && key == ms.rejectKey
		status := ms.failPaths[r.URL.Path]
		ms.mu.Unlock()

		if reject {
			http.Error(w, `{"error":"invalid api key"}`, http.StatusUnauthorized)
			return
		}
		if status != 0 {
			http.Error(w, `{"status":{"error_message":"mock failure"}}`, status)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		next(w, r)
	}
}

func callKey(path, currency string) string {
	if currency == "" {
		return path
	}
	return path + "|" + currency
}

// Calls returns how often path was requested for currency ("" for endpoints
// without a currency)
func (ms *MockServer) Calls(path, currency string) int {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return ms.calls[callKey(path, currency)]
}

// Keys returns the API keys seen, in request order ("" for keyless requests)
func (ms *MockServer) Keys() []string {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	return append([]string(nil), ms.keys...)
}

// Fail makes path answer with status until it is set back to 0
func (ms *MockServer) Fail(path string, status int) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	if status == 0 {
		delete(ms.failPaths, path)
		return
	}
	ms.failPaths[path] = status
}

// RejectKey answers 401 to every request carrying key
func (ms *MockServer) RejectKey(key string) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.rejectKey = key
}

// GetURL returns the base URL of the mock server
func (ms *MockServer) GetURL() string {
	return ms.server.URL
}

// Close shuts the mock server down
func (ms *MockServer) Close() {
	ms.server.Close()
}

func (ms *MockServer) handleGlobal(w http.ResponseWriter, r *http.Request) {
	fmt.Fprint(w, `{
  "data": {
    "active_cryptocurrencies": 12000,
    "markets": 900,
    "total_market_cap": {"usd": 2500000000000, "inr": 207500000000000},
    "total_volume": {"usd": 90000000000, "inr": 7470000000000},
    "market_cap_percentage": {"btc": 52.1, "eth": 16.8},
    "market_cap_change_percentage_24h_usd": 1.25,
    "updated_at": 1700000000
  }
}`)
}

func (ms *MockServer) handleTrending(w http.ResponseWriter, r *http.Request) {
	fmt.Fprint(w, `{
  "coins": [
    {"item": {"id": "dogecoin", "name": "Dogecoin", "symbol": "DOGE", "market_cap_rank": 4, "score": 0}},
    {"item": {"id": "ripple", "name": "XRP", "symbol": "XRP", "market_cap_rank": 3, "score": 1}},
    {"item": {"id": "pepe", "name": "Pepe", "symbol": "PEPE", "market_cap_rank": null, "score": 2}},
    {"item": {"id": "bitcoin", "name": "Bitcoin", "symbol": "BTC", "market_cap_rank": 1, "score": 3}}
  ]
}`)
}

func (ms *MockServer) handleSimplePrice(w http.ResponseWriter, r *http.Request) {
	currency := r.URL.Query().Get("vs_currencies")
	rate := rateFor(currency)

	result := make(map[string]map[string]float64)
	for _, id := range strings.Split(r.URL.Query().Get("ids"), ",") {
		for _, coin := range mockCoins {
			if coin.id == id {
				result[id] = map[string]float64{currency: coin.priceUSD * rate}
			}
		}
	}
	_ = json.NewEncoder(w).Encode(result)
}

func (ms *MockServer) handleMarkets(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	currency := query.Get("vs_currency")
	rate := rateFor(currency)

	perPage, err := strconv.Atoi(query.Get("per_page"))
	if err != nil || perPage < 1 {
		http.Error(w, `{"error":"invalid per_page"}`, http.StatusBadRequest)
		return
	}

	entries := make([]map[string]interface{}, 0, len(mockCoins))
	for i, coin := range mockCoins {
		if i >= perPage {
			break
		}
		entries = append(entries, map[string]interface{}{
			"id":                                     coin.id,
			"symbol":                                 coin.symbol,
			"name":                                   coin.name,
			"current_price":                          coin.priceUSD * rate,
			"market_cap":                             coin.marketCapUSD * rate,
			"market_cap_rank":                        i + 1,
			"total_volume":                           coin.volumeUSD * rate,
			"price_change_percentage_1h_in_currency":  coin.change1h,
			"price_change_percentage_24h_in_currency": coin.change24h,
			"price_change_percentage_7d_in_currency":  coin.change7d,
		})
	}
	_ = json.NewEncoder(w).Encode(entries)
}

func rateFor(currency string) float64 {
	if currency == "inr" {
		return inrPerUSD
	}
	return 1
}
