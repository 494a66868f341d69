package coingecko_common

import (
	"context"
	"net/http"
	"net/url"
	"strings"
)

const defaultUserAgent = "market-dashboard/1.0"

// joinURL combines a base URL with a path without doubling slashes
func joinURL(baseURL, path string) string {
	return strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(path, "/")
}

// CoingeckoRequestBuilder builds GET requests for CoinGecko endpoints.
// Endpoint packages embed it and add typed setters.
type CoingeckoRequestBuilder struct {
	baseURL   string
	apiPath   string
	params    url.Values
	apiKey    string
	keyType   KeyType
	userAgent string
	headers   map[string]string
}

// NewCoingeckoRequestBuilder creates a builder for baseURL + apiPath
func NewCoingeckoRequestBuilder(baseURL, apiPath string) *CoingeckoRequestBuilder {
	return &CoingeckoRequestBuilder{
		baseURL:   baseURL,
		apiPath:   apiPath,
		params:    url.Values{},
		userAgent: defaultUserAgent,
		headers:   map[string]string{"Accept": "application/json"},
	}
}

// With sets a query parameter, replacing any previous value
func (rb *CoingeckoRequestBuilder) With(key, value string) *CoingeckoRequestBuilder {
	rb.params.Set(key, value)
	return rb
}

// WithCurrency adds vs_currency parameter
func (rb *CoingeckoRequestBuilder) WithCurrency(currency Currency) *CoingeckoRequestBuilder {
	if currency != "" {
		rb.params.Set("vs_currency", string(currency))
	}
	return rb
}

// WithApiKey sets the API key and its type. An empty key leaves the request anonymous.
func (rb *CoingeckoRequestBuilder) WithApiKey(apiKey string, keyType KeyType) *CoingeckoRequestBuilder {
	if apiKey != "" {
		rb.apiKey = apiKey
		rb.keyType = keyType
	}
	return rb
}

// WithHeader adds a custom HTTP header
func (rb *CoingeckoRequestBuilder) WithHeader(name, value string) *CoingeckoRequestBuilder {
	rb.headers[name] = value
	return rb
}

// GetApiKey returns the API key and its type
func (rb *CoingeckoRequestBuilder) GetApiKey() (string, KeyType) {
	return rb.apiKey, rb.keyType
}

// BuildURL renders the full URL; query parameters are sorted by url.Values.Encode
func (rb *CoingeckoRequestBuilder) BuildURL() string {
	query := url.Values{}
	for key, values := range rb.params {
		query[key] = append([]string(nil), values...)
	}

	switch {
	case rb.apiKey == "":
	case rb.keyType == ProKey:
		query.Set("x_cg_pro_api_key", rb.apiKey)
	case rb.keyType == DemoKey:
		query.Set("x_cg_demo_api_key", rb.apiKey)
	}

	fullURL := joinURL(rb.baseURL, rb.apiPath)
	if encoded := query.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}
	return fullURL
}

// Build creates the http.Request bound to ctx
func (rb *CoingeckoRequestBuilder) Build(ctx context.Context) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rb.BuildURL(), nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", rb.userAgent)
	for key, value := range rb.headers {
		req.Header.Set(key, value)
	}

	return req, nil
}
