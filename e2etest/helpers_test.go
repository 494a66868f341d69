package e2etest

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

// getJSON fetches path and decodes the body into out, returning the status
func getJSON(t *testing.T, env *TestEnv, path string, out interface{}) int {
	t.Helper()
	resp, err := http.Get(env.ServerBaseURL + path)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, out), "body: %s", body)
	}
	return resp.StatusCode
}

// postJSON posts payload to path and decodes the body into out
func postJSON(t *testing.T, env *TestEnv, path string, payload interface{}, out interface{}) int {
	t.Helper()
	data, err := json.Marshal(payload)
	require.NoError(t, err)

	resp, err := http.Post(env.ServerBaseURL+path, "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil {
		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, out), "body: %s", body)
	}
	return resp.StatusCode
}

type marketsResponse struct {
	Currency string   `json:"currency"`
	Window   string   `json:"window"`
	Columns  []string `json:"columns"`
	Rows     []struct {
		ID           string   `json:"id"`
		Symbol       string   `json:"symbol"`
		Price        *float64 `json:"price"`
		PctChange24h *float64 `json:"pct_change_24h"`
	} `json:"rows"`
	Chart []struct {
		Symbol   string  `json:"symbol"`
		Change   *float64 `json:"change"`
		Positive bool    `json:"positive"`
	} `json:"chart"`
	Error string `json:"error"`
	Stale string `json:"stale"`
}

func (m marketsResponse) symbols() []string {
	out := make([]string, 0, len(m.Rows))
	for _, row := range m.Rows {
		out = append(out, row.Symbol)
	}
	return out
}

func (m marketsResponse) chartSymbols() []string {
	out := make([]string, 0, len(m.Chart))
	for _, bar := range m.Chart {
		out = append(out, bar.Symbol)
	}
	return out
}
