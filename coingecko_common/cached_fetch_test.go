package coingecko_common

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/status-im/market-dashboard/cache"
)

func TestLoadCached(t *testing.T) {
	c := cache.NewService(cache.DefaultCacheConfig())
	calls := 0
	fetch := func() ([]byte, error) {
		calls++
		return []byte(`{"n":1}`), nil
	}

	body, hit, err := LoadCached(c, "global|", time.Minute, fetch)
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, `{"n":1}`, string(body))

	body2, hit, err := LoadCached(c, "global|", time.Minute, fetch)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, body, body2)
	assert.Equal(t, 1, calls)
}

func TestLoadCached_ErrorIsReturnedUnwrapped(t *testing.T) {
	c := cache.NewService(cache.DefaultCacheConfig())
	providerErr := &ProviderError{Operation: OpGlobal, StatusCode: 500, Err: errors.New("down")}

	_, hit, err := LoadCached(c, "global|", time.Minute, func() ([]byte, error) {
		return nil, providerErr
	})

	assert.Same(t, providerErr, err)
	assert.False(t, hit)

	_, missing, _ := c.Get([]string{"global|"})
	assert.Equal(t, []string{"global|"}, missing, "failures are never cached")
}
