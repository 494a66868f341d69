package cache

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countingLoader(calls *int) LoaderFunc {
	return func(missingKeys []string) (map[string][]byte, error) {
		*calls++
		result := make(map[string][]byte)
		for _, key := range missingKeys {
			result[key] = []byte("loaded_" + key)
		}
		return result, nil
	}
}

func TestService_GetOrLoad_HitAfterMiss(t *testing.T) {
	service := NewService(DefaultCacheConfig())
	calls := 0

	data, err := service.GetOrLoad([]string{"global"}, countingLoader(&calls), false, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, []byte("loaded_global"), data["global"])
	assert.Equal(t, 1, calls)

	data, err = service.GetOrLoad([]string{"global"}, countingLoader(&calls), false, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, []byte("loaded_global"), data["global"])
	assert.Equal(t, 1, calls, "second lookup within TTL must not call the loader")

	stats := service.Stats()
	assert.Equal(t, 1, stats.GoCacheItems)
	assert.True(t, stats.Enabled)
}

func TestService_GetOrLoad_ExpiredEntryReloads(t *testing.T) {
	service := NewService(DefaultCacheConfig())
	calls := 0

	_, err := service.GetOrLoad([]string{"trending"}, countingLoader(&calls), false, 30*time.Millisecond)
	require.NoError(t, err)

	time.Sleep(60 * time.Millisecond)

	_, err = service.GetOrLoad([]string{"trending"}, countingLoader(&calls), false, 30*time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestService_GetOrLoad_PartialHit(t *testing.T) {
	service := NewService(DefaultCacheConfig())
	require.NoError(t, service.Set(map[string][]byte{"cached_key": []byte("cached_value")}, 0))

	var requested []string
	loader := func(missingKeys []string) (map[string][]byte, error) {
		requested = missingKeys
		result := make(map[string][]byte)
		for _, key := range missingKeys {
			result[key] = []byte("loaded_" + key)
		}
		return result, nil
	}

	data, err := service.GetOrLoad([]string{"cached_key", "missing_key"}, loader, true, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"missing_key"}, requested)
	assert.Equal(t, []byte("cached_value"), data["cached_key"])
	assert.Equal(t, []byte("loaded_missing_key"), data["missing_key"])

	// loadOnlyMissingKeys=false hands every key to the loader
	require.NoError(t, service.Set(map[string][]byte{"a": []byte("cached")}, 0))
	_, err = service.GetOrLoad([]string{"a", "b"}, loader, false, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, requested)
}

func TestService_GetOrLoad_LoaderErrorKeepsPreviousEntries(t *testing.T) {
	service := NewService(DefaultCacheConfig())
	require.NoError(t, service.Set(map[string][]byte{"markets|usd": []byte("old")}, 0))

	failing := func(missingKeys []string) (map[string][]byte, error) {
		return nil, errors.New("provider down")
	}

	_, err := service.GetOrLoad([]string{"markets|inr"}, failing, false, 0)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "provider down")

	found, missing, err := service.Get([]string{"markets|usd", "markets|inr"})
	require.NoError(t, err)
	assert.Equal(t, []byte("old"), found["markets|usd"])
	assert.Equal(t, []string{"markets|inr"}, missing)
}

func TestService_Invalidate(t *testing.T) {
	service := NewService(DefaultCacheConfig())
	require.NoError(t, service.Set(map[string][]byte{
		"markets|usd|250": []byte("1"),
		"markets|inr|250": []byte("2"),
		"global":          []byte("3"),
	}, 0))

	assert.Equal(t, 1, service.Invalidate("markets|usd|"))
	_, missing, _ := service.Get([]string{"markets|usd|250", "markets|inr|250"})
	assert.Equal(t, []string{"markets|usd|250"}, missing)

	assert.Equal(t, 2, service.Invalidate(""))
	assert.Equal(t, 0, service.Stats().GoCacheItems)
}

func TestService_Disabled(t *testing.T) {
	config := DefaultCacheConfig()
	config.GoCache.Enabled = false
	service := NewService(config)
	calls := 0

	for i := 0; i < 3; i++ {
		_, err := service.GetOrLoad([]string{"global"}, countingLoader(&calls), false, time.Minute)
		require.NoError(t, err)
	}
	assert.Equal(t, 3, calls)
	assert.Equal(t, 0, service.Stats().GoCacheItems)
}

func TestService_EmptyKeys(t *testing.T) {
	service := NewService(DefaultCacheConfig())
	calls := 0

	data, err := service.GetOrLoad(nil, countingLoader(&calls), false, 0)
	require.NoError(t, err)
	assert.Empty(t, data)
	assert.Equal(t, 0, calls)
}
