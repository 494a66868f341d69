package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGoCache_GetSet(t *testing.T) {
	store := NewGoCache(5*time.Minute, 10*time.Minute)

	store.Set(map[string][]byte{
		"global|":            []byte(`{"data":{}}`),
		"trending|":          []byte(`{"coins":[]}`),
		"markets|usd|250|1|": []byte(`[]`),
	}, 0)

	found, missing := store.Get([]string{"global|", "markets|usd|250|1|", "markets|inr|250|1|"})
	assert.Len(t, found, 2)
	assert.Equal(t, []string{"markets|inr|250|1|"}, missing)
	assert.Equal(t, []byte(`{"data":{}}`), found["global|"])
	assert.Equal(t, 3, store.ItemCount())
}

func TestGoCache_DeleteByPrefix(t *testing.T) {
	store := NewGoCache(5*time.Minute, 10*time.Minute)

	store.Set(map[string][]byte{
		"markets|usd|250":  []byte("a"),
		"markets|usd|100":  []byte("b"),
		"markets|inr|250":  []byte("c"),
		"simple_price|usd": []byte("d"),
	}, 0)

	assert.Equal(t, 2, store.DeleteByPrefix("markets|usd|"))

	found, missing := store.Get([]string{"markets|usd|250", "markets|inr|250", "simple_price|usd"})
	assert.Len(t, found, 2)
	assert.Equal(t, []string{"markets|usd|250"}, missing)

	assert.Equal(t, 0, store.DeleteByPrefix("unknown|"))

	store.Clear()
	assert.Equal(t, 0, store.ItemCount())
}

func TestGoCache_Expiration(t *testing.T) {
	store := NewGoCache(5*time.Minute, 10*time.Minute)

	store.Set(map[string][]byte{"short": []byte("expires soon")}, 50*time.Millisecond)
	store.Set(map[string][]byte{"forever": []byte("never expires")}, -1)

	found, _ := store.Get([]string{"short", "forever"})
	assert.Len(t, found, 2)

	time.Sleep(100 * time.Millisecond)

	// Expired entries are reported missing even before cleanup runs
	found, missing := store.Get([]string{"short", "forever"})
	assert.Len(t, found, 1)
	assert.Equal(t, []string{"short"}, missing)

	store.DeleteExpired()
	assert.Equal(t, 1, store.ItemCount())
}
