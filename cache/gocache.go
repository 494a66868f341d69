package cache

import (
	"strings"
	"time"

	"github.com/patrickmn/go-cache"
)

// GoCache stores raw response bodies in go-cache
type GoCache struct {
	cache *cache.Cache
}

// NewGoCache creates a store with the given default expiration and janitor
// interval
func NewGoCache(defaultExpiration, cleanupInterval time.Duration) *GoCache {
	return &GoCache{
		cache: cache.New(defaultExpiration, cleanupInterval),
	}
}

// Get splits keys into found bodies and missing keys. Expired entries count
// as missing even before the janitor removes them.
func (gc *GoCache) Get(keys []string) (map[string][]byte, []string) {
	found := make(map[string][]byte, len(keys))
	missing := make([]string, 0)

	for _, key := range keys {
		if data, ok := gc.lookup(key); ok {
			found[key] = data
		} else {
			missing = append(missing, key)
		}
	}
	return found, missing
}

func (gc *GoCache) lookup(key string) ([]byte, bool) {
	value, ok := gc.cache.Get(key)
	if !ok {
		return nil, false
	}
	data, ok := value.([]byte)
	return data, ok
}

// Set stores bodies with timeout. 0 uses the default expiration and
// cache.NoExpiration (-1) keeps the entry until it is invalidated.
func (gc *GoCache) Set(data map[string][]byte, timeout time.Duration) {
	for key, value := range data {
		gc.cache.Set(key, value, timeout)
	}
}

// DeleteByPrefix removes all items whose key starts with prefix
func (gc *GoCache) DeleteByPrefix(prefix string) int {
	removed := 0
	for key := range gc.cache.Items() {
		if strings.HasPrefix(key, prefix) {
			gc.cache.Delete(key)
			removed++
		}
	}
	return removed
}

// Clear removes all items
func (gc *GoCache) Clear() {
	gc.cache.Flush()
}

// ItemCount includes expired items the janitor has not removed yet
func (gc *GoCache) ItemCount() int {
	return gc.cache.ItemCount()
}

// DeleteExpired runs the janitor's sweep immediately
func (gc *GoCache) DeleteExpired() {
	gc.cache.DeleteExpired()
}
