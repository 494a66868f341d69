package cache

import "time"

// LoaderFunc defines a function for loading data by missing keys.
// The function receives a list of keys that are missing from the cache,
// and should return a key->data map for those keys.
type LoaderFunc func(missingKeys []string) (map[string][]byte, error)

// Cache is the keyed, time-boxed response cache owned by the API client.
// Values are raw response bodies, so repeated hits return identical bytes.
//
//go:generate mockgen -destination=mocks/cache.go . Cache
type Cache interface {
	// GetOrLoad retrieves data by keys from cache or loads them using LoaderFunc
	//
	// Parameters:
	// - keys: list of keys to retrieve data for
	// - loader: function to load missing data
	// - loadOnlyMissingKeys: if true, loader is called only with missing keys;
	//   if false, when any data is missing, loader is called with all keys
	// - ttl: time to live for cached data; if 0, uses cache's default expiration
	//
	// A loader error leaves existing entries untouched.
	GetOrLoad(keys []string, loader LoaderFunc, loadOnlyMissingKeys bool, ttl time.Duration) (map[string][]byte, error)

	// Get retrieves data by keys from cache, returning found data and missing keys
	Get(keys []string) (map[string][]byte, []string, error)

	// Set stores data in cache with the specified TTL; if 0, uses cache's default expiration
	Set(data map[string][]byte, ttl time.Duration) error

	// Invalidate removes every entry whose key starts with prefix and
	// returns the number of removed entries. An empty prefix clears the cache.
	Invalidate(prefix string) int
}
