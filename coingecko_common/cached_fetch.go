package coingecko_common

import (
	"time"

	"github.com/status-im/market-dashboard/cache"
)

// LoadCached returns the body stored under key or calls fetch on a miss.
// fetch must only return bodies that decode, so nothing malformed is cached.
// hit reports whether the body came from the cache.
func LoadCached(c cache.Cache, key string, ttl time.Duration, fetch func() ([]byte, error)) (body []byte, hit bool, err error) {
	hit = true
	var fetchErr error

	data, err := c.GetOrLoad([]string{key}, func(missingKeys []string) (map[string][]byte, error) {
		hit = false
		loaded, err := fetch()
		if err != nil {
			fetchErr = err
			return nil, err
		}
		return map[string][]byte{key: loaded}, nil
	}, false, ttl)

	if fetchErr != nil {
		return nil, false, fetchErr
	}
	if err != nil {
		return nil, false, err
	}
	return data[key], hit, nil
}
