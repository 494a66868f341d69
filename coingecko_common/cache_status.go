package coingecko_common

// CacheStatus tells how much of a multi-key result came from the cache
type CacheStatus string

const (
	CacheStatusFull    CacheStatus = "full"
	CacheStatusPartial CacheStatus = "partial"
	CacheStatusMiss    CacheStatus = "miss"
)

func (cs CacheStatus) String() string {
	return string(cs)
}

// CacheStatusFor derives the status from the number of requested and fetched keys
func CacheStatusFor(requested, fetched int) CacheStatus {
	switch {
	case fetched == 0:
		return CacheStatusFull
	case fetched < requested:
		return CacheStatusPartial
	}
	return CacheStatusMiss
}
