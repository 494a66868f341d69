package coingecko_common

import (
	"sort"
	"strings"
)

const cacheKeySeparator = "|"

// CacheKey builds the response cache key for an operation. Currency may be
// empty for currency independent calls. Argument order matters, so callers
// sort set-like arguments with CanonicalSet first.
func CacheKey(operation string, currency Currency, args ...string) string {
	parts := make([]string, 0, len(args)+2)
	parts = append(parts, operation, string(currency))
	parts = append(parts, args...)
	return strings.Join(parts, cacheKeySeparator)
}

// CurrencyPrefix matches every cache key of operation for currency
func CurrencyPrefix(operation string, currency Currency) string {
	return operation + cacheKeySeparator + string(currency) + cacheKeySeparator
}

// OperationPrefix matches every cache key of operation
func OperationPrefix(operation string) string {
	return operation + cacheKeySeparator
}

// CanonicalSet lower-cases, de-duplicates and sorts values and joins them with commas
func CanonicalSet[T ~string](values []T) string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		s := strings.ToLower(strings.TrimSpace(string(v)))
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	sort.Strings(out)
	return strings.Join(out, ",")
}
