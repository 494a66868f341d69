package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

// Service implements Cache on top of go-cache
type Service struct {
	store  *GoCache
	config Config
}

// NewService creates a cache service. A non-positive cleanup interval falls
// back to ten minutes.
func NewService(config Config) *Service {
	cleanup := config.GoCache.CleanupInterval
	if cleanup <= 0 {
		cleanup = 10 * time.Minute
	}

	return &Service{
		store:  NewGoCache(config.GoCache.DefaultExpiration, cleanup),
		config: config,
	}
}

// Start implements core.Interface
func (s *Service) Start(ctx context.Context) error {
	if s.store == nil {
		return fmt.Errorf("cache service not properly initialized")
	}
	if !s.config.GoCache.Enabled {
		log.Warn().Msg("Cache: response caching disabled, every call goes to the provider")
	}
	return nil
}

// Stop implements core.Interface
func (s *Service) Stop() {
	if s.store != nil {
		s.store.Clear()
	}
}

// GetOrLoad implements Cache. With loadOnlyMissingKeys unset the loader gets
// every requested key as soon as one is missing, and the result is trimmed to
// the requested keys.
func (s *Service) GetOrLoad(keys []string, loader LoaderFunc, loadOnlyMissingKeys bool, ttl time.Duration) (map[string][]byte, error) {
	if len(keys) == 0 {
		return make(map[string][]byte), nil
	}

	if !s.config.GoCache.Enabled {
		loaded, err := loader(keys)
		if err != nil {
			return nil, fmt.Errorf("failed to load data: %w", err)
		}
		return loaded, nil
	}

	found, missing := s.store.Get(keys)
	if len(missing) == 0 {
		return found, nil
	}

	toLoad := missing
	if !loadOnlyMissingKeys {
		toLoad = keys
	}
	loaded, err := loader(toLoad)
	if err != nil {
		return nil, fmt.Errorf("failed to load data: %w", err)
	}
	s.store.Set(loaded, ttl)

	if loadOnlyMissingKeys {
		for key, value := range loaded {
			found[key] = value
		}
		return found, nil
	}

	result := make(map[string][]byte, len(keys))
	for _, key := range keys {
		if value, ok := loaded[key]; ok {
			result[key] = value
		} else if value, ok := found[key]; ok {
			result[key] = value
		}
	}
	return result, nil
}

// Get implements Cache
func (s *Service) Get(keys []string) (map[string][]byte, []string, error) {
	found, missing := s.store.Get(keys)
	return found, missing, nil
}

// Set implements Cache. It is a no-op while caching is disabled.
func (s *Service) Set(data map[string][]byte, ttl time.Duration) error {
	if s.config.GoCache.Enabled {
		s.store.Set(data, ttl)
	}
	return nil
}

// Invalidate implements Cache
func (s *Service) Invalidate(prefix string) int {
	if prefix == "" {
		count := s.store.ItemCount()
		s.store.Clear()
		log.Debug().Int("removed", count).Msg("Cache: cleared")
		return count
	}
	removed := s.store.DeleteByPrefix(prefix)
	log.Debug().Str("prefix", prefix).Int("removed", removed).Msg("Cache: invalidated entries")
	return removed
}

// Stats reports the number of stored entries
func (s *Service) Stats() ServiceStats {
	return ServiceStats{
		GoCacheItems: s.store.ItemCount(),
		Enabled:      s.config.GoCache.Enabled,
	}
}

// ServiceStats is exposed on /health
type ServiceStats struct {
	GoCacheItems int  `json:"items"`
	Enabled      bool `json:"enabled"`
}
