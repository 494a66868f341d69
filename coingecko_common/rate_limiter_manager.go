package coingecko_common

import (
	"math"
	"net/url"
	"sync"

	"golang.org/x/time/rate"

	"github.com/status-im/market-dashboard/config"
)

// IRateLimiterManager returns the limiter that paces requests to a URL
//
//go:generate mockgen -destination=mocks/rate_limiter_manager.go . IRateLimiterManager
type IRateLimiterManager interface {
	GetLimiterForURL(u *url.URL) *rate.Limiter
	SetConfig(cfg config.APIKeyConfig)
}

// Defaults in requests per minute, used when config leaves a type at zero
const (
	defaultProRPM   = 500
	defaultDemoRPM  = 30
	defaultNoKeyRPM = 30
)

type limiterKey struct {
	keyType KeyType
	key     string
}

// RateLimiterManager keeps one limiter per API key, plus one shared limiter
// for anonymous access. Hosts listed in publicHosts get the anonymous limiter.
type RateLimiterManager struct {
	mu          sync.RWMutex
	limiters    map[limiterKey]*rate.Limiter
	config      config.APIKeyConfig
	publicHosts map[string]struct{}
}

var (
	managerOnce   sync.Once
	globalManager *RateLimiterManager
)

// NewRateLimiterManager creates a manager for cfg. Extra hosts (for example
// an overridden public URL) are paced like the CoinGecko hosts.
func NewRateLimiterManager(cfg config.APIKeyConfig, extraHosts ...string) *RateLimiterManager {
	hosts := map[string]struct{}{
		"api.coingecko.com":     {},
		"pro-api.coingecko.com": {},
	}
	for _, h := range extraHosts {
		if h != "" {
			hosts[h] = struct{}{}
		}
	}
	return &RateLimiterManager{
		limiters:    make(map[limiterKey]*rate.Limiter),
		config:      cfg,
		publicHosts: hosts,
	}
}

// GetRateLimiterManagerInstance returns the process wide manager. Every
// endpoint client shares it so one key is paced across all operations.
func GetRateLimiterManagerInstance() *RateLimiterManager {
	managerOnce.Do(func() {
		globalManager = NewRateLimiterManager(config.APIKeyConfig{})
	})
	return globalManager
}

// SetConfig replaces the settings and rebuilds limiters whose type changed
func (m *RateLimiterManager) SetConfig(newCfg config.APIKeyConfig) {
	m.mu.Lock()
	defer m.mu.Unlock()

	oldCfg := m.config
	m.config = newCfg

	for lk := range m.limiters {
		if settingsFor(oldCfg, lk.keyType) != settingsFor(newCfg, lk.keyType) {
			m.limiters[lk] = m.newLimiterLocked(lk.keyType)
		}
	}
}

// GetLimiterForURL inspects the key query parameters and host of u
func (m *RateLimiterManager) GetLimiterForURL(u *url.URL) *rate.Limiter {
	if m == nil || u == nil {
		return nil
	}

	query := u.Query()
	if v := query.Get("x_cg_pro_api_key"); v != "" {
		return m.getLimiter(limiterKey{ProKey, v})
	}
	if v := query.Get("x_cg_demo_api_key"); v != "" {
		return m.getLimiter(limiterKey{DemoKey, v})
	}

	m.mu.RLock()
	_, known := m.publicHosts[u.Hostname()]
	m.mu.RUnlock()
	if known {
		return m.getLimiter(limiterKey{NoKey, ""})
	}
	return nil
}

func (m *RateLimiterManager) getLimiter(lk limiterKey) *rate.Limiter {
	m.mu.RLock()
	lim, ok := m.limiters[lk]
	m.mu.RUnlock()
	if ok {
		return lim
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if lim, ok := m.limiters[lk]; ok {
		return lim
	}
	lim = m.newLimiterLocked(lk.keyType)
	m.limiters[lk] = lim
	return lim
}

func (m *RateLimiterManager) newLimiterLocked(keyType KeyType) *rate.Limiter {
	settings := settingsFor(m.config, keyType)

	rpm := settings.RateLimitPerMinute
	if rpm <= 0 {
		rpm = defaultRPM(keyType)
	}
	limit := rate.Limit(float64(rpm) / 60.0)

	burst := settings.Burst
	if burst <= 0 {
		burst = defaultBurstForLimit(limit)
	}
	return rate.NewLimiter(limit, burst)
}

func settingsFor(cfg config.APIKeyConfig, keyType KeyType) config.RateLimit {
	switch keyType {
	case ProKey:
		return cfg.Pro
	case DemoKey:
		return cfg.Demo
	}
	return cfg.NoKey
}

func defaultRPM(keyType KeyType) int {
	switch keyType {
	case ProKey:
		return defaultProRPM
	case DemoKey:
		return defaultDemoRPM
	}
	return defaultNoKeyRPM
}

func defaultBurstForLimit(limit rate.Limit) int {
	if limit <= 1.0 {
		return 1
	}
	return int(math.Ceil(float64(limit)))
}
