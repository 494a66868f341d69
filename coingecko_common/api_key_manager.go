package coingecko_common

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/status-im/market-dashboard/config"
)

// KeyType defines the API key type
type KeyType int

const (
	// NoKey means anonymous access to the public API
	NoKey KeyType = iota
	// ProKey means using a Pro API key
	ProKey
	// DemoKey means using a demo API key
	DemoKey
)

func (t KeyType) String() string {
	switch t {
	case ProKey:
		return "pro"
	case DemoKey:
		return "demo"
	case NoKey:
		return "none"
	}
	return "unknown"
}

// APIKey represents an API key with its type
type APIKey struct {
	Key  string
	Type KeyType
}

// IAPIKeyManager hands out keys in the order they should be tried
//
//go:generate mockgen -destination=mocks/api_key_manager.go . IAPIKeyManager
type IAPIKeyManager interface {
	// GetAvailableKeys returns pro keys, then demo keys, then the anonymous
	// entry. Keys in backoff are skipped, except a lone pro key.
	GetAvailableKeys() []APIKey

	// MarkKeyAsFailed puts a key in backoff
	MarkKeyAsFailed(key string)
}

// APIKeyManager implements IAPIKeyManager from a loaded tokens file
type APIKeyManager struct {
	apiTokens   *config.APITokens
	lastFailed  map[string]time.Time
	backoffTime time.Duration
	mu          sync.RWMutex
}

// NewAPIKeyManager creates a new API key manager
func NewAPIKeyManager(apiTokens *config.APITokens) *APIKeyManager {
	return &APIKeyManager{
		apiTokens:   apiTokens,
		lastFailed:  make(map[string]time.Time),
		backoffTime: 5 * time.Minute,
	}
}

func (m *APIKeyManager) isKeyInBackoff(key string) bool {
	if key == "" {
		return false
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	if lastFailTime, exists := m.lastFailed[key]; exists {
		return time.Since(lastFailTime) < m.backoffTime
	}
	return false
}

// GetAvailableKeys implements IAPIKeyManager
func (m *APIKeyManager) GetAvailableKeys() []APIKey {
	var proKeys, demoKeys []string
	if m.apiTokens != nil {
		proKeys = m.apiTokens.Tokens
		demoKeys = m.apiTokens.DemoTokens
	}

	availableKeys := make([]APIKey, 0, len(proKeys)+len(demoKeys)+1)

	// A single pro key is always worth trying, backoff or not
	if len(proKeys) == 1 {
		availableKeys = append(availableKeys, APIKey{Key: proKeys[0], Type: ProKey})
	} else {
		for _, key := range proKeys {
			if !m.isKeyInBackoff(key) {
				availableKeys = append(availableKeys, APIKey{Key: key, Type: ProKey})
			}
		}
	}

	for _, key := range demoKeys {
		if !m.isKeyInBackoff(key) {
			availableKeys = append(availableKeys, APIKey{Key: key, Type: DemoKey})
		}
	}

	return append(availableKeys, APIKey{Key: "", Type: NoKey})
}

// MarkKeyAsFailed implements IAPIKeyManager
func (m *APIKeyManager) MarkKeyAsFailed(key string) {
	if key == "" {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.lastFailed[key] = time.Now()
	log.Warn().Dur("backoff", m.backoffTime).Msg("APIKeyManager: marked key as failed")
}
