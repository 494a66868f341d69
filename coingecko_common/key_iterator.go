package coingecko_common

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/status-im/market-dashboard/config"
)

// KeyExecutor performs one attempt with apiKey. ok=false with a nil error
// means "try the next key".
type KeyExecutor[T any] func(apiKey APIKey) (result T, ok bool, err error)

// TryWithKeys runs executor for each key in order until one succeeds.
// onFailed is invoked for every failed key. The last error is returned when
// all keys fail.
func TryWithKeys[T any](keys []APIKey, logPrefix string, executor KeyExecutor[T], onFailed func(APIKey, error)) (T, error) {
	var zero T
	var lastErr error

	for _, apiKey := range keys {
		result, ok, err := executor(apiKey)
		if err == nil && ok {
			return result, nil
		}
		if err == nil {
			err = fmt.Errorf("attempt with %s key returned no result", apiKey.Type)
		}
		lastErr = err

		log.Debug().Err(err).Str("key_type", apiKey.Type.String()).Msgf("%s: attempt failed", logPrefix)
		if onFailed != nil {
			onFailed(apiKey, err)
		}
	}

	if lastErr == nil {
		return zero, fmt.Errorf("%s: no API keys available", logPrefix)
	}
	return zero, lastErr
}

// CreateFailCallback puts failed keys into backoff. Anonymous access is never marked.
func CreateFailCallback(keyManager IAPIKeyManager) func(APIKey, error) {
	return func(apiKey APIKey, err error) {
		if apiKey.Type == NoKey || keyManager == nil {
			return
		}
		keyManager.MarkKeyAsFailed(apiKey.Key)
	}
}

// RequestFactory builds a request for a given base URL and key
type RequestFactory func(ctx context.Context, baseURL string, apiKey APIKey) (*CoingeckoRequestBuilder, error)

// FetchWithKeys builds and executes a request with every available key until
// one returns a 2xx body. It is shared by all endpoint clients.
func FetchWithKeys(ctx context.Context, cfg *config.CoingeckoConfig, keyManager IAPIKeyManager, httpClient *HTTPClientWithRetries, factory RequestFactory) ([]byte, error) {
	operation := httpClient.Opts.Operation

	executor := func(apiKey APIKey) ([]byte, bool, error) {
		if err := ctx.Err(); err != nil {
			return nil, false, &ProviderError{Operation: operation, Err: err}
		}

		builder, err := factory(ctx, GetApiBaseUrl(cfg, apiKey.Type), apiKey)
		if err != nil {
			return nil, false, err
		}
		request, err := builder.WithApiKey(apiKey.Key, apiKey.Type).Build(ctx)
		if err != nil {
			return nil, false, &ProviderError{Operation: operation, Err: err}
		}

		body, duration, err := httpClient.ExecuteRequest(request)
		if err != nil {
			return nil, false, err
		}

		log.Debug().Str("operation", operation).Str("key_type", apiKey.Type.String()).
			Dur("duration", duration).Msg("CoinGecko: request successful")
		return body, true, nil
	}

	return TryWithKeys(keyManager.GetAvailableKeys(), "CoinGecko", executor, CreateFailCallback(keyManager))
}
