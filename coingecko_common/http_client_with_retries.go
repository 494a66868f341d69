package coingecko_common

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/status-im/market-dashboard/config"
)

// IHttpStatusHandler receives the outcome of every HTTP attempt
type IHttpStatusHandler interface {
	// OnRequest handles a request with its status result
	OnRequest(status string)
	// OnRetry handles retry events
	OnRetry()
}

// Request outcome labels passed to IHttpStatusHandler
const (
	StatusSuccess     = "success"
	StatusError       = "error"
	StatusRateLimited = "rate_limited"
	StatusTimeout     = "timeout"
)

// RetryOptions configures retry behavior for HTTP requests
type RetryOptions struct {
	// Operation names the provider call in logs and errors
	Operation         string
	MaxRetries        int
	BaseBackoff       time.Duration
	ConnectionTimeout time.Duration
	RequestTimeout    time.Duration
}

// DefaultRetryOptions performs a single attempt
func DefaultRetryOptions() RetryOptions {
	return RetryOptions{
		Operation:         "coingecko",
		MaxRetries:        1,
		BaseBackoff:       time.Second,
		ConnectionTimeout: 10 * time.Second,
		RequestTimeout:    30 * time.Second,
	}
}

// RetryOptionsFromConfig copies timeouts and retry count from the shared CoinGecko settings
func RetryOptionsFromConfig(cfg *config.CoingeckoConfig, operation string) RetryOptions {
	opts := DefaultRetryOptions()
	opts.Operation = operation
	if cfg == nil {
		return opts
	}
	if cfg.MaxRetries > 0 {
		opts.MaxRetries = cfg.MaxRetries
	}
	if cfg.ConnectionTimeout > 0 {
		opts.ConnectionTimeout = cfg.ConnectionTimeout
	}
	if cfg.RequestTimeout > 0 {
		opts.RequestTimeout = cfg.RequestTimeout
	}
	return opts
}

// HTTPClientWithRetries wraps an http.Client with pacing, retries and status reporting
type HTTPClientWithRetries struct {
	Client         *http.Client
	Opts           RetryOptions
	StatusHandler  IHttpStatusHandler
	LimiterManager IRateLimiterManager
}

// NewHTTPClientWithRetries creates a new HTTP Client with retry capabilities
func NewHTTPClientWithRetries(opts RetryOptions, handler IHttpStatusHandler, limiterManager IRateLimiterManager) *HTTPClientWithRetries {
	if opts.MaxRetries < 1 {
		opts.MaxRetries = 1
	}

	client := &http.Client{
		Timeout: opts.RequestTimeout,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout: opts.ConnectionTimeout,
			}).DialContext,
		},
	}

	return &HTTPClientWithRetries{
		Client:         client,
		Opts:           opts,
		StatusHandler:  handler,
		LimiterManager: limiterManager,
	}
}

// ExecuteRequest runs req and returns the body of a 2xx response. Every
// failure is a *ProviderError. Retries happen only for 429/5xx and network
// errors, and only when MaxRetries > 1.
func (c *HTTPClientWithRetries) ExecuteRequest(req *http.Request) ([]byte, time.Duration, error) {
	var lastErr *ProviderError
	logger := log.With().Str("operation", c.Opts.Operation).Logger()

	for attempt := 0; attempt < c.Opts.MaxRetries; attempt++ {
		if attempt > 0 {
			c.onRetry()
			backoff := calculateBackoffWithJitter(c.Opts.BaseBackoff, attempt)
			logger.Warn().Err(lastErr).Int("attempt", attempt).Dur("backoff", backoff).Msg("HTTP: retrying request")

			select {
			case <-req.Context().Done():
				return nil, 0, c.providerError(0, req.Context().Err())
			case <-time.After(backoff):
			}
		}

		if c.LimiterManager != nil {
			if limiter := c.LimiterManager.GetLimiterForURL(req.URL); limiter != nil {
				if err := limiter.Wait(req.Context()); err != nil {
					c.onRequest(StatusError)
					return nil, 0, c.providerError(0, fmt.Errorf("rate limiter wait failed: %w", err))
				}
			}
		}

		start := time.Now()
		resp, err := c.Client.Do(req)
		duration := time.Since(start)

		if err != nil {
			lastErr = c.providerError(0, err)
			if isTimeout(err) {
				c.onRequest(StatusTimeout)
			} else {
				c.onRequest(StatusError)
			}
			if req.Context().Err() != nil {
				return nil, duration, lastErr
			}
			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			lastErr = c.providerError(resp.StatusCode, fmt.Errorf("%s", truncate(body, 256)))
			if resp.StatusCode == http.StatusTooManyRequests {
				c.onRequest(StatusRateLimited)
			} else {
				c.onRequest(StatusError)
			}
			if isRetryableStatus(resp.StatusCode) {
				continue
			}
			return nil, duration, lastErr
		}

		if readErr != nil {
			lastErr = c.providerError(resp.StatusCode, fmt.Errorf("error reading response: %w", readErr))
			c.onRequest(StatusError)
			continue
		}

		c.onRequest(StatusSuccess)
		logger.Debug().Dur("duration", duration).Int("bytes", len(body)).Msg("HTTP: request succeeded")
		return body, duration, nil
	}

	return nil, 0, lastErr
}

func (c *HTTPClientWithRetries) providerError(status int, err error) *ProviderError {
	return &ProviderError{Operation: c.Opts.Operation, StatusCode: status, Err: err}
}

func (c *HTTPClientWithRetries) onRequest(status string) {
	if c.StatusHandler != nil {
		c.StatusHandler.OnRequest(status)
	}
}

func (c *HTTPClientWithRetries) onRetry() {
	if c.StatusHandler != nil {
		c.StatusHandler.OnRetry()
	}
}

// calculateBackoffWithJitter doubles baseBackoff per attempt and adds up to 50% jitter
func calculateBackoffWithJitter(baseBackoff time.Duration, attempt int) time.Duration {
	if attempt <= 0 || baseBackoff <= 0 {
		return baseBackoff
	}

	multiplier := uint(1) << uint(attempt-1)
	backoff := time.Duration(float64(baseBackoff) * float64(multiplier))
	jitter := time.Duration(rand.Int63n(int64(backoff/2) + 1))
	return backoff + jitter
}

func isRetryableStatus(statusCode int) bool {
	return statusCode == http.StatusTooManyRequests ||
		statusCode == http.StatusInternalServerError ||
		statusCode == http.StatusBadGateway ||
		statusCode == http.StatusServiceUnavailable ||
		statusCode == http.StatusGatewayTimeout
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func truncate(body []byte, max int) string {
	if len(body) <= max {
		return string(body)
	}
	return string(body[:max]) + "..."
}
