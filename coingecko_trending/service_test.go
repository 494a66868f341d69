package coingecko_trending

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/status-im/market-dashboard/cache"
	cg "github.com/status-im/market-dashboard/coingecko_common"
	mock_coingecko_trending "github.com/status-im/market-dashboard/coingecko_trending/mocks"
	"github.com/status-im/market-dashboard/config"
)

func TestService_FetchTrending_CachesWithinTTL(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, TRENDING_API_PATH, r.URL.Path)
		atomic.AddInt32(&calls, 1)
		_, _ = w.Write([]byte(sampleTrending))
	}))
	defer server.Close()

	cfg := config.Default()
	cfg.Coingecko.OverridePublicURL = server.URL
	cfg.CoingeckoTrending.TTL = 80 * time.Millisecond
	service := NewService(cache.NewService(cache.DefaultCacheConfig()), cfg)

	first, err := service.FetchTrending(context.Background())
	require.NoError(t, err)
	second, err := service.FetchTrending(context.Background())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))

	time.Sleep(120 * time.Millisecond)
	_, err = service.FetchTrending(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestService_FetchTrending_ErrorThenRecovery(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mock_coingecko_trending.NewMockAPIClient(ctrl)
	service := NewServiceWithClient(cache.NewService(cache.DefaultCacheConfig()), config.Default(), client)

	gomock.InOrder(
		client.EXPECT().FetchTrending(gomock.Any()).Return(nil, &cg.ProviderError{Operation: cg.OpTrending, StatusCode: 502}),
		client.EXPECT().FetchTrending(gomock.Any()).Return([]byte(sampleTrending), nil),
	)

	_, err := service.FetchTrending(context.Background())
	assert.True(t, cg.IsProviderError(err))

	coins, err := service.FetchTrending(context.Background())
	require.NoError(t, err)
	assert.Len(t, coins, 4)

	assert.Equal(t, 1, service.Invalidate())
}

func TestNewService_SharesMetricsWriterWithClient(t *testing.T) {
	service := NewService(cache.NewService(cache.DefaultCacheConfig()), config.Default())

	client, ok := service.apiClient.(*CoinGeckoClient)
	require.True(t, ok)
	assert.Same(t, service.metricsWriter, client.metricsWriter)
}
