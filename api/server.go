package api

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/status-im/market-dashboard/cache"
	"github.com/status-im/market-dashboard/dashboard"
	"github.com/status-im/market-dashboard/interfaces"
)

type Server struct {
	port   string
	store  *dashboard.Store
	client interfaces.MarketDataClient
	server *http.Server

	// optional, reported on /health
	cacheStats func() cache.ServiceStats

	// live websocket connections, closed on Stop
	connsMu sync.Mutex
	conns   map[*wsConn]struct{}
}

func New(port string, store *dashboard.Store, client interfaces.MarketDataClient) *Server {
	return &Server{
		port:   port,
		store:  store,
		client: client,
		conns:  make(map[*wsConn]struct{}),
	}
}

// WithCacheStats reports the response cache size on /health
func (s *Server) WithCacheStats(stats func() cache.ServiceStats) *Server {
	s.cacheStats = stats
	return s
}

// Router builds the HTTP routes
func (s *Server) Router() *mux.Router {
	router := mux.NewRouter()

	v1 := router.PathPrefix("/api/v1").Subrouter()
	v1.HandleFunc("/dashboard", s.handleDashboard).Methods(http.MethodGet)
	v1.HandleFunc("/global", s.handleGlobal).Methods(http.MethodGet)
	v1.HandleFunc("/trending", s.handleTrending).Methods(http.MethodGet)
	v1.HandleFunc("/markets", s.handleMarkets).Methods(http.MethodGet)
	v1.HandleFunc("/markets.csv", s.handleMarketsCSV).Methods(http.MethodGet)
	v1.HandleFunc("/chart", s.handleChart).Methods(http.MethodGet)
	v1.HandleFunc("/search", s.handleSearch).Methods(http.MethodGet)
	v1.HandleFunc("/symbols", s.handleSymbols).Methods(http.MethodGet)
	v1.HandleFunc("/selections", s.handleGetSelections).Methods(http.MethodGet)
	v1.HandleFunc("/selections", s.handleUpdateSelections).Methods(http.MethodPost)
	v1.HandleFunc("/refresh", s.handleRefresh).Methods(http.MethodPost)
	v1.HandleFunc("/ws", s.handleWebSocket)

	router.HandleFunc("/health", s.handleHealth)
	router.Handle("/metrics", promhttp.Handler())

	return router
}

func (s *Server) Start(ctx context.Context) error {
	s.server = &http.Server{
		Addr:    ":" + s.port,
		Handler: s.Router(),
	}

	log.Info().Str("port", s.port).Msg("Server starting")
	log.Info().Msg("Prometheus metrics available at /metrics endpoint")

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("Server error")
		}
	}()

	return nil
}
