package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	cg "github.com/status-im/market-dashboard/coingecko_common"
	"github.com/status-im/market-dashboard/coingecko_markets"
	"github.com/status-im/market-dashboard/coingecko_trending"
	"github.com/status-im/market-dashboard/config"
	"github.com/status-im/market-dashboard/events"
	"github.com/status-im/market-dashboard/interfaces"
	"github.com/status-im/market-dashboard/markets_table"
	"github.com/status-im/market-dashboard/metrics"
)

// Store owns the dashboard state. Provider panels are refreshed explicitly;
// selection changes recompute only what depends on them. Observers are told
// which panels changed through Subscribe.
type Store struct {
	client        interfaces.MarketDataClient
	config        *config.Config
	subscriptions *events.SubscriptionManager

	// fetchMu serializes provider refreshes so results of an older currency
	// never land after a newer one
	fetchMu sync.Mutex

	mu   sync.RWMutex
	snap Snapshot
}

// NewStore creates a store with the configured default selections and no data
func NewStore(client interfaces.MarketDataClient, cfg *config.Config) *Store {
	sel := DefaultSelections(cfg.Dashboard)
	s := &Store{
		client:        client,
		config:        cfg,
		subscriptions: events.NewSubscriptionManager(),
		snap: Snapshot{
			Selections: sel,
			Panels:     make(map[string]PanelStatus, len(FetchedPanels)),
		},
	}
	s.recomputeViewLocked()
	return s
}

// Start implements core.Interface. The first refresh runs here; panel
// failures are recorded in the snapshot and do not stop the service.
func (s *Store) Start(ctx context.Context) error {
	if s.client == nil {
		return fmt.Errorf("market data client not provided")
	}
	if err := s.Refresh(ctx); err != nil {
		log.Warn().Err(err).Msg("Dashboard: initial refresh incomplete")
	}
	return nil
}

// Stop implements core.Interface
func (s *Store) Stop() {}

// Subscribe returns a subscription notified with the changed panels
func (s *Store) Subscribe() events.ISubscription {
	return s.subscriptions.Subscribe()
}

// Selections returns a copy of the current selections
func (s *Store) Selections() Selections {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.Selections.clone()
}

// Snapshot returns a copy of the current state
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap.clone()
}

// Currencies lists the selectable currencies
func (s *Store) Currencies() []string {
	return s.config.Dashboard.Currencies
}

// Refresh refetches every provider panel concurrently. Each panel is
// independent: a failing panel keeps its previous data and records the
// error, and the joined panel errors are returned.
func (s *Store) Refresh(ctx context.Context) error {
	s.fetchMu.Lock()
	defer s.fetchMu.Unlock()

	return s.refreshLocked(ctx)
}

// ForceRefresh drops every cached provider response before refetching, so
// each panel goes to the network. Scheduled refreshes use Refresh.
func (s *Store) ForceRefresh(ctx context.Context) error {
	s.fetchMu.Lock()
	defer s.fetchMu.Unlock()

	removed := s.client.Invalidate("")
	log.Debug().Int("invalidated", removed).Msg("Dashboard: forced refresh")
	return s.refreshLocked(ctx)
}

func (s *Store) refreshLocked(ctx context.Context) error {
	currency := s.Selections().Currency
	err := s.fetchPanels(ctx, currency, FetchedPanels...)
	s.emit(append([]string{PanelView}, FetchedPanels...)...)
	return err
}

// SetCurrency switches the quote currency. Cached responses of the previous
// currency are invalidated and the currency dependent panels are refetched.
func (s *Store) SetCurrency(ctx context.Context, currency string) error {
	if err := (SelectionsUpdate{Currency: &currency}).Validate(s.config.Dashboard.Currencies); err != nil {
		return err
	}

	s.fetchMu.Lock()
	defer s.fetchMu.Unlock()

	next := cg.NewCurrency(currency)
	s.mu.Lock()
	prev := s.snap.Selections.Currency
	s.snap.Selections.Currency = next
	s.mu.Unlock()

	if prev == next {
		return nil
	}

	removed := s.client.InvalidateCurrency(prev)
	log.Info().Str("from", prev.String()).Str("to", next.String()).Int("invalidated", removed).
		Msg("Dashboard: currency changed")

	err := s.fetchPanels(ctx, next, PanelMarkets, PanelSearch, PanelTrending)
	s.emit(TopicSelections, PanelMarkets, PanelSearch, PanelTrending, PanelView)
	return err
}

// SetWindow changes the active change window and recomputes the view
func (s *Store) SetWindow(window string) error {
	w, err := cg.ParseChangeWindow(window)
	if err != nil {
		return err
	}
	s.updateView(func(sel *Selections) { sel.Window = w })
	return nil
}

// SetSort toggles sorting of the chart by the active change
func (s *Store) SetSort(sort bool) {
	s.updateView(func(sel *Selections) { sel.Sort = sort })
}

// SetSymbols sets the coin filter; an empty list shows every coin
func (s *Store) SetSymbols(symbols []string) {
	normalized := normalizeSymbols(symbols)
	s.updateView(func(sel *Selections) { sel.Symbols = normalized })
}

// SetTopN sets how many coins the table and chart show, clamped to [1, 25]
func (s *Store) SetTopN(n int) {
	n = markets_table.ClampTopN(n, markets_table.MaxTopN)
	s.updateView(func(sel *Selections) { sel.TopN = n })
}

// SetSearch sets the search query and recomputes the search results
func (s *Store) SetSearch(query string) {
	s.mu.Lock()
	s.snap.Selections.Search = query
	s.recomputeSearchLocked()
	s.mu.Unlock()

	s.emit(TopicSelections, PanelSearch)
}

// Update applies a partial selection update. The whole update is validated
// before any field changes.
func (s *Store) Update(ctx context.Context, update SelectionsUpdate) error {
	if err := update.Validate(s.config.Dashboard.Currencies); err != nil {
		return err
	}

	if update.Window != nil {
		if err := s.SetWindow(*update.Window); err != nil {
			return err
		}
	}
	if update.Sort != nil {
		s.SetSort(*update.Sort)
	}
	if update.Symbols != nil {
		s.SetSymbols(*update.Symbols)
	}
	if update.TopN != nil {
		s.SetTopN(*update.TopN)
	}
	if update.Search != nil {
		s.SetSearch(*update.Search)
	}
	if update.Currency != nil {
		return s.SetCurrency(ctx, *update.Currency)
	}
	return nil
}

func (s *Store) updateView(mutate func(sel *Selections)) {
	s.mu.Lock()
	mutate(&s.snap.Selections)
	s.recomputeViewLocked()
	s.mu.Unlock()

	s.emit(TopicSelections, PanelView)
}

func (s *Store) emit(topics ...string) {
	s.subscriptions.Emit(context.Background(), topics...)
}

// fetchPanels refreshes the named panels concurrently for currency
func (s *Store) fetchPanels(ctx context.Context, currency cg.Currency, panels ...string) error {
	errs := make([]error, len(panels))
	g := new(errgroup.Group)

	for i, panel := range panels {
		g.Go(func() error {
			start := time.Now()
			err := s.fetchPanel(ctx, currency, panel)
			metrics.RecordPanelRefresh(panel, start, err)
			if err != nil {
				errs[i] = fmt.Errorf("%s panel: %w", panel, err)
			}
			return nil
		})
	}
	_ = g.Wait()

	return errors.Join(errs...)
}

func (s *Store) fetchPanel(ctx context.Context, currency cg.Currency, panel string) error {
	switch panel {
	case PanelGlobal:
		global, err := s.client.FetchGlobal(ctx)
		s.apply(panel, err, func(snap *Snapshot) { snap.Global = global })
		return err

	case PanelTrending:
		highlights, err := s.fetchTrending(ctx, currency)
		s.apply(panel, err, func(snap *Snapshot) { snap.Trending = highlights })
		return err

	case PanelMarkets:
		records, err := s.fetchListing(ctx, currency, s.config.CoingeckoMarkets.PerPage, cg.AllChangeWindows)
		s.apply(panel, err, func(snap *Snapshot) {
			snap.Markets = records
			snap.Symbols = markets_table.AvailableSymbols(records)
			metrics.RecordPanelRows(PanelMarkets, len(records))
		})
		return err

	case PanelSearch:
		records, err := s.fetchListing(ctx, currency, s.config.CoingeckoMarkets.SearchPerPage, []cg.ChangeWindow{cg.Window24h})
		s.apply(panel, err, func(snap *Snapshot) { snap.SearchPool = records })
		return err
	}
	return fmt.Errorf("unknown panel %q", panel)
}

func (s *Store) fetchTrending(ctx context.Context, currency cg.Currency) ([]TrendingHighlight, error) {
	coins, err := s.client.FetchTrending(ctx)
	if err != nil {
		return nil, err
	}
	top := coingecko_trending.Top(coins, s.config.Dashboard.TrendingLimit)

	prices, err := s.client.FetchSimplePrice(ctx, coingecko_trending.IDs(top), currency)
	if err != nil {
		return nil, err
	}

	highlights := make([]TrendingHighlight, len(top))
	for i, coin := range top {
		highlights[i] = TrendingHighlight{TrendingCoin: coin, Price: prices[coin.ID]}
	}
	return highlights, nil
}

func (s *Store) fetchListing(ctx context.Context, currency cg.Currency, perPage int, windows []cg.ChangeWindow) ([]markets_table.MarketRecord, error) {
	entries, err := s.client.FetchMarkets(ctx, coingecko_markets.MarketsParams{
		Currency: currency,
		PerPage:  perPage,
		Page:     1,
		Windows:  windows,
	})
	if err != nil {
		return nil, err
	}
	return markets_table.Normalize(entries, currency), nil
}

// apply records the outcome of a panel fetch. On success set replaces the
// panel data; on failure the previous data stays and the error is kept.
func (s *Store) apply(panel string, err error, set func(snap *Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := s.snap.Panels[panel]
	if err != nil {
		status.Error = userMessage(err)
		log.Error().Err(err).Str("panel", panel).Msg("Dashboard: panel refresh failed")
	} else {
		status.Error = ""
		status.UpdatedAt = time.Now()
		set(&s.snap)
	}
	s.snap.Panels[panel] = status

	switch panel {
	case PanelMarkets:
		s.recomputeViewLocked()
	case PanelSearch:
		s.recomputeSearchLocked()
	}
}

// recomputeViewLocked derives the table and chart. The view is labelled with
// the currency of the records it shows, which differs from the selection
// only while a currency switch failed to refetch.
func (s *Store) recomputeViewLocked() {
	sel := s.snap.Selections.TableSelection()
	if len(s.snap.Markets) > 0 {
		sel.Currency = s.snap.Markets[0].Currency
	}

	view, err := markets_table.Apply(s.snap.Markets, sel)
	s.snap.View = view
	s.snap.ViewError = ""
	if err != nil {
		s.snap.ViewError = err.Error()
	}
	metrics.RecordPanelRows(PanelView, len(view.Table))
}

func (s *Store) recomputeSearchLocked() {
	s.snap.SearchResults = nil
	s.snap.SearchError = ""
	if s.snap.Selections.Search == "" {
		return
	}

	results, err := markets_table.Search(s.snap.SearchPool, s.snap.Selections.Search)
	if err != nil {
		s.snap.SearchError = err.Error()
		return
	}
	s.snap.SearchResults = results
	metrics.RecordPanelRows(PanelSearch, len(results))
}

// userMessage renders err for display next to a panel
func userMessage(err error) string {
	var providerErr *cg.ProviderError
	var malformedErr *cg.MalformedResponseError
	switch {
	case errors.As(err, &providerErr) && providerErr.RateLimited():
		return "CoinGecko rate limit reached, try again shortly"
	case errors.As(err, &providerErr):
		return fmt.Sprintf("CoinGecko request failed: %v", providerErr)
	case errors.As(err, &malformedErr):
		return fmt.Sprintf("CoinGecko returned unexpected data: %v", malformedErr)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "request cancelled"
	}
	return err.Error()
}
