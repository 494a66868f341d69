package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	cg "github.com/status-im/market-dashboard/coingecko_common"
	"github.com/status-im/market-dashboard/dashboard"
	"github.com/status-im/market-dashboard/markets_table"
)

// tableResponse is the JSON shape of /markets and /chart
type tableResponse struct {
	Currency cg.Currency                  `json:"currency"`
	Window   cg.ChangeWindow              `json:"window"`
	Columns  []string                     `json:"columns,omitempty"`
	Rows     []markets_table.MarketRecord `json:"rows,omitempty"`
	Chart    []markets_table.ChartBar     `json:"chart,omitempty"`
	Error    string                       `json:"error,omitempty"`
	Stale    string                       `json:"stale,omitempty"`
}

// handleDashboard responds with the full dashboard snapshot
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	s.sendJSONResponse(w, r, s.store.Snapshot())
}

// handleGlobal responds with the global market statistics
func (s *Server) handleGlobal(w http.ResponseWriter, r *http.Request) {
	snap := s.store.Snapshot()
	status := snap.Panels[dashboard.PanelGlobal]
	if snap.Global == nil {
		s.sendUnavailable(w, status, "global market data not loaded yet")
		return
	}

	s.sendJSONResponse(w, r, map[string]interface{}{
		"currency":   snap.Selections.Currency,
		"global":     snap.Global,
		"error":      status.Error,
		"updated_at": status.UpdatedAt,
	})
}

// handleTrending responds with the trending highlights priced in the selected currency
func (s *Server) handleTrending(w http.ResponseWriter, r *http.Request) {
	snap := s.store.Snapshot()
	status := snap.Panels[dashboard.PanelTrending]
	if snap.Trending == nil {
		s.sendUnavailable(w, status, "trending coins not loaded yet")
		return
	}

	s.sendJSONResponse(w, r, map[string]interface{}{
		"currency":   snap.Selections.Currency,
		"trending":   snap.Trending,
		"error":      status.Error,
		"updated_at": status.UpdatedAt,
	})
}

// handleMarkets responds with the filtered and limited table. Query
// parameters window, symbols, top_n and sort override the stored selections
// for this request only.
func (s *Server) handleMarkets(w http.ResponseWriter, r *http.Request) {
	snap := s.store.Snapshot()
	view, err := queryView(r, snap)
	if err != nil && !isEmptyResult(err) {
		s.sendError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp := tableResponse{
		Currency: view.Currency,
		Window:   view.Window,
		Columns:  view.Columns,
		Rows:     view.Table,
		Stale:    snap.Panels[dashboard.PanelMarkets].Error,
	}
	if err != nil {
		resp.Error = err.Error()
	}
	s.sendJSONResponse(w, r, resp)
}

// handleChart responds with the bars of the change chart
func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	snap := s.store.Snapshot()
	view, err := queryView(r, snap)
	if err != nil && !isEmptyResult(err) {
		s.sendError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp := tableResponse{
		Currency: view.Currency,
		Window:   view.Window,
		Chart:    view.Chart,
		Stale:    snap.Panels[dashboard.PanelMarkets].Error,
	}
	if err != nil {
		resp.Error = err.Error()
	}
	s.sendJSONResponse(w, r, resp)
}

// handleMarketsCSV downloads the table as crypto_data.csv
func (s *Server) handleMarketsCSV(w http.ResponseWriter, r *http.Request) {
	snap := s.store.Snapshot()
	view, err := queryView(r, snap)
	if err != nil && !isEmptyResult(err) {
		s.sendError(w, http.StatusBadRequest, err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", markets_table.CSVFilename))
	if err := markets_table.WriteCSV(w, view.Table, view.Currency); err != nil {
		log.Error().Err(err).Msg("Error writing CSV export")
	}
}

// handleSearch looks up coins by name or symbol among the top 100
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	snap := s.store.Snapshot()

	results, err := markets_table.Search(snap.SearchPool, query)
	if err != nil {
		s.sendError(w, http.StatusNotFound, err.Error())
		return
	}

	s.sendJSONResponse(w, r, map[string]interface{}{
		"query":   query,
		"results": results,
		"stale":   snap.Panels[dashboard.PanelSearch].Error,
	})
}

// handleSymbols lists the symbols available for the coin filter
func (s *Server) handleSymbols(w http.ResponseWriter, r *http.Request) {
	s.sendJSONResponse(w, r, s.store.Snapshot().Symbols)
}

func (s *Server) handleGetSelections(w http.ResponseWriter, r *http.Request) {
	s.sendJSONResponse(w, r, map[string]interface{}{
		"selections": s.store.Selections(),
		"currencies": s.store.Currencies(),
		"windows":    cg.AllChangeWindows,
	})
}

// handleUpdateSelections applies a partial selections update. Invalid input
// is rejected with 400 before anything changes; refetch failures after a
// currency switch are reported alongside the new selections.
func (s *Server) handleUpdateSelections(w http.ResponseWriter, r *http.Request) {
	var update dashboard.SelectionsUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		s.sendError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}
	if err := update.Validate(s.store.Currencies()); err != nil {
		s.sendError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp := map[string]interface{}{}
	if err := s.store.Update(r.Context(), update); err != nil {
		resp["error"] = err.Error()
	}
	resp["selections"] = s.store.Selections()
	s.sendJSONResponse(w, r, resp)
}

// handleRefresh bypasses the cache, refetches every panel and reports
// per-panel errors
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if err := s.store.ForceRefresh(r.Context()); err != nil {
		log.Warn().Err(err).Msg("Refresh completed with errors")
	}

	snap := s.store.Snapshot()
	s.sendJSONResponse(w, r, map[string]interface{}{
		"panels": snap.Panels,
		"errors": snap.Errors(),
	})
}

func (s *Server) sendUnavailable(w http.ResponseWriter, status dashboard.PanelStatus, fallback string) {
	message := fallback
	if status.Error != "" {
		message = status.Error
	}
	s.sendError(w, http.StatusServiceUnavailable, message)
}

// queryView derives the table view from snap with query overrides applied
func queryView(r *http.Request, snap dashboard.Snapshot) (markets_table.View, error) {
	sel := snap.Selections.TableSelection()
	if len(snap.Markets) > 0 {
		sel.Currency = snap.Markets[0].Currency
	}

	if value := getParamLowercase(r, "window"); value != "" {
		window, err := cg.ParseChangeWindow(value)
		if err != nil {
			return markets_table.View{}, err
		}
		sel.Window = window
	}
	if value := getParamLowercase(r, "symbols"); value != "" {
		sel.Symbols = splitParamLowercase(value)
	}
	if value := r.URL.Query().Get("top_n"); value != "" {
		n, err := strconv.Atoi(value)
		if err != nil {
			return markets_table.View{}, fmt.Errorf("top_n must be an integer, got %q", value)
		}
		sel.TopN = n
	}
	if value := r.URL.Query().Get("sort"); value != "" {
		sort, err := strconv.ParseBool(value)
		if err != nil {
			return markets_table.View{}, fmt.Errorf("sort must be a boolean, got %q", value)
		}
		sel.Sort = sort
	}

	return markets_table.Apply(snap.Markets, sel)
}

func isEmptyResult(err error) bool {
	var emptyErr *markets_table.EmptyResultError
	return errors.As(err, &emptyErr)
}
