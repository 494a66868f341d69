package api

import (
	"net/http"

	"github.com/status-im/market-dashboard/dashboard"
)

// handleHealth responds with 200 OK and the provider status of every operation
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	services := make(map[string]string)
	for operation, healthy := range s.client.Healthy() {
		services[operation] = "unknown"
		if healthy {
			services[operation] = "up"
		}
	}

	snap := s.store.Snapshot()
	panels := make(map[string]string, len(dashboard.FetchedPanels))
	for _, panel := range dashboard.FetchedPanels {
		switch status := snap.Panels[panel]; {
		case status.Error != "":
			panels[panel] = "error"
		case status.UpdatedAt.IsZero():
			panels[panel] = "pending"
		default:
			panels[panel] = "ok"
		}
	}

	resp := map[string]interface{}{
		"status":   "ok",
		"services": services,
		"panels":   panels,
	}
	if s.cacheStats != nil {
		resp["cache"] = s.cacheStats()
	}
	s.sendJSONResponse(w, r, resp)
}
