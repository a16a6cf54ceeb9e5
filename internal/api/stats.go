package api

import (
	"net/http"
	"time"

	"github.com/albertomt/cricheck/internal/model"
	"github.com/albertomt/cricheck/internal/store"
)

// StatsHandler handles the admin dashboard counts.
type StatsHandler struct {
	Store store.Store
}

// Dashboard handles GET /api/stats/dashboard. Today's scans are counted from
// local midnight.
func (h *StatsHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	stats, err := h.Store.DashboardStats(r.Context(), model.LowStockThreshold, midnight)
	if err != nil {
		storeError(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, stats)
}
