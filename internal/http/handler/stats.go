package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"dreamlog/internal/journal"
	"dreamlog/internal/stats"

	"go.uber.org/zap"
)

type StatsHandler struct {
	Store *journal.Store
	Cache *stats.Cache // nil when Redis is not configured
	Key   string
	Log   *zap.Logger
}

// Report serves the full statistics report. A storage read failure degrades
// to a report over an empty journal rather than an error: one bad read must
// not blank the whole statistics screen. The report is computed whole, so the
// client never renders views from two different refreshes.
func (h *StatsHandler) Report(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if h.Cache != nil {
		if rep, ok := h.Cache.Get(ctx, h.Key); ok {
			writeReport(w, *rep)
			return
		}
	}

	entries, err := h.Store.Entries(ctx, h.Key)
	if err != nil {
		h.Log.Error("stats: journal read failed, serving empty report", zap.Error(err))
		entries = []journal.Entry{}
	}

	rep := stats.Compute(entries, time.Now())

	if h.Cache != nil && err == nil {
		h.Cache.Put(ctx, h.Key, rep)
	}

	writeReport(w, rep)
}

func writeReport(w http.ResponseWriter, rep stats.Report) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(rep)
}
