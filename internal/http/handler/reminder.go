package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"dreamlog/internal/jobs"
)

type ReminderHandler struct {
	Repo *jobs.Repo
	Key  string
}

type reminderReq struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

// Enable schedules the daily reminder. Re-enabling replaces any pending
// schedule instead of stacking a second one.
func (h *ReminderHandler) Enable(w http.ResponseWriter, r *http.Request) {
	req := reminderReq{Hour: 8} // the client's historical default, 08:00
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad json", http.StatusBadRequest)
			return
		}
	}
	if req.Hour < 0 || req.Hour > 23 || req.Minute < 0 || req.Minute > 59 {
		http.Error(w, "invalid time", http.StatusBadRequest)
		return
	}

	p := jobs.ReminderPayload{JournalKey: h.Key, Hour: req.Hour, Minute: req.Minute}
	runAt := jobs.NextRun(time.Now(), req.Hour, req.Minute)
	if err := h.Repo.EnqueueReminder(p, runAt); err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{"next_run": runAt})
}

func (h *ReminderHandler) Disable(w http.ResponseWriter, r *http.Request) {
	if err := h.Repo.CancelReminders(h.Key); err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
