package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"dreamlog/internal/journal"
	"dreamlog/internal/stats"

	"github.com/go-chi/chi/v5"
)

// DreamHandler owns the write side of the journal. Every mutation invalidates
// the cached stats report so the next stats read recomputes.
type DreamHandler struct {
	Store *journal.Store
	Cache *stats.Cache // nil when Redis is not configured
	Key   string       // journal storage key
}

// validateEntry checks fields once at the write boundary and normalizes tags,
// so everything downstream can trust the record.
func validateEntry(e *journal.Entry) string {
	switch e.Type {
	case "", journal.TypeLucid, journal.TypeNightmare, journal.TypePleasant:
	default:
		return "invalid dreamType"
	}
	if e.Intensity != nil && (*e.Intensity < 0 || *e.Intensity > 10) {
		return "intensity out of range [0,10]"
	}
	if e.Quality != nil && (*e.Quality < 0 || *e.Quality > 10) {
		return "qualityDream out of range [0,10]"
	}
	if e.DateISO != "" {
		if _, err := time.Parse(time.RFC3339, e.DateISO); err != nil {
			return "invalid dateISO (RFC3339)"
		}
	}
	e.Tags = journal.SanitizeTags(e.Tags)
	return ""
}

func (h *DreamHandler) invalidate(r *http.Request) {
	if h.Cache != nil {
		h.Cache.Invalidate(r.Context(), h.Key)
	}
}

func (h *DreamHandler) Create(w http.ResponseWriter, r *http.Request) {
	var e journal.Entry
	if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	if msg := validateEntry(&e); msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}

	position, err := h.Store.Append(r.Context(), h.Key, e)
	if err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	h.invalidate(r)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(map[string]any{"position": position})
}

func (h *DreamHandler) Update(w http.ResponseWriter, r *http.Request) {
	position, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		http.Error(w, "invalid index", http.StatusBadRequest)
		return
	}

	var e journal.Entry
	if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
		http.Error(w, "bad json", http.StatusBadRequest)
		return
	}
	if msg := validateEntry(&e); msg != "" {
		http.Error(w, msg, http.StatusBadRequest)
		return
	}

	switch err := h.Store.ReplaceAt(r.Context(), h.Key, position, e); {
	case errors.Is(err, journal.ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
		return
	case err != nil:
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	h.invalidate(r)

	w.WriteHeader(http.StatusNoContent)
}

func (h *DreamHandler) Delete(w http.ResponseWriter, r *http.Request) {
	position, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		http.Error(w, "invalid index", http.StatusBadRequest)
		return
	}

	switch err := h.Store.DeleteAt(r.Context(), h.Key, position); {
	case errors.Is(err, journal.ErrNotFound):
		http.Error(w, "not found", http.StatusNotFound)
		return
	case err != nil:
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	h.invalidate(r)

	w.WriteHeader(http.StatusNoContent)
}

// Reset drops every entry, matching the client's "Reset Dreams" action.
func (h *DreamHandler) Reset(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.Reset(r.Context(), h.Key); err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	h.invalidate(r)

	w.WriteHeader(http.StatusNoContent)
}
