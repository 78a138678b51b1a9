package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"dreamlog/internal/journal"

	"github.com/go-chi/chi/v5"
)

type DreamReadHandler struct {
	Store *journal.Store
	Key   string
}

type dreamDTO struct {
	Position  int        `json:"position"`
	Date      *time.Time `json:"date"`
	Type      string     `json:"type"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	Character string     `json:"character"`
	Location  string     `json:"location"`
	Favorite  bool       `json:"favorite"`
	Tags      []string   `json:"tags"`
}

// List serves the journal filtered by the search criteria carried in query
// params. The criteria travel with every request; the server keeps no
// "current filter" state between calls.
func (h *DreamReadHandler) List(w http.ResponseWriter, r *http.Request) {
	c := journal.Criteria{
		Text:      strings.TrimSpace(r.URL.Query().Get("q")),
		Character: strings.TrimSpace(r.URL.Query().Get("character")),
		Tag:       strings.TrimSpace(strings.ToLower(r.URL.Query().Get("tag"))),
	}

	switch t := journal.DreamType(strings.TrimSpace(r.URL.Query().Get("type"))); t {
	case "":
	case journal.TypeLucid, journal.TypeNightmare, journal.TypePleasant, journal.TypeOther:
		c.Type = t
	default:
		http.Error(w, "invalid type", http.StatusBadRequest)
		return
	}

	switch fav := strings.TrimSpace(r.URL.Query().Get("favorite")); fav {
	case "":
	case "true", "false":
		v := fav == "true"
		c.Favorite = &v
	default:
		http.Error(w, "invalid favorite", http.StatusBadRequest)
		return
	}

	if v := strings.TrimSpace(r.URL.Query().Get("start")); v != "" {
		t, err := time.ParseInLocation("2006-01-02", v, time.Local)
		if err != nil {
			http.Error(w, "invalid start (YYYY-MM-DD)", http.StatusBadRequest)
			return
		}
		c.Start = &t
	}
	if v := strings.TrimSpace(r.URL.Query().Get("end")); v != "" {
		t, err := time.ParseInLocation("2006-01-02", v, time.Local)
		if err != nil {
			http.Error(w, "invalid end (YYYY-MM-DD)", http.StatusBadRequest)
			return
		}
		// inclusive of the whole end day
		t = t.AddDate(0, 0, 1).Add(-time.Nanosecond)
		c.End = &t
	}

	rows, err := h.Store.Search(r.Context(), h.Key, c)
	if err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	out := make([]dreamDTO, 0, len(rows))
	for _, p := range rows {
		out = append(out, dreamDTO{
			Position:  p.Position,
			Date:      p.OccurredAt,
			Type:      p.Type,
			Title:     p.Title,
			Content:   p.Content,
			Character: p.Character,
			Location:  p.Location,
			Favorite:  p.Favorite,
			Tags:      []string(p.Tags),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(out)
}

// Get serves one entry by position, full record, for the editor screen.
func (h *DreamReadHandler) Get(w http.ResponseWriter, r *http.Request) {
	position, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		http.Error(w, "invalid index", http.StatusBadRequest)
		return
	}

	entries, err := h.Store.Entries(r.Context(), h.Key)
	if err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}
	if position < 0 || position >= len(entries) {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(entries[position])
}
