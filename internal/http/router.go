package http

import (
	"net/http"

	"dreamlog/internal/auth"
	"dreamlog/internal/config"
	"dreamlog/internal/http/handler"
	mw "dreamlog/internal/http/middleware"
	"dreamlog/internal/jobs"
	"dreamlog/internal/journal"
	"dreamlog/internal/stats"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func NewRouter(cfg config.Config, gdb *gorm.DB, jwtSvc *auth.JWT, store *journal.Store, cache *stats.Cache, log *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(mw.CORS(cfg.CORSAllowedOrigins, cfg.CORSAllowCredentials))
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	ah := &handler.AuthHandler{DB: gdb, JWT: jwtSvc}
	r.Post("/auth/setup", ah.Setup)
	r.Post("/auth/login", ah.Login)

	dreams := &handler.DreamHandler{Store: store, Cache: cache, Key: cfg.JournalKey}
	dreamsRead := &handler.DreamReadHandler{Store: store, Key: cfg.JournalKey}
	statsH := &handler.StatsHandler{Store: store, Cache: cache, Key: cfg.JournalKey, Log: log}
	reminder := &handler.ReminderHandler{Repo: &jobs.Repo{DB: gdb}, Key: cfg.JournalKey}

	r.Route("/dreams", func(r chi.Router) {
		r.Use(auth.RequireAuth(jwtSvc))

		r.Post("/", dreams.Create)
		r.Get("/", dreamsRead.List)
		r.Delete("/", dreams.Reset)

		r.Get("/stats", statsH.Report)

		r.Get("/{index:[0-9]+}", dreamsRead.Get)
		r.Put("/{index:[0-9]+}", dreams.Update)
		r.Delete("/{index:[0-9]+}", dreams.Delete)
	})

	r.Route("/reminder", func(r chi.Router) {
		r.Use(auth.RequireAuth(jwtSvc))

		r.Put("/", reminder.Enable)
		r.Delete("/", reminder.Disable)
	})

	return r
}
