package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	corslib "github.com/rs/cors"
)

type Options struct {
	Handler        *Handler
	WebSocket      http.HandlerFunc
	Gatherer       prometheus.Gatherer
	AllowedOrigins []string
}

// NewRouter wires the widget page, its JSON/websocket feeds and the
// operational endpoints.
func NewRouter(opts Options) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	c := corslib.New(corslib.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Cache-Control"},
		AllowCredentials: false,
	})
	r.Use(c.Handler)

	h := opts.Handler

	r.Get("/", h.Page)
	r.Get("/healthz", h.Health)
	if opts.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/scoreboard", h.Scoreboard)
		r.Post("/refresh", h.Refresh)
		if opts.WebSocket != nil {
			r.Get("/ws", opts.WebSocket)
		}
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "NOT_FOUND", "Not found")
	})

	return r
}
