package api

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	designsync "github.com/yacobolo/designsync"
)

// NewRouter mounts every route on a chi router. A non-empty token enables
// Bearer auth on everything except /healthz.
func NewRouter(engine *designsync.Engine, logger *slog.Logger, token string) chi.Router {
	h := NewHandler(engine, logger)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(logger))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", h.Health)

	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(token))

		r.Get("/scan", h.Scan)
		r.Post("/rescan", h.Rescan)
		r.Post("/edits", h.Apply)

		r.Route("/elements", func(r chi.Router) {
			r.Post("/mark", h.Mark)
			r.Post("/unmark", h.Unmark)
			r.Post("/inspect", h.Inspect)
		})

		r.Route("/classes", func(r chi.Router) {
			r.Get("/parse", h.ParseClasses)
			r.Get("/value", h.ValueForClass)
			r.Get("/for-value", h.ClassForValue)
		})
	})

	return r
}
