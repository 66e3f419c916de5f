package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(withGZip)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/auth/register", h.register)
		r.Post("/api/auth/login", h.login)
		r.Get("/api/version/", h.getServerVersion)
	})

	// routes behind the auth middleware
	router.Group(func(r chi.Router) {
		r.Use(h.auth)
		if h.cfg.RateLimitRPS > 0 {
			r.Use(h.rateLimit(newRateLimiter(h.cfg.RateLimitRPS, h.cfg.RateLimitBurst)))
		}

		r.With(h.commitHashing).Post("/api/records/commit", h.commit)
		r.Post("/api/changes/fetch", h.fetchChanges)

		r.Route("/api/zones", func(r chi.Router) {
			r.Post("/", h.createZone)
			r.Get("/", h.listZones)
			r.Delete("/{zone}", h.deleteZone)
		})
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
