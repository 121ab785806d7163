package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"

	"github.com/baechuer/cityevents/services/nearby-service/internal/config"
	"github.com/baechuer/cityevents/services/nearby-service/internal/metrics"
	"github.com/baechuer/cityevents/services/nearby-service/internal/transport/http/handlers"
	mw "github.com/baechuer/cityevents/services/nearby-service/internal/transport/http/middleware"
)

func New(h *handlers.NearbyHandler, z *handlers.HealthHandler, cfg *config.Config) http.Handler {
	r := chi.NewRouter()

	r.Use(mw.RequestID)
	r.Use(mw.SecurityHeaders)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(mw.AccessLog)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", mw.HeaderXRequestID},
		ExposedHeaders: []string{mw.HeaderXRequestID},
		MaxAge:         300,
	}))

	r.Get("/healthz", z.Healthz)
	r.Get("/readyz", z.Readyz)
	r.Handle("/metrics", metrics.Handler())

	r.Route("/nearby/v1", func(r chi.Router) {
		if cfg.RLEnabled {
			r.Use(httprate.LimitByIP(cfg.RLLimit, cfg.RLWindow))
		}

		r.Get("/search", h.Search)
		r.Get("/items/{item_id}", h.GetItem)

		r.Get("/history", h.ListHistory)
		r.Post("/history", h.SetFavorites)
		r.Delete("/history", h.UnsetFavorites)

		r.Post("/login", h.Login)
	})

	return r
}
