package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"pulsewatch/internal/auth"
	"pulsewatch/internal/handler"
	customMiddleware "pulsewatch/internal/middleware"
)

func NewRouter(h *handler.WebsiteHandler, healthHandler *handler.HealthHandler, verifier *auth.Verifier) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(customMiddleware.CORS)
	r.Use(customMiddleware.MetricsMiddleware)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(customMiddleware.AuthMiddleware(verifier))

		r.Post("/website", h.Register)
		r.Post("/website/{websiteId}/tick", h.RecordTick)
		r.Get("/website/status", h.Status)
		r.Delete("/website/{websiteId}", h.Delete)
		r.Get("/websites", h.List)
	})

	// Health & Readiness Routes
	r.Get("/healthz", healthHandler.Liveness)
	r.Get("/readyz", healthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	return r
}
