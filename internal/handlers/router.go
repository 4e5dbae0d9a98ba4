package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/Lixing-Zhang/final-order-relay/internal/config"
	"github.com/Lixing-Zhang/final-order-relay/internal/middleware"
	"github.com/Lixing-Zhang/final-order-relay/pkg/metrics"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// requestTimeout must stay above three 15s upstream attempts plus backoff.
const requestTimeout = 60 * time.Second

// NewRouter wires middleware and routes.
func NewRouter(cfg *config.Config, log *slog.Logger, m *metrics.Metrics, health *HealthHandler, orders *OrderHandler) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(requestTimeout))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", middleware.InternalTokenHeader},
		ExposedHeaders:   []string{chimiddleware.RequestIDHeader},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Use(middleware.Trace)
	r.Use(middleware.Metrics(m))

	r.Get("/health", health.ServeHTTP)
	r.Method(http.MethodGet, "/metrics", m.Handler())

	r.With(middleware.InternalTokenAuth(cfg.Auth)).
		Post("/create-final-order", orders.CreateFinalOrder)

	return r
}
