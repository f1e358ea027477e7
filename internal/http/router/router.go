package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"motorental/internal/http/handlers"
)

// New constructs a chi-based http.Handler with base middleware and routes.
func New(h *handlers.Handlers, rental *handlers.RentalHandler) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(5 * time.Second))

	r.Get("/ping", h.Ping)
	r.Method(http.MethodHead, "/healthcheck", http.HandlerFunc(h.HealthcheckHead))
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/rental", func(r chi.Router) {
		r.Post("/", rental.Create)
		r.Get("/deliverer/{id}", rental.List)
		r.Get("/expected-return", rental.ExpectedReturn)
		r.Put("/finalize", rental.Finalize)
	})

	r.NotFound(http.HandlerFunc(h.NotFound))

	return r
}
