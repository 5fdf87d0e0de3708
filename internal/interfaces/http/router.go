package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/nikhilesh-s/mfr-material-risk-engine/internal/interfaces/http/handlers"
)

// RouterConfig aggregates the handlers and middleware that make up the
// route tree. Nil entries are skipped.
type RouterConfig struct {
	AssessmentHandler *handlers.AssessmentHandler
	HealthHandler     *handlers.HealthHandler

	CORS    func(http.Handler) http.Handler
	Logging func(http.Handler) http.Handler

	// MetricsHandler is mounted at MetricsPath, "/metrics" when empty.
	MetricsHandler http.Handler
	MetricsPath    string
}

// NewRouter constructs the complete HTTP route tree.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	if cfg.Logging != nil {
		r.Use(cfg.Logging)
	}
	r.Use(chimw.Recoverer)
	if cfg.CORS != nil {
		r.Use(cfg.CORS)
	}

	if cfg.HealthHandler != nil {
		r.Get("/healthz", cfg.HealthHandler.Liveness)
		r.Get("/readyz", cfg.HealthHandler.Readiness)
	}

	if cfg.MetricsHandler != nil {
		path := cfg.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		r.Handle(path, cfg.MetricsHandler)
	}

	if cfg.AssessmentHandler != nil {
		r.Route("/api/v1", cfg.AssessmentHandler.RegisterRoutes)
	}

	return r
}

//Personal.AI order the ending
