// Package httpapi exposes the talentflow services as a JSON API over chi.
package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/example/talentflow/internal/metrics"
)

// RouterOptions configures NewRouter. Chaos and Metrics are optional.
type RouterOptions struct {
	CORSOrigins []string
	Chaos       *Chaos
	Metrics     *metrics.Middleware
	Gatherer    prometheus.Gatherer
	Logger      *zap.Logger
}

// NewRouter builds the API router. /health and /metrics sit outside the
// chaos layer.
func NewRouter(h *Handler, opts RouterOptions) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = zap.L()
	}

	router := chi.NewRouter()

	if opts.Metrics != nil {
		router.Use(opts.Metrics.Handler)
	}
	router.Use(
		cors.Handler(cors.Options{
			AllowedOrigins: opts.CORSOrigins,
			AllowedMethods: []string{"GET", "PUT", "POST", "PATCH", "DELETE", "HEAD", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
			MaxAge:         300,
		}),
		chiMiddleware.RequestID,
		Logger(logger, "http"),
		chiMiddleware.Recoverer,
	)

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, map[string]string{"status": "ok"})
	})
	if opts.Gatherer != nil {
		router.Handle("/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))
	}

	router.Route("/api", func(r chi.Router) {
		if opts.Chaos != nil {
			r.Use(opts.Chaos.Handler)
		}

		r.Route("/jobs", func(r chi.Router) {
			r.Get("/", h.ListJobs)
			r.Post("/", h.CreateJob)
			r.Get("/{id}", h.GetJob)
			r.Patch("/{id}", h.UpdateJob)
			r.Patch("/{id}/reorder", h.ReorderJob)
		})

		r.Route("/candidates", func(r chi.Router) {
			r.Get("/", h.ListCandidates)
			r.Post("/", h.CreateCandidate)
			r.Get("/{id}", h.GetCandidate)
			r.Patch("/{id}", h.UpdateCandidate)
			r.Get("/{id}/timeline", h.GetCandidateTimeline)
		})

		r.Get("/assessments", h.ListAssessments)
		r.Route("/assessments/{jobId}", func(r chi.Router) {
			r.Get("/", h.GetAssessment)
			r.Get("/submissions", h.ListSubmissions)
			r.Put("/", h.SaveAssessment)
			r.Post("/preview", h.PreviewAssessment)
			r.Post("/submit", h.SubmitAssessment)
		})
	})

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respond(w, r, http.StatusNotFound, ErrorResponse{Error: "route " + r.URL.Path + " not found", Code: CodeNotFound})
	})

	return router
}
