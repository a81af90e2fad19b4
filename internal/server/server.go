// Package server exposes the assessment funnel over HTTP.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"readiness-service/internal/analysis"
	"readiness-service/internal/common/database"
	apperrors "readiness-service/internal/common/errors"
	"readiness-service/internal/common/logger"
	"readiness-service/internal/common/observability"
	"readiness-service/internal/leads"
	"readiness-service/internal/notify"
	"readiness-service/internal/report"
)

// Dependencies carries everything the HTTP layer needs. Optional integrations
// (email, search, health probes) may be nil.
type Dependencies struct {
	Analysis *analysis.Service
	Reports  *report.Service
	Leads    *leads.Service
	Email    *notify.EmailSender
	Tracing  *observability.Tracing

	Postgres *database.PostgresClient
	Redis    *database.RedisClient
	ES       *database.ElasticsearchClient

	Log logger.Logger
}

// Server is the HTTP front of the readiness funnel.
type Server struct {
	deps       Dependencies
	errHandler *apperrors.HTTPHandler
	router     chi.Router
}

// New builds the server and its route table.
func New(deps Dependencies) *Server {
	s := &Server{
		deps:       deps,
		errHandler: apperrors.NewHTTPHandler(deps.Log),
	}
	s.router = s.buildRouter()
	return s
}

// Handler returns the root http.Handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(s.requestMetrics)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/questions", s.handleQuestions)
		r.Post("/assessments", s.handleAssessment)
		r.Post("/analyze", s.handleAnalyze)
		r.Post("/reports/pdf", s.handleReportPDF)
		r.Post("/leads", s.handleLeadUpsert)
		r.Get("/leads/search", s.handleLeadSearch)
	})

	return r
}
