package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	AnalyzeRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "analyze_requests_total",
			Help: "Total number of analysis requests by report source",
		},
		[]string{"source"},
	)

	LLMAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "llm_attempts_total",
			Help: "Total number of remote model attempts by model and outcome",
		},
		[]string{"model", "outcome"},
	)

	RenderRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "render_requests_total",
			Help: "Total number of report render requests by artifact type",
		},
		[]string{"artifact"},
	)

	LeadUpserts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lead_upserts_total",
			Help: "Total number of lead upserts by result",
		},
		[]string{"result"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "http_request_duration_seconds",
			Help: "Duration of HTTP request processing in seconds",
		},
		[]string{"route", "status"},
	)
)
