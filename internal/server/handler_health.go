package server

import (
	"net/http"
	"time"
)

// handleHealth reports overall service health plus per-dependency detail.
// Optional dependencies that are not wired are reported as "disabled" and do
// not degrade the status.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	components := map[string]string{}
	healthy := true

	if s.deps.Postgres != nil {
		if err := s.deps.Postgres.Ping(ctx); err != nil {
			components["postgres"] = "unhealthy: " + err.Error()
			healthy = false
		} else {
			components["postgres"] = "healthy"
		}
	} else {
		components["postgres"] = "disabled"
	}

	if s.deps.Redis != nil {
		if err := s.deps.Redis.Ping(ctx); err != nil {
			components["redis"] = "unhealthy: " + err.Error()
		} else {
			components["redis"] = "healthy"
		}
	} else {
		components["redis"] = "disabled"
	}

	if s.deps.ES != nil {
		if err := s.deps.ES.Ping(); err != nil {
			components["elasticsearch"] = "unhealthy: " + err.Error()
		} else {
			components["elasticsearch"] = "healthy"
		}
	} else {
		components["elasticsearch"] = "disabled"
	}

	status := http.StatusOK
	overall := "healthy"
	if !healthy {
		status = http.StatusServiceUnavailable
		overall = "unhealthy"
	}

	s.writeJSON(w, status, map[string]interface{}{
		"status":     overall,
		"components": components,
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
	})
}
