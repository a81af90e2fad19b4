package server

import (
	"net/http"

	"readiness-service/internal/analysis"
)

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var profile analysis.StudentProfile
	if err := decodePayload(r, analyzeSchema, &profile); err != nil {
		s.errHandler.WriteError(w, r, err)
		return
	}

	report, err := s.deps.Analysis.Analyze(r.Context(), profile)
	if err != nil {
		s.errHandler.WriteError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, report)
}
