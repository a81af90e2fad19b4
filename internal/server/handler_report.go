package server

import (
	"fmt"
	"net/http"

	"readiness-service/internal/analysis"
)

// handleReportPDF renders a report payload into a downloadable artifact.
// The response is application/pdf in the normal case and text/html when
// rasterization failed; callers must branch on Content-Type.
func (s *Server) handleReportPDF(w http.ResponseWriter, r *http.Request) {
	var readiness analysis.ReadinessReport
	if err := decodePayload(r, reportSchema, &readiness); err != nil {
		s.errHandler.WriteError(w, r, err)
		return
	}

	artifact, err := s.deps.Reports.Generate(r.Context(), readiness)
	if err != nil {
		s.errHandler.WriteError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", artifact.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", artifact.Filename))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(artifact.Bytes); err != nil {
		s.deps.Log.Error("artifact write failed", map[string]interface{}{"error": err.Error()})
	}
}
