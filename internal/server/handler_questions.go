package server

import (
	"net/http"

	"readiness-service/internal/assessment"
)

func (s *Server) handleQuestions(w http.ResponseWriter, r *http.Request) {
	questions := assessment.Questions()
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"questions": questions,
		"total":     len(questions),
		"sections":  assessment.Sections(),
	})
}
