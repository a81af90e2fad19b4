package server

import (
	"net/http"
	"strconv"

	"readiness-service/internal/leads"
)

func (s *Server) handleLeadUpsert(w http.ResponseWriter, r *http.Request) {
	var lead leads.Lead
	if err := decodePayload(r, leadSchema, &lead); err != nil {
		s.errHandler.WriteError(w, r, err)
		return
	}

	result, err := s.deps.Leads.Capture(r.Context(), lead)
	if err != nil {
		s.errHandler.WriteError(w, r, err)
		return
	}

	// The funnel client only branches on which flag is present.
	if result.Created {
		s.writeJSON(w, http.StatusOK, map[string]interface{}{"created": true, "id": result.ID})
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{"updated": true, "id": result.ID})
}

func (s *Server) handleLeadSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	size, _ := strconv.Atoi(r.URL.Query().Get("size"))

	hits, err := s.deps.Leads.Search(r.Context(), query, size)
	if err != nil {
		s.errHandler.WriteError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"leads": hits,
		"total": len(hits),
	})
}
