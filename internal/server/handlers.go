package server

import (
	"encoding/json"
	"io"
	"net/http"

	apperrors "readiness-service/internal/common/errors"
	"readiness-service/internal/common/validation"
)

const maxBodyBytes = 1 << 20

// decodePayload reads the request body, checks it against the endpoint's JSON
// schema, and unmarshals it into out.
func decodePayload(r *http.Request, schema map[string]interface{}, out interface{}) error {
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return apperrors.NewInvalidInputError("request body could not be read")
	}
	if len(raw) == 0 {
		return apperrors.NewInvalidInputError("request body is empty")
	}

	var doc interface{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return apperrors.NewInvalidInputError("request body is not valid JSON")
	}

	result, err := validation.Validate(doc, schema)
	if err != nil {
		return apperrors.NewInvalidInputError("payload validation could not run: " + err.Error())
	}
	if !result.Valid {
		return apperrors.NewInvalidInputError(result.ErrorMessages())
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return apperrors.NewInvalidInputError("request body does not match the expected shape")
	}
	return nil
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.deps.Log.Error("response encoding failed", map[string]interface{}{"error": err.Error()})
	}
}
