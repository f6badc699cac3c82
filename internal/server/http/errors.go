package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/calcapi/internal/common"
)

// Response details. Every authentication failure shares msgUnauthorized.
const (
	msgUnauthorized     = "Could not validate credentials"
	msgDuplicateUser    = "Username already registered"
	msgNegativeRoot     = "Cannot calculate square root of negative number"
	msgInternal         = "Internal server error"
	msgMalformedPayload = "Request body is not valid JSON"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error      string `json:"error"`
	StatusCode int    `json:"status_code"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		//nolint:errcheck // client may have gone away
		json.NewEncoder(w).Encode(v)
	}
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, ErrorResponse{Error: detail, StatusCode: status})
}

func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", common.BearerScheme)
	writeError(w, http.StatusUnauthorized, msgUnauthorized)
}

// writeServiceError maps a service error onto its HTTP status.
func (s *HTTPServer) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, common.ErrValidation):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, common.ErrDuplicateUser):
		writeError(w, http.StatusBadRequest, msgDuplicateUser)
	case errors.Is(err, common.ErrNegativeRoot):
		writeError(w, http.StatusBadRequest, msgNegativeRoot)
	case errors.Is(err, common.ErrorUnauthorized):
		s.metrics.AuthFailures.Inc()
		writeUnauthorized(w)
	default:
		s.logger.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, msgInternal)
	}
}
