package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"taskhall/kernel/faults"
)

type errorResponse struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}

// writeDomainError maps a fault category to a status. Every context shares
// the taxonomy, so one mapping serves all routes.
func (s *Server) writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	code := faults.CodeOf(err)
	switch {
	case errors.Is(err, faults.ErrValidation):
		writeError(w, http.StatusUnprocessableEntity, code, "validation failed", faults.ValidationMessages(err))
	case errors.Is(err, faults.ErrNotFound):
		writeError(w, http.StatusNotFound, code, err.Error(), nil)
	case errors.Is(err, faults.ErrStateConflict), errors.Is(err, faults.ErrCapacity):
		writeError(w, http.StatusConflict, code, err.Error(), nil)
	case errors.Is(err, faults.ErrForbidden):
		writeError(w, http.StatusForbidden, code, err.Error(), nil)
	case errors.Is(err, faults.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, code, err.Error(), nil)
	default:
		s.logger.Error("request failed",
			"event", "http_request_failed",
			"module", "internal/platform/httpserver",
			"layer", "platform",
			"method", r.Method,
			"path", r.URL.Path,
			"error", err.Error(),
		)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error", nil)
	}
}

func writeInvalidRequest(w http.ResponseWriter, problems []string) {
	writeError(w, http.StatusBadRequest, "INVALID_REQUEST", "request is invalid", problems)
}

func writeError(w http.ResponseWriter, status int, code string, message string, details []string) {
	writeJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
		Errors:  details,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
