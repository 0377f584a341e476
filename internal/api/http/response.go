package http

import (
	"encoding/json"
	"net/http"

	"saralevents-backend/internal/domain"
	"saralevents-backend/internal/logger"
)

type errorResponse struct {
	Error               string `json:"error"`
	NeedsReconciliation bool   `json:"needs_reconciliation,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("failed to encode response", "error", err)
	}
}

// writeError maps the domain error taxonomy onto HTTP statuses. Partial
// failures carry a needs_reconciliation flag so the dashboard can tell the
// admin the release stands but the wallet credit is queued.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case domain.IsValidation(err):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case domain.IsNotFound(err):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case domain.IsPartialFailure(err):
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error(), NeedsReconciliation: true})
	default:
		logger.Error("internal error", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}
