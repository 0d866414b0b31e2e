package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"retail-pos/internal/core"
	"retail-pos/internal/sheets"
)

type partialWrite struct {
	Op             string `json:"op"`
	OrderCode      string `json:"orderCode"`
	RowsDeleted    int    `json:"rowsDeleted"`
	DetailWritten  bool   `json:"detailWritten"`
	SummaryWritten bool   `json:"summaryWritten"`
}

type errorResponse struct {
	Error     string         `json:"error"`
	Code      string         `json:"code"`
	RequestID string         `json:"request_id,omitempty"`
	Received  map[string]any `json:"received,omitempty"`
	Partial   *partialWrite  `json:"partial,omitempty"`
}

// writeError writes a structured JSON error response.
func writeError(w http.ResponseWriter, r *http.Request, message, code string, status int) {
	writeErrorResponse(w, r, status, errorResponse{Error: message, Code: code})
}

func writeErrorResponse(w http.ResponseWriter, r *http.Request, status int, resp errorResponse) {
	resp.RequestID = requestIDFromContext(r.Context())
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

// writeServiceError maps a service error onto an HTTP status and error code.
// fallback is the user-facing message for unexpected store failures.
func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	var verr *core.ValidationError
	var perr *core.PartialWriteError
	switch {
	case errors.As(err, &verr):
		writeErrorResponse(w, r, http.StatusBadRequest, errorResponse{
			Error:    verr.Message,
			Code:     "VALIDATION_ERROR",
			Received: verr.Received,
		})
	case errors.Is(err, core.ErrNotFound):
		writeError(w, r, err.Error(), "NOT_FOUND", http.StatusNotFound)
	case errors.As(err, &perr):
		h.log.Error().Err(err).Str("request_id", requestIDFromContext(r.Context())).Msg("partial order write")
		writeErrorResponse(w, r, http.StatusInternalServerError, errorResponse{
			Error: fallback + ": " + perr.Error(),
			Code:  "PARTIAL_WRITE",
			Partial: &partialWrite{
				Op:             perr.Op,
				OrderCode:      perr.Code,
				RowsDeleted:    perr.RowsDeleted,
				DetailWritten:  perr.DetailWritten,
				SummaryWritten: perr.SummaryWritten,
			},
		})
	case errors.Is(err, sheets.ErrNoCredentials):
		writeError(w, r, fallback+": "+err.Error(), "STORE_NOT_CONFIGURED", http.StatusServiceUnavailable)
	default:
		h.log.Error().Err(err).Str("request_id", requestIDFromContext(r.Context())).Msg("store request failed")
		writeError(w, r, fallback, "STORE_ERROR", http.StatusInternalServerError)
	}
}

// writeJSON writes a JSON response with status 200.
func writeJSON(w http.ResponseWriter, v any) {
	writeJSONStatus(w, http.StatusOK, v)
}

func writeJSONStatus(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
