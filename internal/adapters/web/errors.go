package web

import (
	"encoding/json"
	"net/http"

	"retail-ledger/internal/core"
)

type errorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	RequestID string `json:"request_id,omitempty"`
}

// writeError writes a structured JSON error response.
func writeError(w http.ResponseWriter, r *http.Request, message, code string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	resp := errorResponse{
		Error:     message,
		Code:      code,
		RequestID: requestIDFromContext(r.Context()),
	}
	_ = json.NewEncoder(w).Encode(resp)
}

// writeDomainError maps a core error kind onto an HTTP status. Unclassified
// errors are internal faults and hide their message.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	kind := core.KindOf(err)
	switch kind {
	case core.KindValidation:
		writeError(w, r, err.Error(), string(kind), http.StatusBadRequest)
	case core.KindState:
		writeError(w, r, err.Error(), string(kind), http.StatusConflict)
	case core.KindCapacity:
		writeError(w, r, err.Error(), string(kind), http.StatusUnprocessableEntity)
	case core.KindNotFound:
		writeError(w, r, err.Error(), string(kind), http.StatusNotFound)
	case core.KindConflict:
		writeError(w, r, err.Error(), string(kind), http.StatusConflict)
	default:
		writeError(w, r, "internal server error", "INTERNAL_ERROR", http.StatusInternalServerError)
	}
}

// writeJSON writes a JSON response with status 200.
func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// writeJSONStatus writes a JSON response with an explicit status code.
func writeJSONStatus(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// decodeJSON parses the request body into v, rejecting unknown fields.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
