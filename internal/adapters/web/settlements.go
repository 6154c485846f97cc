package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"retail-ledger/internal/app"
	"retail-ledger/internal/core"
)

// openObligation handles POST /api/obligations.
func (h *Handler) openObligation(w http.ResponseWriter, r *http.Request) {
	actor, _ := actorFromContext(r.Context())

	var req app.OpenObligationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, "invalid JSON body", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	result, err := h.svc.OpenObligation(r.Context(), req, actor)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSONStatus(w, http.StatusCreated, result)
}

// listObligations handles GET /api/obligations?side=receivable&status=unpaid.
func (h *Handler) listObligations(w http.ResponseWriter, r *http.Request) {
	side := core.ObligationSide(r.URL.Query().Get("side"))
	status := core.ObligationStatus(r.URL.Query().Get("status"))
	result, err := h.svc.ListObligations(r.Context(), side, status)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// getObligation handles GET /api/obligations/{id}.
func (h *Handler) getObligation(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.GetObligation(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// recordSettlement handles POST /api/obligations/{id}/settlements.
func (h *Handler) recordSettlement(w http.ResponseWriter, r *http.Request) {
	actor, _ := actorFromContext(r.Context())

	var req app.RecordSettlementRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, "invalid JSON body", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	result, err := h.svc.RecordSettlement(r.Context(), chi.URLParam(r, "id"), req, actor)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// settlementHistory handles GET /api/obligations/{id}/settlements.
func (h *Handler) settlementHistory(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.SettlementHistory(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, result)
}
