package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"retail-ledger/internal/app"
	"retail-ledger/internal/core"
)

// submitRequest handles POST /api/requests.
func (h *Handler) submitRequest(w http.ResponseWriter, r *http.Request) {
	actor, _ := actorFromContext(r.Context())

	var req app.SubmitRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, "invalid JSON body", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	if req.LedgerID == "" {
		writeError(w, r, "ledger_id is required", "BAD_REQUEST", http.StatusBadRequest)
		return
	}

	result, err := h.svc.SubmitRequest(r.Context(), req, actor)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSONStatus(w, http.StatusCreated, result)
}

// listRequests handles GET /api/requests?status=pending.
func (h *Handler) listRequests(w http.ResponseWriter, r *http.Request) {
	status := core.RequestStatus(r.URL.Query().Get("status"))
	result, err := h.svc.ListRequests(r.Context(), status)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// getRequest handles GET /api/requests/{id}.
func (h *Handler) getRequest(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.GetRequest(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// setCharges handles POST /api/requests/{id}/charges.
func (h *Handler) setCharges(w http.ResponseWriter, r *http.Request) {
	actor, _ := actorFromContext(r.Context())

	var req app.ChargesRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, "invalid JSON body", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	result, err := h.svc.SetCharges(r.Context(), chi.URLParam(r, "id"), req, actor)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// unlockRequest handles POST /api/requests/{id}/unlock.
func (h *Handler) unlockRequest(w http.ResponseWriter, r *http.Request) {
	actor, _ := actorFromContext(r.Context())

	result, err := h.svc.UnlockRequest(r.Context(), chi.URLParam(r, "id"), actor)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// completePayment handles POST /api/requests/{id}/pay.
func (h *Handler) completePayment(w http.ResponseWriter, r *http.Request) {
	actor, _ := actorFromContext(r.Context())

	var req app.PaymentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, "invalid JSON body", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	result, err := h.svc.CompletePayment(r.Context(), chi.URLParam(r, "id"), req, actor)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, result)
}
