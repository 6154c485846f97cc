package web

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"retail-ledger/internal/app"
	"retail-ledger/internal/core"
)

// listItems handles GET /api/items.
func (h *Handler) listItems(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.ListItems(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// createLedger handles POST /api/ledgers.
func (h *Handler) createLedger(w http.ResponseWriter, r *http.Request) {
	actor, _ := actorFromContext(r.Context())

	var req app.CreateLedgerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, "invalid JSON body", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	if req.Kind == "" {
		req.Kind = core.KindSale
	}

	result, err := h.svc.CreateLedger(r.Context(), req, actor)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSONStatus(w, http.StatusCreated, result)
}

// listLedgers handles GET /api/ledgers?kind=sale.
func (h *Handler) listLedgers(w http.ResponseWriter, r *http.Request) {
	kind := core.LedgerKind(r.URL.Query().Get("kind"))
	result, err := h.svc.ListLedgers(r.Context(), kind)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// getLedger handles GET /api/ledgers/{id}.
func (h *Handler) getLedger(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.GetLedger(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// addLine handles POST /api/ledgers/{id}/lines.
func (h *Handler) addLine(w http.ResponseWriter, r *http.Request) {
	var req app.AddLineRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, "invalid JSON body", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	result, err := h.svc.AddLine(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// setLineQuantity handles PATCH /api/ledgers/{id}/lines/{lineID}.
func (h *Handler) setLineQuantity(w http.ResponseWriter, r *http.Request) {
	var req app.SetQuantityRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, "invalid JSON body", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	result, err := h.svc.SetLineQuantity(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "lineID"), req)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// removeLine handles DELETE /api/ledgers/{id}/lines/{lineID}.
func (h *Handler) removeLine(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.RemoveLine(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "lineID"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// applyLineDiscount handles POST /api/ledgers/{id}/lines/{lineID}/discount.
func (h *Handler) applyLineDiscount(w http.ResponseWriter, r *http.Request) {
	var req app.LineDiscountRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, "invalid JSON body", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	result, err := h.svc.ApplyLineDiscount(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "lineID"), req)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// setAdjustments handles POST /api/ledgers/{id}/adjustments.
func (h *Handler) setAdjustments(w http.ResponseWriter, r *http.Request) {
	var req app.AdjustmentsRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, "invalid JSON body", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	result, err := h.svc.SetAdjustments(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, result)
}

func (h *Handler) voidLine(w http.ResponseWriter, r *http.Request) {
	h.lineStatus(w, r, h.svc.VoidLine)
}

func (h *Handler) cancelLine(w http.ResponseWriter, r *http.Request) {
	h.lineStatus(w, r, h.svc.CancelLine)
}

func (h *Handler) compLine(w http.ResponseWriter, r *http.Request) {
	h.lineStatus(w, r, h.svc.CompLine)
}

// lineStatus is the shared body for the three terminal-transition endpoints.
func (h *Handler) lineStatus(w http.ResponseWriter, r *http.Request,
	op func(ctx context.Context, ledgerID, lineID string, req app.LineStatusRequest) (*app.LedgerResult, error)) {

	var req app.LineStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, "invalid JSON body", "BAD_REQUEST", http.StatusBadRequest)
		return
	}
	result, err := op(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "lineID"), req)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, result)
}
