package web

import (
	"net/http"

	"retail-ledger/internal/core"
)

// obligationReport handles GET /api/reports/obligations?side=receivable.
func (h *Handler) obligationReport(w http.ResponseWriter, r *http.Request) {
	side := core.ObligationSide(r.URL.Query().Get("side"))
	status := core.ObligationStatus(r.URL.Query().Get("status"))
	result, err := h.svc.ObligationReport(r.Context(), side, status)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// salesSummary handles GET /api/reports/sales?kind=sale.
func (h *Handler) salesSummary(w http.ResponseWriter, r *http.Request) {
	kind := core.LedgerKind(r.URL.Query().Get("kind"))
	result, err := h.svc.SalesSummary(r.Context(), kind)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// requestPipeline handles GET /api/reports/requests.
func (h *Handler) requestPipeline(w http.ResponseWriter, r *http.Request) {
	result, err := h.svc.RequestPipeline(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, result)
}
