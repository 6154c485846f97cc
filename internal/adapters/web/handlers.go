package web

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"retail-ledger/internal/app"
)

// Handler holds the ApplicationService and the chi router.
type Handler struct {
	svc       app.ApplicationService
	router    chi.Router
	jwtSecret string
}

// NewHandler creates and wires the chi router with all routes.
func NewHandler(svc app.ApplicationService, allowedOrigins, jwtSecret string) http.Handler {
	h := &Handler{svc: svc, jwtSecret: jwtSecret}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Logger)
	r.Use(Recoverer)
	r.Use(CORS(allowedOrigins))

	// ── Public ────────────────────────────────────────────────────────────────
	r.Get("/api/health", h.health)
	r.Post("/api/auth/login", h.login)
	r.Post("/api/auth/logout", h.logout)

	// ── Authenticated API ─────────────────────────────────────────────────────
	r.Group(func(r chi.Router) {
		r.Use(h.RequireAuth)

		r.Get("/api/items", h.listItems)

		r.Route("/api/ledgers", func(r chi.Router) {
			r.Post("/", h.createLedger)
			r.Get("/", h.listLedgers)
			r.Get("/{id}", h.getLedger)
			r.Post("/{id}/lines", h.addLine)
			r.Patch("/{id}/lines/{lineID}", h.setLineQuantity)
			r.Delete("/{id}/lines/{lineID}", h.removeLine)
			r.Post("/{id}/lines/{lineID}/discount", h.applyLineDiscount)
			r.Post("/{id}/lines/{lineID}/void", h.voidLine)
			r.Post("/{id}/lines/{lineID}/cancel", h.cancelLine)
			r.Post("/{id}/lines/{lineID}/complimentary", h.compLine)
			r.Post("/{id}/adjustments", h.setAdjustments)
		})

		r.Route("/api/requests", func(r chi.Router) {
			r.Post("/", h.submitRequest)
			r.Get("/", h.listRequests)
			r.Get("/{id}", h.getRequest)
			r.Post("/{id}/charges", h.setCharges)
			r.Post("/{id}/unlock", h.unlockRequest)
			r.Post("/{id}/pay", h.completePayment)
		})

		r.Route("/api/obligations", func(r chi.Router) {
			r.Post("/", h.openObligation)
			r.Get("/", h.listObligations)
			r.Get("/{id}", h.getObligation)
			r.Post("/{id}/settlements", h.recordSettlement)
			r.Get("/{id}/settlements", h.settlementHistory)
		})

		r.Get("/api/reports/obligations", h.obligationReport)
		r.Get("/api/reports/sales", h.salesSummary)
		r.Get("/api/reports/requests", h.requestPipeline)
	})

	h.router = r
	return r
}

// health handles GET /api/health.
func (h *Handler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, map[string]string{"status": "ok"})
}
