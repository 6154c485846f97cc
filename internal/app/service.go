package app

import (
	"context"

	"retail-ledger/internal/core"
)

// ApplicationService is the single interface the web adapter calls. It
// decouples transport from business logic; implementations contain no HTTP
// or display concerns.
type ApplicationService interface {
	// Login verifies credentials and returns the identity shape plus role.
	Login(ctx context.Context, email, password string) (*LoginResult, error)

	// ListItems returns the available-item catalog.
	ListItems(ctx context.Context) (*ItemListResult, error)

	// CreateLedger opens a new working ledger of the given kind.
	CreateLedger(ctx context.Context, req CreateLedgerRequest, actor core.Actor) (*LedgerResult, error)

	// GetLedger returns one ledger with its lines and aggregates.
	GetLedger(ctx context.Context, ledgerID string) (*LedgerResult, error)

	// ListLedgers returns ledgers, optionally filtered by kind.
	ListLedgers(ctx context.Context, kind core.LedgerKind) (*LedgerListResult, error)

	// AddLine takes quantity of an item onto the ledger, merging same-SKU lines.
	AddLine(ctx context.Context, ledgerID string, req AddLineRequest) (*LedgerResult, error)

	// SetLineQuantity updates a line quantity; zero or negative removes the line.
	SetLineQuantity(ctx context.Context, ledgerID, lineID string, req SetQuantityRequest) (*LedgerResult, error)

	// RemoveLine deletes a line from a non-finalized ledger.
	RemoveLine(ctx context.Context, ledgerID, lineID string) (*LedgerResult, error)

	// ApplyLineDiscount sets a percentage discount on an active line.
	ApplyLineDiscount(ctx context.Context, ledgerID, lineID string, req LineDiscountRequest) (*LedgerResult, error)

	// SetAdjustments sets ledger-level discount and tax.
	SetAdjustments(ctx context.Context, ledgerID string, req AdjustmentsRequest) (*LedgerResult, error)

	// VoidLine, CancelLine, and CompLine apply terminal line transitions.
	VoidLine(ctx context.Context, ledgerID, lineID string, req LineStatusRequest) (*LedgerResult, error)
	CancelLine(ctx context.Context, ledgerID, lineID string, req LineStatusRequest) (*LedgerResult, error)
	CompLine(ctx context.Context, ledgerID, lineID string, req LineStatusRequest) (*LedgerResult, error)

	// SubmitRequest wraps a ledger snapshot into a pending purchase request.
	SubmitRequest(ctx context.Context, req SubmitRequest, actor core.Actor) (*RequestResult, error)

	// SetCharges sets the admin charge amount on a not-yet-paid request.
	SetCharges(ctx context.Context, requestID string, req ChargesRequest, actor core.Actor) (*RequestResult, error)

	// UnlockRequest transitions pending → unlocked (idempotent, role-gated).
	UnlockRequest(ctx context.Context, requestID string, actor core.Actor) (*RequestResult, error)

	// CompletePayment transitions unlocked → paid and emits the finalized transaction.
	CompletePayment(ctx context.Context, requestID string, req PaymentRequest, actor core.Actor) (*RequestResult, error)

	// GetRequest returns one purchase request.
	GetRequest(ctx context.Context, requestID string) (*RequestResult, error)

	// ListRequests returns requests, optionally filtered by status.
	ListRequests(ctx context.Context, status core.RequestStatus) (*RequestListResult, error)

	// OpenObligation recognizes a receivable or creditor balance.
	OpenObligation(ctx context.Context, req OpenObligationRequest, actor core.Actor) (*ObligationResult, error)

	// RecordSettlement appends a payment event against an obligation.
	RecordSettlement(ctx context.Context, obligationID string, req RecordSettlementRequest, actor core.Actor) (*ObligationResult, error)

	// GetObligation returns one obligation snapshot.
	GetObligation(ctx context.Context, obligationID string) (*ObligationResult, error)

	// ListObligations filters by side and derived status.
	ListObligations(ctx context.Context, side core.ObligationSide, status core.ObligationStatus) (*ObligationListResult, error)

	// SettlementHistory returns the audit history of one obligation.
	SettlementHistory(ctx context.Context, obligationID string) (*HistoryResult, error)

	// ObligationReport aggregates one side of the settlement ledger.
	ObligationReport(ctx context.Context, side core.ObligationSide, status core.ObligationStatus) (*core.ObligationReport, error)

	// SalesSummary aggregates ledgers of one kind.
	SalesSummary(ctx context.Context, kind core.LedgerKind) (*core.SalesSummary, error)

	// RequestPipeline counts purchase requests per workflow state.
	RequestPipeline(ctx context.Context) (*core.RequestPipeline, error)
}
