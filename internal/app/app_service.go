package app

import (
	"context"

	"retail-ledger/internal/core"
)

type appService struct {
	users       core.UserService
	items       core.ItemStore
	ledgers     core.LedgerService
	requests    core.RequestService
	settlements core.SettlementService
	reports     core.ReportingService
}

// NewAppService constructs the ApplicationService over the wired core services.
func NewAppService(
	users core.UserService,
	items core.ItemStore,
	ledgers core.LedgerService,
	requests core.RequestService,
	settlements core.SettlementService,
	reports core.ReportingService,
) ApplicationService {
	return &appService{
		users:       users,
		items:       items,
		ledgers:     ledgers,
		requests:    requests,
		settlements: settlements,
		reports:     reports,
	}
}

func (s *appService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	login, role, err := s.users.Authenticate(ctx, email, password)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Login: *login, Role: role}, nil
}

func (s *appService) ListItems(ctx context.Context) (*ItemListResult, error) {
	items, err := s.items.ListItems(ctx)
	if err != nil {
		return nil, err
	}
	return &ItemListResult{Items: items}, nil
}

// ── Ledgers ───────────────────────────────────────────────────────────────────

func (s *appService) CreateLedger(ctx context.Context, req CreateLedgerRequest, actor core.Actor) (*LedgerResult, error) {
	l, err := s.ledgers.Create(ctx, req.Kind, actor)
	if err != nil {
		return nil, err
	}
	return &LedgerResult{Ledger: l}, nil
}

func (s *appService) GetLedger(ctx context.Context, ledgerID string) (*LedgerResult, error) {
	l, err := s.ledgers.Get(ctx, ledgerID)
	if err != nil {
		return nil, err
	}
	return &LedgerResult{Ledger: l}, nil
}

func (s *appService) ListLedgers(ctx context.Context, kind core.LedgerKind) (*LedgerListResult, error) {
	ledgers, err := s.ledgers.List(ctx, kind)
	if err != nil {
		return nil, err
	}
	return &LedgerListResult{Ledgers: ledgers}, nil
}

func (s *appService) AddLine(ctx context.Context, ledgerID string, req AddLineRequest) (*LedgerResult, error) {
	l, err := s.ledgers.AddLine(ctx, ledgerID, req.SKU, req.Quantity)
	if err != nil {
		return nil, err
	}
	return &LedgerResult{Ledger: l}, nil
}

func (s *appService) SetLineQuantity(ctx context.Context, ledgerID, lineID string, req SetQuantityRequest) (*LedgerResult, error) {
	l, err := s.ledgers.SetQuantity(ctx, ledgerID, lineID, req.Quantity)
	if err != nil {
		return nil, err
	}
	return &LedgerResult{Ledger: l}, nil
}

func (s *appService) RemoveLine(ctx context.Context, ledgerID, lineID string) (*LedgerResult, error) {
	l, err := s.ledgers.RemoveLine(ctx, ledgerID, lineID)
	if err != nil {
		return nil, err
	}
	return &LedgerResult{Ledger: l}, nil
}

func (s *appService) ApplyLineDiscount(ctx context.Context, ledgerID, lineID string, req LineDiscountRequest) (*LedgerResult, error) {
	l, err := s.ledgers.ApplyDiscount(ctx, ledgerID, lineID, req.Percent)
	if err != nil {
		return nil, err
	}
	return &LedgerResult{Ledger: l}, nil
}

func (s *appService) SetAdjustments(ctx context.Context, ledgerID string, req AdjustmentsRequest) (*LedgerResult, error) {
	l, err := s.ledgers.SetAdjustments(ctx, ledgerID, req.Discount, req.Tax)
	if err != nil {
		return nil, err
	}
	return &LedgerResult{Ledger: l}, nil
}

func (s *appService) VoidLine(ctx context.Context, ledgerID, lineID string, req LineStatusRequest) (*LedgerResult, error) {
	l, err := s.ledgers.VoidLine(ctx, ledgerID, lineID, req.Reason)
	if err != nil {
		return nil, err
	}
	return &LedgerResult{Ledger: l}, nil
}

func (s *appService) CancelLine(ctx context.Context, ledgerID, lineID string, req LineStatusRequest) (*LedgerResult, error) {
	l, err := s.ledgers.CancelLine(ctx, ledgerID, lineID, req.Reason)
	if err != nil {
		return nil, err
	}
	return &LedgerResult{Ledger: l}, nil
}

func (s *appService) CompLine(ctx context.Context, ledgerID, lineID string, req LineStatusRequest) (*LedgerResult, error) {
	l, err := s.ledgers.ComplimentaryLine(ctx, ledgerID, lineID, req.Reason)
	if err != nil {
		return nil, err
	}
	return &LedgerResult{Ledger: l}, nil
}

// ── Purchase requests ─────────────────────────────────────────────────────────

func (s *appService) SubmitRequest(ctx context.Context, req SubmitRequest, actor core.Actor) (*RequestResult, error) {
	r, err := s.requests.Submit(ctx, req.LedgerID, req.CustomerName, actor)
	if err != nil {
		return nil, err
	}
	return &RequestResult{Request: r}, nil
}

func (s *appService) SetCharges(ctx context.Context, requestID string, req ChargesRequest, actor core.Actor) (*RequestResult, error) {
	r, err := s.requests.SetCharges(ctx, requestID, req.Amount, actor)
	if err != nil {
		return nil, err
	}
	return &RequestResult{Request: r}, nil
}

func (s *appService) UnlockRequest(ctx context.Context, requestID string, actor core.Actor) (*RequestResult, error) {
	r, err := s.requests.Unlock(ctx, requestID, actor)
	if err != nil {
		return nil, err
	}
	return &RequestResult{Request: r}, nil
}

func (s *appService) CompletePayment(ctx context.Context, requestID string, req PaymentRequest, actor core.Actor) (*RequestResult, error) {
	r, err := s.requests.CompletePayment(ctx, requestID, req.Method, actor)
	if err != nil {
		return nil, err
	}
	return &RequestResult{Request: r}, nil
}

func (s *appService) GetRequest(ctx context.Context, requestID string) (*RequestResult, error) {
	r, err := s.requests.Get(ctx, requestID)
	if err != nil {
		return nil, err
	}
	return &RequestResult{Request: r}, nil
}

func (s *appService) ListRequests(ctx context.Context, status core.RequestStatus) (*RequestListResult, error) {
	requests, err := s.requests.List(ctx, status)
	if err != nil {
		return nil, err
	}
	return &RequestListResult{Requests: requests}, nil
}

// ── Settlements ───────────────────────────────────────────────────────────────

func (s *appService) OpenObligation(ctx context.Context, req OpenObligationRequest, actor core.Actor) (*ObligationResult, error) {
	o, err := s.settlements.OpenObligation(ctx, req.Side, req.Counterparty, req.Amount, "")
	if err != nil {
		return nil, err
	}
	return &ObligationResult{Obligation: o.SnapshotView()}, nil
}

func (s *appService) RecordSettlement(ctx context.Context, obligationID string, req RecordSettlementRequest, actor core.Actor) (*ObligationResult, error) {
	o, err := s.settlements.RecordSettlement(ctx, obligationID, req.Amount, req.Method, req.Reference, actor.Name)
	if err != nil {
		return nil, err
	}
	return &ObligationResult{Obligation: o.SnapshotView()}, nil
}

func (s *appService) GetObligation(ctx context.Context, obligationID string) (*ObligationResult, error) {
	o, err := s.settlements.Get(ctx, obligationID)
	if err != nil {
		return nil, err
	}
	return &ObligationResult{Obligation: o.SnapshotView()}, nil
}

func (s *appService) ListObligations(ctx context.Context, side core.ObligationSide, status core.ObligationStatus) (*ObligationListResult, error) {
	obligations, err := s.settlements.List(ctx, side, status)
	if err != nil {
		return nil, err
	}
	result := &ObligationListResult{}
	for i := range obligations {
		result.Obligations = append(result.Obligations, obligations[i].SnapshotView())
	}
	return result, nil
}

func (s *appService) SettlementHistory(ctx context.Context, obligationID string) (*HistoryResult, error) {
	seq, err := s.settlements.History(ctx, obligationID)
	if err != nil {
		return nil, err
	}
	result := &HistoryResult{ObligationID: obligationID}
	for rec := range seq {
		result.Records = append(result.Records, rec)
	}
	return result, nil
}

// ── Reports ───────────────────────────────────────────────────────────────────

func (s *appService) ObligationReport(ctx context.Context, side core.ObligationSide, status core.ObligationStatus) (*core.ObligationReport, error) {
	return s.reports.ObligationReport(ctx, side, status)
}

func (s *appService) SalesSummary(ctx context.Context, kind core.LedgerKind) (*core.SalesSummary, error) {
	return s.reports.SalesSummary(ctx, kind)
}

func (s *appService) RequestPipeline(ctx context.Context) (*core.RequestPipeline, error) {
	return s.reports.RequestPipeline(ctx)
}
