package core

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type requestService struct {
	ledgers     LedgerStore
	requests    RequestStore
	settlements SettlementService
	sink        TransactionSink
}

// NewRequestService constructs a RequestService. sink may be nil when no
// receipt collaborator is wired; settlements must not be nil.
func NewRequestService(ledgers LedgerStore, requests RequestStore, settlements SettlementService, sink TransactionSink) RequestService {
	return &requestService{
		ledgers:     ledgers,
		requests:    requests,
		settlements: settlements,
		sink:        sink,
	}
}

func (s *requestService) Submit(ctx context.Context, ledgerID, customerName string, actor Actor) (*PurchaseRequest, error) {
	// Finalize the source ledger first: once submitted it is evidence and may
	// no longer be structurally edited.
	ledger, err := s.ledgers.UpdateLedger(ctx, ledgerID, func(l *Ledger) error {
		if l.ActiveLineCount() == 0 {
			return validationErrorf("ledger %s has no active lines", ledgerID)
		}
		l.Finalize()
		return nil
	})
	if err != nil {
		return nil, err
	}

	req := &PurchaseRequest{
		ID:           uuid.NewString(),
		Snapshot:     ledger.Snapshot(),
		Subtotal:     ledger.Subtotal,
		Charges:      decimal.Zero,
		Status:       RequestPending,
		CustomerName: customerName,
		SubmittedBy:  actor.Name,
		SubmittedAt:  time.Now().UTC(),
	}
	if err := s.requests.CreateRequest(ctx, req); err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	return req, nil
}

func (s *requestService) SetCharges(ctx context.Context, requestID string, amount decimal.Decimal, actor Actor) (*PurchaseRequest, error) {
	if amount.IsNegative() {
		return nil, validationErrorf("charges cannot be negative, got %s", amount)
	}
	return s.requests.UpdateRequest(ctx, requestID, func(r *PurchaseRequest) error {
		if r.Status == RequestPaid {
			return stateErrorf("request %s is paid; charges are frozen", requestID)
		}
		r.Charges = amount
		return nil
	})
}

func (s *requestService) Unlock(ctx context.Context, requestID string, actor Actor) (*PurchaseRequest, error) {
	if !CanUnlock(actor.Role) {
		return nil, stateErrorf("role %s may not unlock requests", actor.Role)
	}
	return s.requests.UpdateRequest(ctx, requestID, func(r *PurchaseRequest) error {
		switch r.Status {
		case RequestUnlocked:
			// Idempotent: repeated unlocks change nothing.
			return nil
		case RequestPaid:
			return stateErrorf("request %s is already paid", requestID)
		}
		now := time.Now().UTC()
		r.Status = RequestUnlocked
		r.UnlockedAt = &now
		return nil
	})
}

func (s *requestService) CompletePayment(ctx context.Context, requestID string, method PaymentMethod, actor Actor) (*PurchaseRequest, error) {
	switch method {
	case PayCash, PayCard, PayMobile, PayCredit:
	default:
		return nil, validationErrorf("unknown payment method %q", method)
	}

	req, err := s.requests.UpdateRequest(ctx, requestID, func(r *PurchaseRequest) error {
		switch r.Status {
		case RequestPending:
			return stateErrorf("request %s is not unlocked", requestID)
		case RequestPaid:
			return stateErrorf("request %s is already paid", requestID)
		}
		now := time.Now().UTC()
		r.Status = RequestPaid
		r.PaidAt = &now
		r.Method = method
		return nil
	})
	if err != nil {
		return nil, err
	}

	if method.DeferredSettlement() {
		counterparty := req.CustomerName
		if counterparty == "" {
			counterparty = req.SubmittedBy
		}
		if _, err := s.settlements.OpenObligation(ctx, SideReceivable, counterparty, req.Payable(), req.ID); err != nil {
			return nil, fmt.Errorf("open receivable for request %s: %w", requestID, err)
		}
	}

	if s.sink != nil {
		s.sink.TransactionFinalized(FinalizedTransaction{
			ID:            req.ID,
			Lines:         req.Snapshot.Lines,
			Total:         req.Payable(),
			PaymentMethod: method,
			Timestamp:     *req.PaidAt,
		})
	}
	return req, nil
}

func (s *requestService) Get(ctx context.Context, requestID string) (*PurchaseRequest, error) {
	return s.requests.GetRequest(ctx, requestID)
}

func (s *requestService) List(ctx context.Context, status RequestStatus) ([]PurchaseRequest, error) {
	return s.requests.ListRequests(ctx, status)
}
