package core

import (
	"context"
	"fmt"
	"iter"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DeriveObligationStatus is the pure projection from amounts to status. Every
// code path that touches Settlements goes through recomputeBalance, which
// calls this, so status can never drift from the settlement list.
func DeriveObligationStatus(original, remaining decimal.Decimal) ObligationStatus {
	switch {
	case remaining.IsZero():
		return StatusFullyPaid
	case remaining.LessThan(original):
		return StatusPartiallyPaid
	default:
		return StatusUnpaid
	}
}

func (o *Obligation) recomputeBalance() {
	paid := decimal.Zero
	for i := range o.Settlements {
		paid = paid.Add(o.Settlements[i].Amount)
	}
	o.RemainingBalance = ClampNonNegative(o.OriginalAmount.Sub(paid))
	o.Status = DeriveObligationStatus(o.OriginalAmount, o.RemainingBalance)
	o.UpdatedAt = time.Now().UTC()
}

// SnapshotView returns the read shape for list/report consumers.
func (o *Obligation) SnapshotView() ObligationSnapshot {
	records := make([]SettlementRecord, len(o.Settlements))
	copy(records, o.Settlements)
	return ObligationSnapshot{
		ID:               o.ID,
		CounterpartyName: o.CounterpartyName,
		OriginalAmount:   o.OriginalAmount,
		RemainingBalance: o.RemainingBalance,
		Status:           o.Status,
		Settlements:      records,
	}
}

type settlementService struct {
	obligations ObligationStore
}

// NewSettlementService constructs a SettlementService over the given store.
func NewSettlementService(obligations ObligationStore) SettlementService {
	return &settlementService{obligations: obligations}
}

func (s *settlementService) OpenObligation(ctx context.Context, side ObligationSide, counterparty string, amount decimal.Decimal, sourceRequestID string) (*Obligation, error) {
	if side != SideReceivable && side != SideCreditor {
		return nil, validationErrorf("unknown obligation side %q", side)
	}
	counterparty = strings.TrimSpace(counterparty)
	if counterparty == "" {
		return nil, validationErrorf("counterparty name is required")
	}
	if !amount.IsPositive() {
		return nil, validationErrorf("obligation amount must be positive, got %s", amount)
	}

	now := time.Now().UTC()
	o := &Obligation{
		ID:               uuid.NewString(),
		Side:             side,
		CounterpartyName: counterparty,
		OriginalAmount:   amount.Round(2),
		RemainingBalance: amount.Round(2),
		Status:           StatusUnpaid,
		SourceRequestID:  sourceRequestID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := s.obligations.CreateObligation(ctx, o); err != nil {
		return nil, fmt.Errorf("create obligation: %w", err)
	}
	return o, nil
}

func (s *settlementService) RecordSettlement(ctx context.Context, obligationID string, amount decimal.Decimal, method PaymentMethod, reference, recordedBy string) (*Obligation, error) {
	if !amount.IsPositive() {
		return nil, validationErrorf("settlement amount must be positive, got %s", amount)
	}
	if strings.TrimSpace(recordedBy) == "" {
		return nil, validationErrorf("recordedBy is required")
	}

	return s.obligations.UpdateObligation(ctx, obligationID, func(o *Obligation) error {
		if o.Status == StatusFullyPaid {
			return stateErrorf("obligation %s is fully paid; no further settlements accepted", obligationID)
		}
		// Clamp the final installment: the recorded amount is what actually
		// applied against the balance. Excess is not tracked as credit.
		applied := amount.Round(2)
		if applied.GreaterThan(o.RemainingBalance) {
			applied = o.RemainingBalance
		}
		o.Settlements = append(o.Settlements, SettlementRecord{
			ID:         uuid.NewString(),
			Amount:     applied,
			Date:       time.Now().UTC(),
			Method:     method,
			Reference:  reference,
			RecordedBy: recordedBy,
		})
		o.recomputeBalance()
		return nil
	})
}

func (s *settlementService) History(ctx context.Context, obligationID string) (iter.Seq[SettlementRecord], error) {
	o, err := s.obligations.GetObligation(ctx, obligationID)
	if err != nil {
		return nil, err
	}
	// Copy once so the sequence is restartable and unaffected by later
	// settlements against the same obligation.
	records := make([]SettlementRecord, len(o.Settlements))
	copy(records, o.Settlements)
	return func(yield func(SettlementRecord) bool) {
		for _, r := range records {
			if !yield(r) {
				return
			}
		}
	}, nil
}

func (s *settlementService) Get(ctx context.Context, obligationID string) (*Obligation, error) {
	return s.obligations.GetObligation(ctx, obligationID)
}

func (s *settlementService) List(ctx context.Context, side ObligationSide, status ObligationStatus) ([]Obligation, error) {
	return s.obligations.ListObligations(ctx, side, status)
}
