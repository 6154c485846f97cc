package core

import (
	"context"
	"iter"
	"time"

	"github.com/shopspring/decimal"
)

// ObligationSide distinguishes money owed to us (receivable) from money we
// owe (creditor). Both sides share the same settlement mechanics.
type ObligationSide string

const (
	SideReceivable ObligationSide = "receivable"
	SideCreditor   ObligationSide = "creditor"
)

// ObligationStatus is derived, never stored authoritatively. It is a pure
// function of (OriginalAmount, Σ settlements):
//
//	remaining == original → unpaid
//	0 < remaining < original → partially_paid
//	remaining == 0 → fully_paid
type ObligationStatus string

const (
	StatusUnpaid        ObligationStatus = "unpaid"
	StatusPartiallyPaid ObligationStatus = "partially_paid"
	StatusFullyPaid     ObligationStatus = "fully_paid"
)

// SettlementRecord is one immutable payment event against an obligation.
// Records are appended in recording order and never mutated or removed.
type SettlementRecord struct {
	ID         string          `json:"id"`
	Amount     decimal.Decimal `json:"amount"`
	Date       time.Time       `json:"date"`
	Method     PaymentMethod   `json:"method"`
	Reference  string          `json:"reference,omitempty"`
	RecordedBy string          `json:"recorded_by"`
}

// Obligation tracks an outstanding balance against a chronological list of
// partial settlements.
// Invariant: RemainingBalance = max(0, OriginalAmount − Σ settlements.Amount),
// and Status derives deterministically from that value. Any mutation of
// Settlements recomputes both in the same operation.
type Obligation struct {
	ID               string             `json:"id"`
	Side             ObligationSide     `json:"side"`
	CounterpartyName string             `json:"counterparty_name"`
	OriginalAmount   decimal.Decimal    `json:"original_amount"`
	Settlements      []SettlementRecord `json:"settlements"`
	RemainingBalance decimal.Decimal    `json:"remaining_balance"`
	Status           ObligationStatus   `json:"status"`
	// SourceRequestID links a receivable back to the paid purchase request
	// that opened it, when there is one.
	SourceRequestID string    `json:"source_request_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ObligationSnapshot is the read shape consumed by list and report views.
type ObligationSnapshot struct {
	ID               string             `json:"id"`
	CounterpartyName string             `json:"counterpartyName"`
	OriginalAmount   decimal.Decimal    `json:"originalAmount"`
	RemainingBalance decimal.Decimal    `json:"remainingBalance"`
	Status           ObligationStatus   `json:"status"`
	Settlements      []SettlementRecord `json:"settlements"`
}

// SettlementService manages obligations and their settlement history.
type SettlementService interface {
	// OpenObligation recognizes a new outstanding balance. amount must be
	// positive. sourceRequestID may be empty.
	OpenObligation(ctx context.Context, side ObligationSide, counterparty string, amount decimal.Decimal, sourceRequestID string) (*Obligation, error)

	// RecordSettlement appends a payment event. amount must be positive; an
	// amount exceeding the remaining balance is clamped so the balance floors
	// at zero, and a settlement against an already fully paid obligation is
	// rejected.
	RecordSettlement(ctx context.Context, obligationID string, amount decimal.Decimal, method PaymentMethod, reference, recordedBy string) (*Obligation, error)

	// History returns the settlement records for an obligation as a lazy,
	// finite, restartable sequence in insertion order.
	History(ctx context.Context, obligationID string) (iter.Seq[SettlementRecord], error)

	// Get returns one obligation.
	Get(ctx context.Context, obligationID string) (*Obligation, error)

	// List filters by side and derived status; zero values mean no filter.
	List(ctx context.Context, side ObligationSide, status ObligationStatus) ([]Obligation, error)
}
