package core

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// RequestStatus is the purchase request lifecycle state.
// Transitions are monotonic and forward-only:
//
//	pending --unlock--> unlocked --pay--> paid
//
// No transition skips a state and none run backwards.
type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestUnlocked RequestStatus = "unlocked"
	RequestPaid     RequestStatus = "paid"
)

// PurchaseRequest wraps an immutable ledger snapshot awaiting review, pricing,
// unlock, and payment. The snapshot is evidence of what was requested: charges
// adjust the payable total without ever touching it.
type PurchaseRequest struct {
	ID           string          `json:"id"`
	Snapshot     Ledger          `json:"snapshot"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	Charges      decimal.Decimal `json:"charges"`
	Status       RequestStatus   `json:"status"`
	CustomerName string          `json:"customer_name,omitempty"`
	SubmittedBy  string          `json:"submitted_by"`
	SubmittedAt  time.Time       `json:"submitted_at"`
	UnlockedAt   *time.Time      `json:"unlocked_at,omitempty"`
	PaidAt       *time.Time      `json:"paid_at,omitempty"`
	Method       PaymentMethod   `json:"payment_method,omitempty"`
}

// Payable is the amount due: snapshot subtotal plus admin-set charges.
func (r *PurchaseRequest) Payable() decimal.Decimal {
	return r.Subtotal.Add(r.Charges)
}

// RequestService drives the purchase request workflow.
type RequestService interface {
	// Submit wraps a ledger snapshot into a pending request. Fails when the
	// ledger has no active lines.
	Submit(ctx context.Context, ledgerID, customerName string, actor Actor) (*PurchaseRequest, error)

	// SetCharges sets the admin charge amount (>= 0). Allowed while pending or
	// unlocked, never after payment.
	SetCharges(ctx context.Context, requestID string, amount decimal.Decimal, actor Actor) (*PurchaseRequest, error)

	// Unlock transitions pending → unlocked. Requires an unlock-capable role.
	// Unlocking an already-unlocked request is a no-op.
	Unlock(ctx context.Context, requestID string, actor Actor) (*PurchaseRequest, error)

	// CompletePayment transitions unlocked → paid, emits the finalized
	// transaction, and opens a receivable when the method defers settlement.
	CompletePayment(ctx context.Context, requestID string, method PaymentMethod, actor Actor) (*PurchaseRequest, error)

	// Get returns a request by ID.
	Get(ctx context.Context, requestID string) (*PurchaseRequest, error)

	// List returns requests filtered by status; empty status means all.
	List(ctx context.Context, status RequestStatus) ([]PurchaseRequest, error)
}
