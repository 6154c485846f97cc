package app

import (
	"github.com/shopspring/decimal"

	"retail-ledger/internal/core"
)

// CreateLedgerRequest opens a new working ledger.
type CreateLedgerRequest struct {
	Kind core.LedgerKind `json:"kind"`
}

// AddLineRequest takes quantity of an item onto a ledger.
type AddLineRequest struct {
	SKU      string `json:"sku"`
	Quantity int64  `json:"quantity"`
}

// SetQuantityRequest changes a line's quantity; zero or negative removes it.
type SetQuantityRequest struct {
	Quantity int64 `json:"quantity"`
}

// LineDiscountRequest applies a percentage discount to one line.
type LineDiscountRequest struct {
	Percent decimal.Decimal `json:"percent"`
}

// AdjustmentsRequest sets ledger-level discount and tax amounts.
type AdjustmentsRequest struct {
	Discount decimal.Decimal `json:"discount"`
	Tax      decimal.Decimal `json:"tax"`
}

// LineStatusRequest carries the mandatory reason for a status transition.
type LineStatusRequest struct {
	Reason string `json:"reason"`
}

// SubmitRequest wraps a ledger into a pending purchase request.
type SubmitRequest struct {
	LedgerID     string `json:"ledger_id"`
	CustomerName string `json:"customer_name,omitempty"`
}

// ChargesRequest sets the admin charge amount on a purchase request.
type ChargesRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// PaymentRequest completes payment on an unlocked request.
type PaymentRequest struct {
	Method core.PaymentMethod `json:"method"`
}

// OpenObligationRequest recognizes a new outstanding balance.
type OpenObligationRequest struct {
	Side         core.ObligationSide `json:"side"`
	Counterparty string              `json:"counterparty"`
	Amount       decimal.Decimal     `json:"amount"`
}

// RecordSettlementRequest appends a payment event to an obligation.
type RecordSettlementRequest struct {
	Amount    decimal.Decimal    `json:"amount"`
	Method    core.PaymentMethod `json:"method"`
	Reference string             `json:"reference,omitempty"`
}
