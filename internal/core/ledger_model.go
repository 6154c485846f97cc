package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineStatus is the lifecycle state of a single ledger line.
// active is the only non-terminal state:
//
//	active → voided | cancelled | complimentary
//
// Terminal lines stay on the ledger for audit but stop contributing to the
// subtotal. Complimentary lines additionally accrue into the given-away tally
// so profitability reports keep cost visibility.
type LineStatus string

const (
	LineActive        LineStatus = "active"
	LineVoided        LineStatus = "voided"
	LineCancelled     LineStatus = "cancelled"
	LineComplimentary LineStatus = "complimentary"
)

// Terminal reports whether the status permits no further transitions.
func (s LineStatus) Terminal() bool { return s != LineActive }

// LedgerKind distinguishes the workflows that own a ledger. All kinds share
// the same aggregation rules; the kind matters for reporting and for which
// downstream workflow may consume the ledger.
type LedgerKind string

const (
	KindSale        LedgerKind = "sale"
	KindPosting     LedgerKind = "posting"
	KindRequisition LedgerKind = "requisition"
)

// LineItem is one priced row on a ledger.
// Invariant: for an active line, LineTotal = UnitPrice * Quantity *
// (1 - DiscountPercent/100). Non-active lines retain their last computed
// LineTotal for audit display but contribute zero to the subtotal.
type LineItem struct {
	ID              string          `json:"id"`
	SKU             string          `json:"sku"`
	Name            string          `json:"name"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	Quantity        int64           `json:"quantity"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	LineTotal       decimal.Decimal `json:"line_total"`
	Status          LineStatus      `json:"status"`
	Reason          string          `json:"reason,omitempty"`
	// AvailableQuantity is the stock ceiling captured when the line was added,
	// bounding later quantity increases.
	AvailableQuantity int64 `json:"available_quantity"`
}

// Ledger is the mutable line collection for one in-progress transaction.
// Subtotal, Total, and GivenAway are derived: they are recomputed from the
// line set on every mutation and never adjusted independently.
//
// Once Finalized the ledger is immutable history; line removal is refused and
// only status transitions recorded before finalization remain visible.
type Ledger struct {
	ID        string          `json:"id"`
	Kind      LedgerKind      `json:"kind"`
	Lines     []LineItem      `json:"lines"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Discount  decimal.Decimal `json:"discount"`
	Tax       decimal.Decimal `json:"tax"`
	Total     decimal.Decimal `json:"total"`
	GivenAway decimal.Decimal `json:"given_away"`
	Finalized bool            `json:"finalized"`
	CreatedBy string          `json:"created_by,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
