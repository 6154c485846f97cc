package core

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// NewLedger creates an empty ledger owned by createdBy.
func NewLedger(kind LedgerKind, createdBy string) *Ledger {
	now := time.Now().UTC()
	return &Ledger{
		ID:        uuid.NewString(),
		Kind:      kind,
		Subtotal:  decimal.Zero,
		Discount:  decimal.Zero,
		Tax:       decimal.Zero,
		Total:     decimal.Zero,
		GivenAway: decimal.Zero,
		CreatedBy: createdBy,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// AddLine takes qty units of item onto the ledger. An existing active line for
// the same SKU is merged by incrementing its quantity; otherwise a new active
// line is appended. The combined quantity may never exceed the item's
// available quantity: the request is rejected, not clamped, so POS and
// posting flows behave identically.
func (l *Ledger) AddLine(item AvailableItem, qty int64) (*LineItem, error) {
	if err := l.mutable(); err != nil {
		return nil, err
	}
	if qty <= 0 {
		return nil, validationErrorf("quantity must be positive, got %d", qty)
	}
	sku := strings.ToUpper(strings.TrimSpace(item.SKU))
	if sku == "" {
		return nil, validationErrorf("item SKU is required")
	}

	if existing := l.activeLineBySKU(sku); existing != nil {
		combined := existing.Quantity + qty
		if combined > existing.AvailableQuantity {
			return nil, capacityErrorf("insufficient availability for %s: requested %d, available %d",
				sku, combined, existing.AvailableQuantity)
		}
		existing.Quantity = combined
		existing.LineTotal = LineTotal(existing.UnitPrice, existing.Quantity, existing.DiscountPercent)
		l.recompute()
		return existing, nil
	}

	if qty > item.AvailableQuantity {
		return nil, capacityErrorf("insufficient availability for %s: requested %d, available %d",
			sku, qty, item.AvailableQuantity)
	}

	line := LineItem{
		ID:                uuid.NewString(),
		SKU:               sku,
		Name:              item.Name,
		UnitPrice:         item.UnitPrice,
		Quantity:          qty,
		DiscountPercent:   decimal.Zero,
		LineTotal:         LineTotal(item.UnitPrice, qty, decimal.Zero),
		Status:            LineActive,
		AvailableQuantity: item.AvailableQuantity,
	}
	l.Lines = append(l.Lines, line)
	l.recompute()
	return &l.Lines[len(l.Lines)-1], nil
}

// SetQuantity changes an active line's quantity. qty <= 0 removes the line.
func (l *Ledger) SetQuantity(lineID string, qty int64) error {
	if err := l.mutable(); err != nil {
		return err
	}
	if qty <= 0 {
		return l.RemoveLine(lineID)
	}
	line, err := l.line(lineID)
	if err != nil {
		return err
	}
	if line.Status.Terminal() {
		return stateErrorf("line %s is %s and cannot be modified", lineID, line.Status)
	}
	if qty > line.AvailableQuantity {
		return capacityErrorf("insufficient availability for %s: requested %d, available %d",
			line.SKU, qty, line.AvailableQuantity)
	}
	line.Quantity = qty
	line.LineTotal = LineTotal(line.UnitPrice, qty, line.DiscountPercent)
	l.recompute()
	return nil
}

// RemoveLine deletes a line entirely. Only legal before finalization; a line
// on finalized history must be voided or cancelled instead.
func (l *Ledger) RemoveLine(lineID string) error {
	if err := l.mutable(); err != nil {
		return err
	}
	for i := range l.Lines {
		if l.Lines[i].ID == lineID {
			l.Lines = append(l.Lines[:i], l.Lines[i+1:]...)
			l.recompute()
			return nil
		}
	}
	return notFoundErrorf("line %s not found", lineID)
}

// ApplyDiscount sets a percentage discount on an active line. 0 < percent <= 100.
func (l *Ledger) ApplyDiscount(lineID string, percent decimal.Decimal) error {
	if err := l.mutable(); err != nil {
		return err
	}
	if !ValidDiscountPercent(percent) {
		return validationErrorf("discount percent must be in (0, 100], got %s", percent)
	}
	line, err := l.line(lineID)
	if err != nil {
		return err
	}
	if line.Status.Terminal() {
		return stateErrorf("line %s is %s and cannot be discounted", lineID, line.Status)
	}
	line.DiscountPercent = percent
	line.LineTotal = LineTotal(line.UnitPrice, line.Quantity, percent)
	l.recompute()
	return nil
}

// Void marks a line voided. The reason is mandatory and kept for audit; the
// line stays visible with zero contribution.
func (l *Ledger) Void(lineID, reason string) error {
	return l.transition(lineID, LineVoided, reason)
}

// Cancel marks a line cancelled. Same aggregate effect as Void; the audit
// classification differs.
func (l *Ledger) Cancel(lineID, reason string) error {
	return l.transition(lineID, LineCancelled, reason)
}

// MarkComplimentary removes the line's revenue contribution while keeping its
// value in the given-away tally for profitability reporting.
func (l *Ledger) MarkComplimentary(lineID, reason string) error {
	return l.transition(lineID, LineComplimentary, reason)
}

func (l *Ledger) transition(lineID string, to LineStatus, reason string) error {
	if strings.TrimSpace(reason) == "" {
		return validationErrorf("a reason is required to mark a line %s", to)
	}
	line, err := l.line(lineID)
	if err != nil {
		return err
	}
	if line.Status.Terminal() {
		return stateErrorf("line %s is already %s", lineID, line.Status)
	}
	line.Status = to
	line.Reason = reason
	l.recompute()
	return nil
}

// SetDiscount sets the ledger-level discount amount.
func (l *Ledger) SetDiscount(amount decimal.Decimal) error {
	if err := l.mutable(); err != nil {
		return err
	}
	if amount.IsNegative() {
		return validationErrorf("ledger discount cannot be negative, got %s", amount)
	}
	l.Discount = amount
	l.recompute()
	return nil
}

// SetTax sets the ledger-level tax amount.
func (l *Ledger) SetTax(amount decimal.Decimal) error {
	if err := l.mutable(); err != nil {
		return err
	}
	if amount.IsNegative() {
		return validationErrorf("ledger tax cannot be negative, got %s", amount)
	}
	l.Tax = amount
	l.recompute()
	return nil
}

// Finalize freezes the ledger as immutable history.
func (l *Ledger) Finalize() {
	l.Finalized = true
	l.UpdatedAt = time.Now().UTC()
}

// ActiveLineCount returns the number of lines still contributing to the subtotal.
func (l *Ledger) ActiveLineCount() int {
	n := 0
	for i := range l.Lines {
		if l.Lines[i].Status == LineActive {
			n++
		}
	}
	return n
}

// Snapshot returns a deep copy safe to hand to a workflow that must keep
// immutable evidence of what was requested.
func (l *Ledger) Snapshot() Ledger {
	cp := *l
	cp.Lines = make([]LineItem, len(l.Lines))
	copy(cp.Lines, l.Lines)
	return cp
}

// recompute derives Subtotal, GivenAway, and Total from the current line set.
// It is the only place aggregates are written.
func (l *Ledger) recompute() {
	subtotal := decimal.Zero
	given := decimal.Zero
	for i := range l.Lines {
		switch l.Lines[i].Status {
		case LineActive:
			subtotal = subtotal.Add(l.Lines[i].LineTotal)
		case LineComplimentary:
			given = given.Add(l.Lines[i].LineTotal)
		}
	}
	l.Subtotal = subtotal
	l.GivenAway = given
	l.Total = ClampNonNegative(subtotal.Sub(l.Discount).Add(l.Tax))
	l.UpdatedAt = time.Now().UTC()
}

func (l *Ledger) mutable() error {
	if l.Finalized {
		return stateErrorf("ledger %s is finalized", l.ID)
	}
	return nil
}

func (l *Ledger) line(id string) (*LineItem, error) {
	for i := range l.Lines {
		if l.Lines[i].ID == id {
			return &l.Lines[i], nil
		}
	}
	return nil, notFoundErrorf("line %s not found", id)
}

func (l *Ledger) activeLineBySKU(sku string) *LineItem {
	for i := range l.Lines {
		if l.Lines[i].SKU == sku && l.Lines[i].Status == LineActive {
			return &l.Lines[i]
		}
	}
	return nil
}
