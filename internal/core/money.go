package core

import (
	"github.com/shopspring/decimal"
)

// Monetary amounts are decimal.Decimal throughout. Line and ledger totals are
// rounded to 2 places at computation time so aggregates never accumulate
// sub-cent drift.

var hundred = decimal.NewFromInt(100)

// LineTotal computes unitPrice * qty * (1 - discountPercent/100), rounded to
// 2 decimal places. discountPercent of zero means no discount.
func LineTotal(unitPrice decimal.Decimal, qty int64, discountPercent decimal.Decimal) decimal.Decimal {
	gross := unitPrice.Mul(decimal.NewFromInt(qty))
	if discountPercent.IsZero() {
		return gross.Round(2)
	}
	factor := decimal.NewFromInt(1).Sub(discountPercent.Div(hundred))
	return gross.Mul(factor).Round(2)
}

// ValidDiscountPercent reports whether p is a legal line discount: 0 < p <= 100.
func ValidDiscountPercent(p decimal.Decimal) bool {
	return p.IsPositive() && p.LessThanOrEqual(hundred)
}

// ClampNonNegative floors v at zero. Ledger totals and remaining balances
// never go negative.
func ClampNonNegative(v decimal.Decimal) decimal.Decimal {
	if v.IsNegative() {
		return decimal.Zero
	}
	return v
}
