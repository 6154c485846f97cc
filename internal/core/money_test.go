package core_test

import (
	"testing"

	"retail-ledger/internal/core"

	"github.com/shopspring/decimal"
)

func TestLineTotal(t *testing.T) {
	tests := []struct {
		name            string
		unitPrice       string
		qty             int64
		discountPercent string
		want            string
	}{
		{"No discount", "100.00", 2, "0", "200.00"},
		{"Ten percent off", "100.00", 2, "10", "180.00"},
		{"Full discount", "50.00", 3, "100", "0.00"},
		{"Rounds to two places", "3.33", 3, "15", "8.49"},
		{"Single unit", "9.99", 1, "0", "9.99"},
		{"Fractional price with discount", "18.50", 4, "25", "55.50"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := core.LineTotal(
				decimal.RequireFromString(tt.unitPrice),
				tt.qty,
				decimal.RequireFromString(tt.discountPercent),
			)
			want := decimal.RequireFromString(tt.want)
			if !got.Equal(want) {
				t.Errorf("LineTotal = %s, want %s", got, want)
			}
		})
	}
}

func TestValidDiscountPercent(t *testing.T) {
	tests := []struct {
		percent string
		want    bool
	}{
		{"0", false},
		{"-5", false},
		{"0.01", true},
		{"50", true},
		{"100", true},
		{"100.01", false},
	}

	for _, tt := range tests {
		got := core.ValidDiscountPercent(decimal.RequireFromString(tt.percent))
		if got != tt.want {
			t.Errorf("ValidDiscountPercent(%s) = %v, want %v", tt.percent, got, tt.want)
		}
	}
}

func TestClampNonNegative(t *testing.T) {
	if got := core.ClampNonNegative(decimal.RequireFromString("-3.50")); !got.IsZero() {
		t.Errorf("expected negative value clamped to zero, got %s", got)
	}
	if got := core.ClampNonNegative(decimal.RequireFromString("7.25")); !got.Equal(decimal.RequireFromString("7.25")) {
		t.Errorf("expected positive value unchanged, got %s", got)
	}
}
