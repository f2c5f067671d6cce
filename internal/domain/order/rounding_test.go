package order

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/petrodist/fuel-orders/internal/domain/product"
)

func TestRound(t *testing.T) {
	tests := []struct {
		name  string
		price decimal.Decimal
		kind  product.Kind
		want  decimal.Decimal
	}{
		{"diesel rounds to whole units", d("399.00"), product.Diesel, d("399")},
		{"diesel half rounds up", d("2274.5"), product.Diesel, d("2275")},
		{"diesel below half rounds down", d("2274.3"), product.Diesel, d("2274")},
		{"gasoline rounds to two decimals", d("1137.625"), product.Gasoline, d("1137.63")},
		{"ethanol rounds down below half cent", d("348.234"), product.Ethanol, d("348.23")},
		{"lubricant keeps exact cents", d("248.00"), product.Lubricant, d("248.00")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Round(tt.price, tt.kind)
			assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
		})
	}
}

// Fixed discounts can push a total below zero. Negative totals round half
// away from zero, so the boundary cases mirror the positive ones.
func TestRound_NegativeTotals(t *testing.T) {
	tests := []struct {
		name  string
		price decimal.Decimal
		kind  product.Kind
		want  decimal.Decimal
	}{
		{"diesel negative half rounds away", d("-2.5"), product.Diesel, d("-3")},
		{"diesel negative below half rounds in", d("-2.4"), product.Diesel, d("-2")},
		{"gasoline negative half cent rounds away", d("-0.005"), product.Gasoline, d("-0.01")},
		{"gasoline negative below half cent rounds in", d("-0.004"), product.Gasoline, d("0")},
		{"lubricant negative keeps exact cents", d("-2.00"), product.Lubricant, d("-2.00")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Round(tt.price, tt.kind)
			assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
		})
	}
}

func TestRound_Idempotent(t *testing.T) {
	prices := []decimal.Decimal{
		d("399.004"), d("2274.3"), d("1137.625"), d("0.005"), d("-98.345"),
	}
	for _, kind := range product.Kinds() {
		for _, p := range prices {
			once := Round(p, kind)
			twice := Round(once, kind)
			assert.True(t, once.Equal(twice),
				"%s: round(%s) = %s but round twice = %s", kind, p, once, twice)
		}
	}
}

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}
