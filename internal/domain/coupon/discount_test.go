package coupon

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/petrodist/fuel-orders/internal/domain/product"
)

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func TestApply(t *testing.T) {
	engine := NewEngine(nil)

	tests := []struct {
		name  string
		price decimal.Decimal
		code  string
		kind  product.Kind
		want  decimal.Decimal
	}{
		{"empty code is a no-op", d("100.00"), "", product.Diesel, d("100.00")},
		{"MEGA10 takes 10% off", d("100.00"), "MEGA10", product.Diesel, d("90.00")},
		{"NOVO5 takes 5% off", d("1197.50"), "NOVO5", product.Gasoline, d("1137.625")},
		{"LUB2 subtracts 2.00 from lubricant", d("250.00"), "LUB2", product.Lubricant, d("248.00")},
		{"LUB2 ignored for other kinds", d("250.00"), "LUB2", product.Diesel, d("250.00")},
		{"unknown code is a no-op", d("100.00"), "BOGUS", product.Diesel, d("100.00")},
		{"match is case-insensitive", d("100.00"), "mega10", product.Ethanol, d("90.00")},
		{"surrounding whitespace is ignored", d("100.00"), "  NOVO5 ", product.Diesel, d("95.00")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := engine.Apply(tt.price, tt.code, tt.kind)
			assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
		})
	}
}

// Codes outside the closed set leave the price unchanged for every kind.
func TestApply_UnknownCodeNoOpAllKinds(t *testing.T) {
	engine := NewEngine(nil)
	price := d("123.45")

	for _, kind := range product.Kinds() {
		for _, code := range []string{"NOPE", "MEGA100", "LUB", "novo50"} {
			got := engine.Apply(price, code, kind)
			assert.True(t, price.Equal(got), "kind %s code %s changed price to %s", kind, code, got)
		}
	}
}

func TestApply_CustomRules(t *testing.T) {
	engine := NewEngine([]Rule{
		{Code: "FLAT50", Type: DiscountFixed, Value: d("50.00")},
	})

	got := engine.Apply(d("40.00"), "FLAT50", product.Diesel)
	assert.True(t, d("-10.00").Equal(got), "fixed discounts may go negative, got %s", got)

	// Builtin rules are not present when a custom set is supplied.
	got = engine.Apply(d("100.00"), "MEGA10", product.Diesel)
	assert.True(t, d("100.00").Equal(got))
}
