package coupon

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/petrodist/fuel-orders/internal/domain/product"
)

// DiscountType enumerates the supported coupon discount strategies.
type DiscountType string

const (
	// DiscountPercentage multiplies the price by (1 - value/100).
	DiscountPercentage DiscountType = "percentage"
	// DiscountFixed subtracts a fixed amount from the price.
	DiscountFixed DiscountType = "fixed"
)

// Rule defines a single coupon: its code, discount behaviour, and an
// optional product restriction. A zero Product means the rule applies to
// every kind.
type Rule struct {
	Code        string
	Type        DiscountType
	Value       decimal.Decimal
	Product     product.Kind
	Description string
}

// BuiltinRules returns the distributor's closed coupon set. It is the
// fallback when no coupon store is configured.
func BuiltinRules() []Rule {
	return []Rule{
		{
			Code:        "MEGA10",
			Type:        DiscountPercentage,
			Value:       decimal.NewFromInt(10),
			Description: "10% off any order",
		},
		{
			Code:        "NOVO5",
			Type:        DiscountPercentage,
			Value:       decimal.NewFromInt(5),
			Description: "New customer: 5% off",
		},
		{
			Code:        "LUB2",
			Type:        DiscountFixed,
			Value:       decimal.RequireFromString("2.00"),
			Product:     product.Lubricant,
			Description: "R$2.00 off lubricant orders",
		},
	}
}

// Repository provides lookup of active coupon rules from storage.
type Repository interface {
	ListActive(ctx context.Context) ([]Rule, error)
}
