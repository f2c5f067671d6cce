package coupon

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/petrodist/fuel-orders/internal/domain/product"
)

var hundred = decimal.NewFromInt(100)

// Engine applies coupon rules to computed prices. It holds a fixed rule set
// and has no other state; Apply is a pure function of its inputs.
type Engine struct {
	rules []Rule
}

// NewEngine creates an Engine over the given rule set. A nil or empty slice
// selects the builtin coupon set.
func NewEngine(rules []Rule) *Engine {
	if len(rules) == 0 {
		rules = BuiltinRules()
	}
	return &Engine{rules: rules}
}

// Apply discounts price using the rule matching code, if any. The code is
// matched case-insensitively. An empty code, an unknown code, or a rule
// restricted to a different product kind all leave the price unchanged;
// coupon application never fails.
func (e *Engine) Apply(price decimal.Decimal, code string, kind product.Kind) decimal.Decimal {
	if code == "" {
		return price
	}

	code = strings.ToUpper(strings.TrimSpace(code))
	for i := range e.rules {
		rule := &e.rules[i]
		if strings.ToUpper(rule.Code) != code {
			continue
		}
		if rule.Product != "" && rule.Product != kind {
			return price
		}
		return applyRule(rule, price)
	}
	return price
}

func applyRule(rule *Rule, price decimal.Decimal) decimal.Decimal {
	switch rule.Type {
	case DiscountPercentage:
		return price.Mul(hundred.Sub(rule.Value)).Div(hundred)
	case DiscountFixed:
		return price.Sub(rule.Value)
	default:
		return price
	}
}
