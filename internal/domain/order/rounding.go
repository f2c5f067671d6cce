package order

import (
	"github.com/shopspring/decimal"

	"github.com/petrodist/fuel-orders/internal/domain/product"
)

// Round applies the product-specific rounding rule to a computed price.
// Diesel totals round to the whole unit; every other kind rounds to two
// decimal places. Rounding is half away from zero (half-up for the
// non-negative totals the pipeline normally produces), on decimals, never
// on binary floats, and is idempotent.
func Round(price decimal.Decimal, kind product.Kind) decimal.Decimal {
	if kind == product.Diesel {
		return price.Round(0)
	}
	return price.Round(2)
}
