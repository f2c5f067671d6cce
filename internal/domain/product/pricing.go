package product

import (
	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// ErrInvalidQuantity is returned when a quantity is zero or negative.
var ErrInvalidQuantity = errors.New("quantity must be greater than 0")

// TierType enumerates how a volume tier reduces the line total.
type TierType string

const (
	// TierPercentage multiplies the total by (1 - value/100).
	TierPercentage TierType = "percentage"
	// TierFixed subtracts a fixed amount from the total. The result is not
	// floored at zero; a negative total is allowed and surfaces downstream.
	TierFixed TierType = "fixed"
)

// Tier is a single volume-discount step. It applies when the ordered
// quantity is strictly greater than Threshold.
type Tier struct {
	Threshold int
	Type      TierType
	Value     decimal.Decimal
}

// PriceList maps each product kind to its base unit price and volume tiers.
// Tiers are kept sorted by ascending threshold; the highest matching tier
// wins and tiers are never combined.
type PriceList struct {
	prices map[Kind]decimal.Decimal
	tiers  map[Kind][]Tier
}

// NewPriceList builds a price list from explicit tables. Tier slices must be
// sorted by ascending threshold.
func NewPriceList(prices map[Kind]decimal.Decimal, tiers map[Kind][]Tier) *PriceList {
	return &PriceList{prices: prices, tiers: tiers}
}

// DefaultPriceList returns the distributor's standard catalog.
func DefaultPriceList() *PriceList {
	return NewPriceList(
		map[Kind]decimal.Decimal{
			Diesel:    decimal.RequireFromString("3.99"),
			Gasoline:  decimal.RequireFromString("5.19"),
			Ethanol:   decimal.RequireFromString("3.59"),
			Lubricant: decimal.RequireFromString("25.00"),
		},
		map[Kind][]Tier{
			Diesel: {
				{Threshold: 500, Type: TierPercentage, Value: decimal.NewFromInt(5)},
				{Threshold: 1000, Type: TierPercentage, Value: decimal.NewFromInt(10)},
			},
			Gasoline: {
				{Threshold: 200, Type: TierFixed, Value: decimal.RequireFromString("100.00")},
			},
			Ethanol: {
				{Threshold: 80, Type: TierPercentage, Value: decimal.NewFromInt(3)},
			},
		},
	)
}

// BasePrice returns the unit price for the given kind.
func (l *PriceList) BasePrice(kind Kind) (decimal.Decimal, error) {
	price, ok := l.prices[kind]
	if !ok {
		return decimal.Decimal{}, &UnknownKindError{Kind: string(kind)}
	}
	return price, nil
}

// Tiers returns the volume tiers for the given kind. The returned slice is
// shared and must not be mutated.
func (l *PriceList) Tiers(kind Kind) []Tier {
	return l.tiers[kind]
}

var hundred = decimal.NewFromInt(100)

// VolumeAdjustedTotal computes basePrice * quantity and applies the best
// matching volume tier for the kind, if any.
func (l *PriceList) VolumeAdjustedTotal(kind Kind, quantity int) (decimal.Decimal, error) {
	if quantity <= 0 {
		return decimal.Decimal{}, ErrInvalidQuantity
	}

	base, err := l.BasePrice(kind)
	if err != nil {
		return decimal.Decimal{}, err
	}

	total := base.Mul(decimal.NewFromInt(int64(quantity)))

	// Highest qualifying tier wins; tiers are sorted ascending.
	var matched *Tier
	for i := range l.tiers[kind] {
		t := &l.tiers[kind][i]
		if quantity > t.Threshold {
			matched = t
		}
	}
	if matched == nil {
		return total, nil
	}

	switch matched.Type {
	case TierPercentage:
		return total.Mul(hundred.Sub(matched.Value)).Div(hundred), nil
	case TierFixed:
		return total.Sub(matched.Value), nil
	default:
		return decimal.Decimal{}, errors.Errorf("unsupported tier type: %q", matched.Type)
	}
}
