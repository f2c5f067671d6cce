package product

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func TestParseKind(t *testing.T) {
	for _, kind := range Kinds() {
		k, err := ParseKind(string(kind))
		require.NoError(t, err)
		assert.Equal(t, kind, k)
	}

	_, err := ParseKind("kerosene")
	var ukErr *UnknownKindError
	require.ErrorAs(t, err, &ukErr)
	assert.Equal(t, "kerosene", ukErr.Kind)
}

func TestBasePrice(t *testing.T) {
	list := DefaultPriceList()

	price, err := list.BasePrice(Diesel)
	require.NoError(t, err)
	assert.True(t, d("3.99").Equal(price))

	price, err = list.BasePrice(Lubricant)
	require.NoError(t, err)
	assert.True(t, d("25.00").Equal(price))

	_, err = list.BasePrice(Kind("jetfuel"))
	var ukErr *UnknownKindError
	require.ErrorAs(t, err, &ukErr)
}

func TestVolumeAdjustedTotal(t *testing.T) {
	list := DefaultPriceList()

	tests := []struct {
		name string
		kind Kind
		qty  int
		want decimal.Decimal
	}{
		{"diesel below any tier", Diesel, 100, d("399.00")},
		{"diesel at threshold boundary stays full price", Diesel, 500, d("1995.00")},
		{"diesel crosses 500 tier at 5% off", Diesel, 600, d("2274.30")},
		{"diesel crosses 1000 tier at 10% off", Diesel, 1200, d("4309.20")},
		{"gasoline below tier", Gasoline, 200, d("1038.00")},
		{"gasoline crosses 200 tier with fixed discount", Gasoline, 250, d("1197.50")},
		{"ethanol crosses 80 tier at 3% off", Ethanol, 100, d("348.23")},
		{"lubricant has no tiers", Lubricant, 10, d("250.00")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := list.VolumeAdjustedTotal(tt.kind, tt.qty)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
		})
	}
}

func TestVolumeAdjustedTotal_InvalidQuantity(t *testing.T) {
	list := DefaultPriceList()

	for _, qty := range []int{0, -1, -500} {
		_, err := list.VolumeAdjustedTotal(Diesel, qty)
		require.ErrorIs(t, err, ErrInvalidQuantity)
	}
}

func TestVolumeAdjustedTotal_UnknownKind(t *testing.T) {
	list := DefaultPriceList()

	_, err := list.VolumeAdjustedTotal(Kind("jetfuel"), 10)
	var ukErr *UnknownKindError
	require.ErrorAs(t, err, &ukErr)
}

// Within a tier the total never decreases as quantity grows.
func TestVolumeAdjustedTotal_MonotonicWithinTier(t *testing.T) {
	list := DefaultPriceList()

	for _, kind := range Kinds() {
		prev := decimal.Zero
		for qty := 1; qty <= 80; qty++ {
			got, err := list.VolumeAdjustedTotal(kind, qty)
			require.NoError(t, err)
			assert.True(t, got.GreaterThanOrEqual(prev),
				"%s qty %d: total %s below previous %s", kind, qty, got, prev)
			prev = got
		}
	}
}

// Once a tier is crossed the total is strictly below the naive price.
func TestVolumeAdjustedTotal_DiscountOnceTierCrossed(t *testing.T) {
	list := DefaultPriceList()

	cases := []struct {
		kind Kind
		qty  int
	}{
		{Diesel, 501},
		{Diesel, 1001},
		{Gasoline, 201},
		{Ethanol, 81},
	}
	for _, tc := range cases {
		base, err := list.BasePrice(tc.kind)
		require.NoError(t, err)
		naive := base.Mul(decimal.NewFromInt(int64(tc.qty)))

		got, err := list.VolumeAdjustedTotal(tc.kind, tc.qty)
		require.NoError(t, err)
		assert.True(t, got.LessThan(naive),
			"%s qty %d: discounted %s not below naive %s", tc.kind, tc.qty, got, naive)
	}
}

// A fixed tier discount may push the total negative; that is allowed.
func TestVolumeAdjustedTotal_FixedDiscountMayGoNegative(t *testing.T) {
	list := NewPriceList(
		map[Kind]decimal.Decimal{Gasoline: d("0.10")},
		map[Kind][]Tier{
			Gasoline: {{Threshold: 10, Type: TierFixed, Value: d("100.00")}},
		},
	)

	got, err := list.VolumeAdjustedTotal(Gasoline, 20)
	require.NoError(t, err)
	assert.True(t, got.IsNegative())
	assert.True(t, d("-98.00").Equal(got))
}

// Only the best matching tier applies; thresholds are not cumulative.
func TestVolumeAdjustedTotal_TiersNotCumulative(t *testing.T) {
	list := DefaultPriceList()

	got, err := list.VolumeAdjustedTotal(Diesel, 1500)
	require.NoError(t, err)
	// 3.99 * 1500 * 0.90; the 5% tier must not stack on top.
	assert.True(t, d("5386.50").Equal(got), "got %s", got)
}
