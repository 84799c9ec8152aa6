package format

import "github.com/shopspring/decimal"

// Amount precision buckets, reproduced from the relayer's published tick-size
// table. The rule bounds total displayed precision: the higher the price of a
// pair, the fewer fractional digits its traded amounts may carry. The mapping
// is upstream-defined and treated as opaque; do not "improve" it here.
var precisionBuckets = []struct {
	minPrice decimal.Decimal
	decimals int32
}{
	{decimal.NewFromInt(1000), 2},
	{decimal.NewFromInt(50), 3},
	{decimal.NewFromInt(1), 4},
	{decimal.RequireFromString("0.1"), 5},
	{decimal.RequireFromString("0.001"), 6},
}

// amountPrecisionFloor applies below the smallest bucket.
const amountPrecisionFloor int32 = 8

// AmountPrecision returns the number of fractional digits to use when
// formatting an amount traded at the given price. Used only for fixed-point
// volume formatting, never for normalizing prices.
func AmountPrecision(price decimal.Decimal) int32 {
	for _, bucket := range precisionBuckets {
		if price.GreaterThanOrEqual(bucket.minPrice) {
			return bucket.decimals
		}
	}
	return amountPrecisionFloor
}

// amountPrecisionFor resolves the precision for a level or trade. A zero or
// missing price carries no magnitude information, so the base token's native
// decimals are the fallback.
func amountPrecisionFor(price decimal.Decimal, baseDecimals int32) int32 {
	if price.IsZero() {
		return baseDecimals
	}
	return AmountPrecision(price)
}
