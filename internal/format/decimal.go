// Package format holds the normalization core: it turns the relayer's raw
// base-unit integers into the decimal strings market-data aggregators expect.
package format

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/tomodex/aggregator-api/internal/utils"
)

// Normalize converts a base-unit integer string into its human-readable
// decimal value by undoing the token's on-chain scaling: raw / 10^decimals.
// The computation shifts the decimal exponent, so it is exact for integers of
// any size; no binary floating point is involved at any step.
func Normalize(raw string, decimals int32) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return decimal.Decimal{}, utils.NewMalformedUpstreamErrorf("empty base-unit amount")
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, utils.NewMalformedUpstreamErrorf("%q is not a base-unit integer", raw)
	}
	if d.IsNegative() {
		return decimal.Decimal{}, utils.NewMalformedUpstreamErrorf("negative base-unit amount %q", raw)
	}

	return d.Shift(-decimals), nil
}

// NormalizeOrZero is Normalize for auxiliary fields: anything unparseable
// becomes zero instead of failing the whole response.
func NormalizeOrZero(raw string, decimals int32) decimal.Decimal {
	d, err := Normalize(raw, decimals)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// TruncateDigits caps a value at the given number of fractional digits,
// discarding the remainder. It never rounds up; fixed-point rounding is the
// business of the formatting steps that explicitly ask for it.
func TruncateDigits(d decimal.Decimal, places int32) decimal.Decimal {
	return d.Truncate(places)
}
