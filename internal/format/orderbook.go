package format

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tomodex/aggregator-api/pkg/relayer"
)

// PriceLevel is a normalized order book level.
type PriceLevel struct {
	Price  decimal.Decimal
	Amount decimal.Decimal
}

// Book holds the normalized levels of both sides, upstream order preserved
// (the relayer guarantees best price first; no re-sorting happens here).
type Book struct {
	Bids []PriceLevel
	Asks []PriceLevel
}

// FormatOrderBook normalizes a raw order book. The price of each level is
// scaled by the quote token's decimals and the amount by the base token's,
// then the amount is rounded to the precision the level's own price implies.
//
// depth is the combined level budget, split evenly across both sides: a depth
// of D exposes at most ceil(D/2) levels per side. Zero or negative depth
// returns everything. Truncation is a hard cutoff, never a filter.
func FormatOrderBook(raw *relayer.OrderBook, base, quote relayer.Token, depth int) (*Book, error) {
	perSide := 0
	if depth > 0 {
		perSide = (depth + 1) / 2
	}

	bids, err := formatSide(raw.Bids, base, quote, perSide)
	if err != nil {
		return nil, fmt.Errorf("bids: %w", err)
	}
	asks, err := formatSide(raw.Asks, base, quote, perSide)
	if err != nil {
		return nil, fmt.Errorf("asks: %w", err)
	}

	return &Book{Bids: bids, Asks: asks}, nil
}

func formatSide(levels []relayer.RawLevel, base, quote relayer.Token, perSide int) ([]PriceLevel, error) {
	if perSide > 0 && len(levels) > perSide {
		levels = levels[:perSide]
	}

	out := make([]PriceLevel, 0, len(levels))
	for _, level := range levels {
		price, err := Normalize(level.Pricepoint, quote.Decimals)
		if err != nil {
			return nil, err
		}
		amount, err := Normalize(level.Amount, base.Decimals)
		if err != nil {
			return nil, err
		}
		amount = amount.Round(amountPrecisionFor(price, base.Decimals))

		out = append(out, PriceLevel{Price: price, Amount: amount})
	}
	return out, nil
}

// LevelPairs renders levels as [price, amount] string pairs, the shape both
// aggregator conventions use on the wire.
func LevelPairs(levels []PriceLevel) [][]string {
	pairs := make([][]string, len(levels))
	for i, level := range levels {
		pairs[i] = []string{level.Price.String(), level.Amount.String()}
	}
	return pairs
}
