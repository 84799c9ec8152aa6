package format

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tomodex/aggregator-api/internal/utils"
	"github.com/tomodex/aggregator-api/pkg/relayer"
)

// Trade is a normalized trade, convention-neutral. QuoteVolume is already
// fixed-point formatted because its digit count depends on the trade's own
// price bucket.
type Trade struct {
	TradeID     int64
	Price       decimal.Decimal
	BaseVolume  decimal.Decimal
	QuoteVolume string
	Type        string
	Timestamp   time.Time
}

// FormatTrades normalizes raw trades, preserving upstream order (newest
// first). The quote volume is price times base volume, fixed-point rounded to
// the amount precision the price implies.
func FormatTrades(raw []relayer.RawTrade, base, quote relayer.Token) ([]Trade, error) {
	out := make([]Trade, 0, len(raw))
	for _, rt := range raw {
		price, err := Normalize(rt.Pricepoint, quote.Decimals)
		if err != nil {
			return nil, err
		}
		baseVolume, err := Normalize(rt.Amount, base.Decimals)
		if err != nil {
			return nil, err
		}

		id, err := TradeID(rt.Hash)
		if err != nil {
			return nil, err
		}

		side := strings.ToLower(rt.TakerOrderSide)
		if side != "buy" && side != "sell" {
			return nil, utils.NewMalformedUpstreamErrorf("unexpected taker order side %q", rt.TakerOrderSide)
		}

		quoteVolume := price.Mul(baseVolume).StringFixed(amountPrecisionFor(price, base.Decimals))

		out = append(out, Trade{
			TradeID:     id,
			Price:       price,
			BaseVolume:  baseVolume,
			QuoteVolume: quoteVolume,
			Type:        side,
			Timestamp:   rt.CreatedAt,
		})
	}
	return out, nil
}

// TradeID derives a stable numeric id from the low 32 bits of a trade hash:
// the last 8 hex characters parsed base 16. Display-only and
// non-cryptographic; collisions between distinct hashes are tolerated.
func TradeID(hash string) (int64, error) {
	h := strings.TrimPrefix(strings.TrimSpace(hash), "0x")
	if h == "" {
		return 0, utils.NewMalformedUpstreamErrorf("empty trade hash")
	}
	if len(h) > 8 {
		h = h[len(h)-8:]
	}

	id, err := strconv.ParseUint(h, 16, 64)
	if err != nil {
		return 0, utils.NewMalformedUpstreamErrorf("trade hash %q is not hex", hash)
	}
	return int64(id), nil
}

// Page slices trades by 1-based page and per-page limit. A limit of zero
// means everything; pages past the end come back empty.
func Page(trades []Trade, limit, page int) []Trade {
	if limit <= 0 {
		return trades
	}
	if page < 1 {
		page = 1
	}

	start := (page - 1) * limit
	if start >= len(trades) {
		return []Trade{}
	}
	end := start + limit
	if end > len(trades) {
		end = len(trades)
	}
	return trades[start:end]
}

// GroupBySide partitions trades into the {"buy": ..., "sell": ...} grouped
// shape. When filter names a side, the opposite key is absent from the result
// entirely, not present as an empty list.
func GroupBySide(trades []Trade, filter string) map[string][]Trade {
	grouped := map[string][]Trade{
		"buy":  {},
		"sell": {},
	}
	for _, trade := range trades {
		grouped[trade.Type] = append(grouped[trade.Type], trade)
	}

	switch strings.ToLower(filter) {
	case "buy":
		delete(grouped, "sell")
	case "sell":
		delete(grouped, "buy")
	}
	return grouped
}
