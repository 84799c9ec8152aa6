package format

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/tomodex/aggregator-api/pkg/relayer"
)

// AssetIndex resolves a token symbol to its external asset identity. Unknown
// symbols must map to 0, never to an error.
type AssetIndex func(symbol string) int64

// TickerSummary is a per-pair summary in the Convention A list shape.
type TickerSummary struct {
	TickerID       string `json:"ticker_id"`
	BaseCurrency   string `json:"base_currency"`
	TargetCurrency string `json:"target_currency"`
	LastPrice      string `json:"last_price"`
	BaseVolume     string `json:"base_volume"`
	TargetVolume   string `json:"target_volume"`
	Bid            string `json:"bid"`
	Ask            string `json:"ask"`
	High           string `json:"high"`
	Low            string `json:"low"`
}

// MarketSummary is a per-pair summary in the Convention B list shape.
type MarketSummary struct {
	TradingPairs          string  `json:"trading_pairs"`
	BaseCurrency          string  `json:"base_currency"`
	QuoteCurrency         string  `json:"quote_currency"`
	LastPrice             string  `json:"last_price"`
	LowestAsk             string  `json:"lowest_ask"`
	HighestBid            string  `json:"highest_bid"`
	BaseVolume            string  `json:"base_volume"`
	QuoteVolume           string  `json:"quote_volume"`
	PriceChangePercent24h float64 `json:"price_change_percent_24h"`
	HighestPrice24h       string  `json:"highest_price_24h"`
	LowestPrice24h        string  `json:"lowest_price_24h"`
}

// TickerEntry is a per-pair entry in the Convention B ticker map.
type TickerEntry struct {
	BaseID      int64  `json:"base_id"`
	QuoteID     int64  `json:"quote_id"`
	LastPrice   string `json:"last_price"`
	QuoteVolume string `json:"quote_volume"`
	BaseVolume  string `json:"base_volume"`
	IsFrozen    int    `json:"isFrozen"`
}

// tokenIndex resolves market legs to token metadata: exact on contract
// address, case-insensitive on symbol. First listing wins when symbols are
// duplicated; an unresolvable leg falls back to 18 decimals so that one odd
// listing cannot fail the whole summary response.
type tokenIndex struct {
	byAddress map[string]relayer.Token
	bySymbol  map[string]relayer.Token
}

func indexTokens(tokens []relayer.Token) *tokenIndex {
	idx := &tokenIndex{
		byAddress: make(map[string]relayer.Token, len(tokens)),
		bySymbol:  make(map[string]relayer.Token, len(tokens)),
	}
	for _, token := range tokens {
		if _, ok := idx.byAddress[token.ContractAddress]; !ok {
			idx.byAddress[token.ContractAddress] = token
		}
		symbol := strings.ToUpper(token.Symbol)
		if _, ok := idx.bySymbol[symbol]; !ok {
			idx.bySymbol[symbol] = token
		}
	}
	return idx
}

func (idx *tokenIndex) resolve(address, symbol string) relayer.Token {
	if token, ok := idx.byAddress[address]; ok {
		return token
	}
	if token, ok := idx.bySymbol[strings.ToUpper(symbol)]; ok {
		return token
	}
	return relayer.Token{Symbol: symbol, Decimals: FallbackDecimals}
}

// FallbackDecimals is assumed for tokens missing from the relayer registry.
// Known trade-off inherited from the upstream exchange: unknown tokens keep
// responses alive at the cost of a possibly wrong magnitude.
const FallbackDecimals int32 = 18

// splitPairName splits an upstream "BASE/QUOTE" (or already converted
// "BASE_QUOTE") pair name into its leg symbols.
func splitPairName(pairName string) (string, string, bool) {
	sep := "/"
	if !strings.Contains(pairName, sep) {
		sep = "_"
	}
	legs := strings.SplitN(pairName, sep, 2)
	if len(legs) != 2 || legs[0] == "" || legs[1] == "" {
		return "", "", false
	}
	return legs[0], legs[1], true
}

// marketLegs resolves both legs of a market stats record.
func marketLegs(m relayer.MarketStats, idx *tokenIndex) (base, quote relayer.Token, ok bool) {
	baseSymbol, quoteSymbol, ok := splitPairName(m.Pair.PairName)
	if !ok {
		return relayer.Token{}, relayer.Token{}, false
	}
	return idx.resolve(m.Pair.BaseToken, baseSymbol), idx.resolve(m.Pair.QuoteToken, quoteSymbol), true
}

// FormatTickerList joins market stats with token metadata into Convention A
// ticker summaries. Markets whose pair name cannot be parsed are skipped;
// unparseable stat fields normalize to zero rather than failing the list.
func FormatTickerList(markets []relayer.MarketStats, tokens []relayer.Token) []TickerSummary {
	idx := indexTokens(tokens)

	out := make([]TickerSummary, 0, len(markets))
	for _, m := range markets {
		base, quote, ok := marketLegs(m, idx)
		if !ok {
			continue
		}
		baseSymbol, quoteSymbol, _ := splitPairName(m.Pair.PairName)

		out = append(out, TickerSummary{
			TickerID:       baseSymbol + "_" + quoteSymbol,
			BaseCurrency:   strings.ToUpper(baseSymbol),
			TargetCurrency: strings.ToUpper(quoteSymbol),
			LastPrice:      NormalizeOrZero(m.Close, quote.Decimals).String(),
			BaseVolume:     NormalizeOrZero(m.BaseVolume, base.Decimals).String(),
			TargetVolume:   NormalizeOrZero(m.Volume, quote.Decimals).String(),
			Bid:            NormalizeOrZero(m.BidPrice, quote.Decimals).String(),
			Ask:            NormalizeOrZero(m.AskPrice, quote.Decimals).String(),
			High:           NormalizeOrZero(m.High, quote.Decimals).String(),
			Low:            NormalizeOrZero(m.Low, quote.Decimals).String(),
		})
	}
	return out
}

// FormatMarkets joins market stats with token metadata into Convention B
// market summaries.
func FormatMarkets(markets []relayer.MarketStats, tokens []relayer.Token) []MarketSummary {
	idx := indexTokens(tokens)

	out := make([]MarketSummary, 0, len(markets))
	for _, m := range markets {
		base, quote, ok := marketLegs(m, idx)
		if !ok {
			continue
		}
		baseSymbol, quoteSymbol, _ := splitPairName(m.Pair.PairName)

		out = append(out, MarketSummary{
			TradingPairs:          baseSymbol + "_" + quoteSymbol,
			BaseCurrency:          baseSymbol,
			QuoteCurrency:         quoteSymbol,
			LastPrice:             NormalizeOrZero(m.Close, quote.Decimals).String(),
			LowestAsk:             NormalizeOrZero(m.AskPrice, quote.Decimals).String(),
			HighestBid:            NormalizeOrZero(m.BidPrice, quote.Decimals).String(),
			BaseVolume:            NormalizeOrZero(m.BaseVolume, base.Decimals).String(),
			QuoteVolume:           NormalizeOrZero(m.Volume, quote.Decimals).String(),
			PriceChangePercent24h: changePercent(m.Change),
			HighestPrice24h:       NormalizeOrZero(m.High, quote.Decimals).String(),
			LowestPrice24h:        NormalizeOrZero(m.Low, quote.Decimals).String(),
		})
	}
	return out
}

// FormatTickerMap joins market stats with token metadata and the external
// asset-identity table into the Convention B ticker map, keyed by pair name.
func FormatTickerMap(markets []relayer.MarketStats, tokens []relayer.Token, assetID AssetIndex) map[string]TickerEntry {
	idx := indexTokens(tokens)

	out := make(map[string]TickerEntry, len(markets))
	for _, m := range markets {
		base, quote, ok := marketLegs(m, idx)
		if !ok {
			continue
		}
		baseSymbol, quoteSymbol, _ := splitPairName(m.Pair.PairName)

		out[baseSymbol+"_"+quoteSymbol] = TickerEntry{
			BaseID:      assetID(baseSymbol),
			QuoteID:     assetID(quoteSymbol),
			LastPrice:   NormalizeOrZero(m.Close, quote.Decimals).String(),
			QuoteVolume: NormalizeOrZero(m.Volume, quote.Decimals).String(),
			BaseVolume:  NormalizeOrZero(m.BaseVolume, base.Decimals).String(),
			IsFrozen:    0,
		}
	}
	return out
}

// changePercent parses a 24h change percentage, defaulting to 0 when absent.
func changePercent(change string) float64 {
	d, err := decimal.NewFromString(strings.TrimSpace(change))
	if err != nil {
		return 0
	}
	f, _ := d.Float64()
	return f
}
