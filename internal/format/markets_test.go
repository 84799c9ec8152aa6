package format

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomodex/aggregator-api/pkg/relayer"
)

func sampleMarket() relayer.MarketStats {
	return relayer.MarketStats{
		Pair: relayer.PairID{
			PairName:   "BTC/USDT",
			BaseToken:  "0xb1",
			QuoteToken: "0xa1",
		},
		Close:      "30000000000",
		BidPrice:   "29990000000",
		AskPrice:   "30010000000",
		High:       "31000000000",
		Low:        "29000000000",
		Volume:     "123000000000", // 123000 USDT
		BaseVolume: "410000000",    // 4.1 BTC
		Change:     "2.5",
	}
}

func sampleTokens() []relayer.Token {
	return []relayer.Token{testBTC, testUSDT}
}

func TestFormatTickerList(t *testing.T) {
	tickers := FormatTickerList([]relayer.MarketStats{sampleMarket()}, sampleTokens())
	require.Len(t, tickers, 1)

	ticker := tickers[0]
	assert.Equal(t, "BTC_USDT", ticker.TickerID)
	assert.Equal(t, "BTC", ticker.BaseCurrency)
	assert.Equal(t, "USDT", ticker.TargetCurrency)
	assert.Equal(t, "30000", ticker.LastPrice)
	assert.Equal(t, "4.1", ticker.BaseVolume)
	assert.Equal(t, "123000", ticker.TargetVolume)
	assert.Equal(t, "29990", ticker.Bid)
	assert.Equal(t, "30010", ticker.Ask)
	assert.Equal(t, "31000", ticker.High)
	assert.Equal(t, "29000", ticker.Low)
}

func TestFormatMarkets(t *testing.T) {
	markets := FormatMarkets([]relayer.MarketStats{sampleMarket()}, sampleTokens())
	require.Len(t, markets, 1)

	m := markets[0]
	assert.Equal(t, "BTC_USDT", m.TradingPairs)
	assert.Equal(t, "BTC", m.BaseCurrency)
	assert.Equal(t, "USDT", m.QuoteCurrency)
	assert.Equal(t, "30000", m.LastPrice)
	assert.Equal(t, "30010", m.LowestAsk)
	assert.Equal(t, "29990", m.HighestBid)
	assert.Equal(t, "4.1", m.BaseVolume)
	assert.Equal(t, "123000", m.QuoteVolume)
	assert.Equal(t, 2.5, m.PriceChangePercent24h)
}

func TestFormatMarketsMissingChangeDefaultsToZero(t *testing.T) {
	market := sampleMarket()
	market.Change = ""

	markets := FormatMarkets([]relayer.MarketStats{market}, sampleTokens())
	require.Len(t, markets, 1)
	assert.Equal(t, float64(0), markets[0].PriceChangePercent24h)
}

func TestFormatTickerMap(t *testing.T) {
	assetIDs := map[string]int64{"BTC": 1, "USDT": 825}
	index := func(symbol string) int64 { return assetIDs[symbol] }

	tickers := FormatTickerMap([]relayer.MarketStats{sampleMarket()}, sampleTokens(), index)
	require.Contains(t, tickers, "BTC_USDT")

	entry := tickers["BTC_USDT"]
	assert.Equal(t, int64(1), entry.BaseID)
	assert.Equal(t, int64(825), entry.QuoteID)
	assert.Equal(t, "30000", entry.LastPrice)
	assert.Equal(t, "123000", entry.QuoteVolume)
	assert.Equal(t, "4.1", entry.BaseVolume)
	assert.Equal(t, 0, entry.IsFrozen)
}

func TestFormatTickerMapUnknownAssetsMapToZero(t *testing.T) {
	index := func(string) int64 { return 0 }

	tickers := FormatTickerMap([]relayer.MarketStats{sampleMarket()}, sampleTokens(), index)
	entry := tickers["BTC_USDT"]
	assert.Equal(t, int64(0), entry.BaseID)
	assert.Equal(t, int64(0), entry.QuoteID)
}

// A market whose legs are missing from the token registry still renders,
// using the 18-decimals fallback.
func TestFormatMarketsUnknownTokenFallback(t *testing.T) {
	market := relayer.MarketStats{
		Pair: relayer.PairID{
			PairName:   "FOO/BAR",
			BaseToken:  "0xf0",
			QuoteToken: "0xf1",
		},
		Close:      "1500000000000000000", // 1.5 at 18 decimals
		Volume:     "2000000000000000000",
		BaseVolume: "3000000000000000000",
	}

	markets := FormatMarkets([]relayer.MarketStats{market}, nil)
	require.Len(t, markets, 1)
	assert.Equal(t, "1.5", markets[0].LastPrice)
	assert.Equal(t, "2", markets[0].QuoteVolume)
	assert.Equal(t, "3", markets[0].BaseVolume)
}

func TestFormatTickerListSkipsUnparseablePairNames(t *testing.T) {
	market := sampleMarket()
	market.Pair.PairName = "JUNK"

	tickers := FormatTickerList([]relayer.MarketStats{market}, sampleTokens())
	assert.Empty(t, tickers)
}

// Duplicate symbols resolve to the first listing, deterministically.
func TestTokenIndexFirstMatchWins(t *testing.T) {
	tokens := []relayer.Token{
		{Symbol: "USDT", ContractAddress: "0xa1", Decimals: 6},
		{Symbol: "USDT", ContractAddress: "0xa2", Decimals: 18},
		testBTC,
	}

	market := sampleMarket()
	market.Pair.QuoteToken = "" // force symbol lookup

	tickers := FormatTickerList([]relayer.MarketStats{market}, tokens)
	require.Len(t, tickers, 1)
	// 6-decimals listing wins, so the close normalizes to 30000 and not to a
	// value shifted by 18.
	assert.Equal(t, "30000", tickers[0].LastPrice)
}
