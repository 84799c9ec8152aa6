package relayer

import "time"

// ErrorResponse represents an error payload from the relayer.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Token represents a listed token. Identity is the contract address; the
// symbol is a display alias and is not guaranteed unique across relistings.
type Token struct {
	Symbol          string `json:"symbol"`
	Name            string `json:"name,omitempty"`
	ContractAddress string `json:"contractAddress"`
	Decimals        int32  `json:"decimals"`
}

// Pair represents a listed trading pair.
type Pair struct {
	PairName           string `json:"pairName"`
	BaseTokenSymbol    string `json:"baseTokenSymbol"`
	QuoteTokenSymbol   string `json:"quoteTokenSymbol"`
	BaseTokenAddress   string `json:"baseTokenAddress"`
	QuoteTokenAddress  string `json:"quoteTokenAddress"`
	BaseTokenDecimals  int32  `json:"baseTokenDecimals"`
	QuoteTokenDecimals int32  `json:"quoteTokenDecimals"`
	Active             bool   `json:"active"`
}

// PairID identifies a pair inside a market stats record. BaseToken and
// QuoteToken carry contract addresses, PairName the "BASE/QUOTE" display name.
type PairID struct {
	PairName   string `json:"pairName"`
	BaseToken  string `json:"baseToken"`
	QuoteToken string `json:"quoteToken"`
}

// MarketStats is a 24h per-pair summary. All monetary fields are base-unit
// integer strings: quote-scaled except BaseVolume, which is base-scaled.
// Change is a percentage and may be absent.
type MarketStats struct {
	Pair       PairID `json:"pair"`
	Close      string `json:"close"`
	BidPrice   string `json:"bidPrice"`
	AskPrice   string `json:"askPrice"`
	High       string `json:"high"`
	Low        string `json:"low"`
	Volume     string `json:"volume"`
	BaseVolume string `json:"baseVolume"`
	Change     string `json:"change,omitempty"`
}

// RawLevel is a single order book level. Pricepoint is scaled by the quote
// token's decimals, Amount by the base token's.
type RawLevel struct {
	Pricepoint string `json:"pricepoint"`
	Amount     string `json:"amount"`
}

// OrderBook holds the raw levels of both sides, best price first.
type OrderBook struct {
	Asks []RawLevel `json:"asks"`
	Bids []RawLevel `json:"bids"`
}

// RawTrade is a single executed trade as stored on-chain.
type RawTrade struct {
	Hash           string    `json:"hash"`
	Pricepoint     string    `json:"pricepoint"`
	Amount         string    `json:"amount"`
	TakerOrderSide string    `json:"takerOrderSide"`
	CreatedAt      time.Time `json:"createdAt"`
}

// TokensResponse represents the response from /api/tokens.
type TokensResponse struct {
	Total  int     `json:"total"`
	Tokens []Token `json:"tokens"`
}

// PairsResponse represents the response from /api/pairs.
type PairsResponse struct {
	Total int    `json:"total"`
	Pairs []Pair `json:"pairs"`
}

// MarketsResponse represents the response from /api/markets.
type MarketsResponse struct {
	Total   int           `json:"total"`
	Markets []MarketStats `json:"markets"`
}

// TradesResponse represents the response from /api/trades.
type TradesResponse struct {
	Total  int        `json:"total"`
	Trades []RawTrade `json:"trades"`
}
