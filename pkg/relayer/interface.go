package relayer

import "context"

// Relayer defines the upstream DEX relayer operations the aggregator depends
// on. All calls are read-only snapshots; nothing is persisted on our side.
type Relayer interface {
	HealthCheck(ctx context.Context) error
	GetPairs(ctx context.Context) ([]Pair, error)
	GetMarkets(ctx context.Context) ([]MarketStats, error)
	GetTokens(ctx context.Context) ([]Token, error)
	GetOrderBook(ctx context.Context, baseToken, quoteToken string) (*OrderBook, error)
	GetTrades(ctx context.Context, baseToken, quoteToken string, limit int) ([]RawTrade, error)
	Close() error
}

// Ensure our implementation satisfies the interface
var _ Relayer = (*Client)(nil)
