// Package tokens resolves human ticker identifiers like "BTC_USDT" to the
// contract addresses and decimal counts of both legs, against a token list
// fetched from the relayer.
package tokens

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"github.com/tomodex/aggregator-api/internal/format"
	"github.com/tomodex/aggregator-api/internal/utils"
	"github.com/tomodex/aggregator-api/pkg/relayer"
)

// Resolver caches the relayer token list as a read-mostly value with a short
// TTL. Concurrent refreshes collapse into a single upstream call.
type Resolver struct {
	relayer relayer.Relayer
	ttl     time.Duration
	logger  *logrus.Entry

	group singleflight.Group

	mu      sync.RWMutex
	tokens  []relayer.Token
	fetched time.Time
}

// NewResolver creates a resolver caching the token list for ttl. A zero ttl
// disables caching and every call hits the relayer.
func NewResolver(r relayer.Relayer, ttl time.Duration, logger *logrus.Logger) *Resolver {
	return &Resolver{
		relayer: r,
		ttl:     ttl,
		logger:  logger.WithField("component", "tokens"),
	}
}

// Tokens returns the current token list, refreshing it from the relayer when
// the cached copy is stale.
func (r *Resolver) Tokens(ctx context.Context) ([]relayer.Token, error) {
	r.mu.RLock()
	tokens, fetched := r.tokens, r.fetched
	r.mu.RUnlock()

	if tokens != nil && r.ttl > 0 && time.Since(fetched) < r.ttl {
		return tokens, nil
	}

	result, err, _ := r.group.Do("tokens", func() (interface{}, error) {
		fresh, err := r.relayer.GetTokens(ctx)
		if err != nil {
			return nil, err
		}
		r.mu.Lock()
		r.tokens = fresh
		r.fetched = time.Now()
		r.mu.Unlock()

		r.logger.WithField("count", len(fresh)).Debug("refreshed token list")
		return fresh, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]relayer.Token), nil
}

// SplitPair splits a "BASE_QUOTE" ticker identifier into upper-cased leg
// symbols.
func SplitPair(tickerID string) (string, string, error) {
	legs := strings.Split(tickerID, "_")
	if len(legs) != 2 || legs[0] == "" || legs[1] == "" {
		return "", "", utils.NewValidationError("ticker id must be of the form BASE_QUOTE")
	}
	return strings.ToUpper(legs[0]), strings.ToUpper(legs[1]), nil
}

// ResolvePair resolves both legs of a ticker identifier. An unresolved leg is
// an UnknownTokenError; callers decide per convention whether that becomes a
// client error or a defaulted payload.
func (r *Resolver) ResolvePair(ctx context.Context, tickerID string) (base, quote relayer.Token, err error) {
	baseSymbol, quoteSymbol, err := SplitPair(tickerID)
	if err != nil {
		return relayer.Token{}, relayer.Token{}, err
	}

	list, err := r.Tokens(ctx)
	if err != nil {
		return relayer.Token{}, relayer.Token{}, err
	}

	base, ok := findBySymbol(list, baseSymbol)
	if !ok {
		return relayer.Token{}, relayer.Token{}, utils.NewUnknownTokenError(baseSymbol)
	}
	quote, ok = findBySymbol(list, quoteSymbol)
	if !ok {
		return relayer.Token{}, relayer.Token{}, utils.NewUnknownTokenError(quoteSymbol)
	}
	return base, quote, nil
}

// ResolvePairLenient resolves both legs, substituting an empty-address token
// with 18 decimals for any unknown leg instead of failing. This mirrors the
// upstream exchange's own behavior and is the documented Convention B policy.
func (r *Resolver) ResolvePairLenient(ctx context.Context, tickerID string) (base, quote relayer.Token, err error) {
	baseSymbol, quoteSymbol, err := SplitPair(tickerID)
	if err != nil {
		return relayer.Token{}, relayer.Token{}, err
	}

	list, err := r.Tokens(ctx)
	if err != nil {
		return relayer.Token{}, relayer.Token{}, err
	}

	base, ok := findBySymbol(list, baseSymbol)
	if !ok {
		r.logger.WithField("symbol", baseSymbol).Warn("unknown base token, assuming 18 decimals")
		base = fallbackToken(baseSymbol)
	}
	quote, ok = findBySymbol(list, quoteSymbol)
	if !ok {
		r.logger.WithField("symbol", quoteSymbol).Warn("unknown quote token, assuming 18 decimals")
		quote = fallbackToken(quoteSymbol)
	}
	return base, quote, nil
}

// findBySymbol picks the first case-insensitive symbol match, so duplicate
// listings resolve deterministically.
func findBySymbol(list []relayer.Token, symbol string) (relayer.Token, bool) {
	for _, token := range list {
		if strings.EqualFold(token.Symbol, symbol) {
			return token, true
		}
	}
	return relayer.Token{}, false
}

func fallbackToken(symbol string) relayer.Token {
	return relayer.Token{Symbol: symbol, Decimals: format.FallbackDecimals}
}
