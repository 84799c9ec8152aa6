package tokens

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomodex/aggregator-api/internal/utils"
	"github.com/tomodex/aggregator-api/pkg/relayer"
)

// fakeRelayer serves a fixed token list and counts upstream calls.
type fakeRelayer struct {
	relayer.Relayer

	tokens []relayer.Token
	err    error
	calls  atomic.Int64
}

func (f *fakeRelayer) GetTokens(ctx context.Context) ([]relayer.Token, error) {
	f.calls.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return f.tokens, nil
}

var testTokens = []relayer.Token{
	{Symbol: "BTC", ContractAddress: "0xb1", Decimals: 8},
	{Symbol: "USDT", ContractAddress: "0xa1", Decimals: 6},
	{Symbol: "USDT", ContractAddress: "0xa2", Decimals: 18}, // duplicate relisting
}

func newTestResolver(fake *fakeRelayer, ttl time.Duration) *Resolver {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return NewResolver(fake, ttl, logger)
}

func TestSplitPair(t *testing.T) {
	base, quote, err := SplitPair("btc_usdt")
	require.NoError(t, err)
	assert.Equal(t, "BTC", base)
	assert.Equal(t, "USDT", quote)

	for _, bad := range []string{"", "BTC", "BTC_", "_USDT", "BTC_USDT_X"} {
		_, _, err := SplitPair(bad)
		assert.Error(t, err, "ticker %q", bad)
	}
}

func TestResolvePair(t *testing.T) {
	r := newTestResolver(&fakeRelayer{tokens: testTokens}, time.Minute)

	base, quote, err := r.ResolvePair(context.Background(), "BTC_USDT")
	require.NoError(t, err)
	assert.Equal(t, "0xb1", base.ContractAddress)
	assert.Equal(t, int32(8), base.Decimals)
	assert.Equal(t, "0xa1", quote.ContractAddress, "first listing wins on duplicate symbols")
	assert.Equal(t, int32(6), quote.Decimals)
}

func TestResolvePairCaseInsensitive(t *testing.T) {
	r := newTestResolver(&fakeRelayer{tokens: testTokens}, time.Minute)

	base, _, err := r.ResolvePair(context.Background(), "btc_usdt")
	require.NoError(t, err)
	assert.Equal(t, "BTC", base.Symbol)
}

func TestResolvePairUnknownToken(t *testing.T) {
	r := newTestResolver(&fakeRelayer{tokens: testTokens}, time.Minute)

	_, _, err := r.ResolvePair(context.Background(), "FOO_USDT")
	require.Error(t, err)

	var ute *utils.UnknownTokenError
	require.True(t, errors.As(err, &ute))
	assert.Equal(t, "FOO", ute.Symbol)
}

func TestResolvePairLenientFallsBackTo18Decimals(t *testing.T) {
	r := newTestResolver(&fakeRelayer{tokens: testTokens}, time.Minute)

	base, quote, err := r.ResolvePairLenient(context.Background(), "FOO_BAR")
	require.NoError(t, err)
	assert.Equal(t, "FOO", base.Symbol)
	assert.Empty(t, base.ContractAddress)
	assert.Equal(t, int32(18), base.Decimals)
	assert.Equal(t, int32(18), quote.Decimals)
}

func TestResolvePairUpstreamFailure(t *testing.T) {
	fake := &fakeRelayer{err: utils.NewUpstreamError("GetTokens", errors.New("boom"))}
	r := newTestResolver(fake, time.Minute)

	_, _, err := r.ResolvePair(context.Background(), "BTC_USDT")
	require.Error(t, err)
	assert.True(t, errors.Is(err, utils.ErrUpstreamUnavailable))
}

func TestTokensCachedWithinTTL(t *testing.T) {
	fake := &fakeRelayer{tokens: testTokens}
	r := newTestResolver(fake, time.Minute)

	for i := 0; i < 5; i++ {
		_, err := r.Tokens(context.Background())
		require.NoError(t, err)
	}
	assert.Equal(t, int64(1), fake.calls.Load())
}

func TestTokensZeroTTLAlwaysRefreshes(t *testing.T) {
	fake := &fakeRelayer{tokens: testTokens}
	r := newTestResolver(fake, 0)

	for i := 0; i < 3; i++ {
		_, err := r.Tokens(context.Background())
		require.NoError(t, err)
	}
	assert.Equal(t, int64(3), fake.calls.Load())
}

func TestTokensConcurrentRefreshSingleFlight(t *testing.T) {
	fake := &fakeRelayer{tokens: testTokens}
	r := newTestResolver(fake, time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := r.Tokens(context.Background())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	// Cold-cache callers share the in-flight fetch. A caller that loses the
	// race right as the first fetch lands may trigger one more.
	assert.LessOrEqual(t, fake.calls.Load(), int64(2))
}

func TestTokensErrorNotCached(t *testing.T) {
	fake := &fakeRelayer{err: errors.New("down")}
	r := newTestResolver(fake, time.Minute)

	_, err := r.Tokens(context.Background())
	require.Error(t, err)

	fake.err = nil
	fake.tokens = testTokens
	list, err := r.Tokens(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 3)
}
