package handlers

import (
	"context"
	"errors"

	"github.com/stretchr/testify/mock"

	"github.com/tomodex/aggregator-api/internal/utils"
	"github.com/tomodex/aggregator-api/pkg/relayer"
)

func relayerDownErr() error {
	return utils.NewUpstreamError("relayer", errors.New("connection refused"))
}

// MockRelayer is a testify mock of the relayer interface.
type MockRelayer struct {
	mock.Mock
}

func (m *MockRelayer) HealthCheck(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockRelayer) GetPairs(ctx context.Context) ([]relayer.Pair, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]relayer.Pair), args.Error(1)
}

func (m *MockRelayer) GetMarkets(ctx context.Context) ([]relayer.MarketStats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]relayer.MarketStats), args.Error(1)
}

func (m *MockRelayer) GetTokens(ctx context.Context) ([]relayer.Token, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]relayer.Token), args.Error(1)
}

func (m *MockRelayer) GetOrderBook(ctx context.Context, baseToken, quoteToken string) (*relayer.OrderBook, error) {
	args := m.Called(ctx, baseToken, quoteToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*relayer.OrderBook), args.Error(1)
}

func (m *MockRelayer) GetTrades(ctx context.Context, baseToken, quoteToken string, limit int) ([]relayer.RawTrade, error) {
	args := m.Called(ctx, baseToken, quoteToken, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]relayer.RawTrade), args.Error(1)
}

func (m *MockRelayer) Close() error {
	args := m.Called()
	return args.Error(0)
}

var _ relayer.Relayer = (*MockRelayer)(nil)
