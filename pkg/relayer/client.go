package relayer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/tomodex/aggregator-api/internal/config"
	"github.com/tomodex/aggregator-api/internal/utils"
)

// Client is an HTTP client for the DEX relayer REST API.
type Client struct {
	HTTPClient *http.Client
	BaseURL    string
}

// NewClient creates a new relayer client instance.
func NewClient(cfg *config.RelayerConfig) *Client {
	timeout := time.Duration(cfg.Timeout) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
		BaseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
	}
}

// HealthCheck checks whether the relayer is reachable.
func (c *Client) HealthCheck(ctx context.Context) error {
	return c.makeRequest(ctx, "/api/ping", nil, nil)
}

// GetPairs retrieves all listed trading pairs.
func (c *Client) GetPairs(ctx context.Context) ([]Pair, error) {
	var response PairsResponse
	if err := c.makeRequest(ctx, "/api/pairs", nil, &response); err != nil {
		return nil, utils.NewUpstreamError("GetPairs", err)
	}
	return response.Pairs, nil
}

// GetMarkets retrieves 24h market stats for every pair.
func (c *Client) GetMarkets(ctx context.Context) ([]MarketStats, error) {
	var response MarketsResponse
	if err := c.makeRequest(ctx, "/api/markets", nil, &response); err != nil {
		return nil, utils.NewUpstreamError("GetMarkets", err)
	}
	return response.Markets, nil
}

// GetTokens retrieves the listed token registry.
func (c *Client) GetTokens(ctx context.Context) ([]Token, error) {
	var response TokensResponse
	if err := c.makeRequest(ctx, "/api/tokens", nil, &response); err != nil {
		return nil, utils.NewUpstreamError("GetTokens", err)
	}
	return response.Tokens, nil
}

// GetOrderBook retrieves the raw order book for a pair, identified by the
// contract addresses of both legs.
func (c *Client) GetOrderBook(ctx context.Context, baseToken, quoteToken string) (*OrderBook, error) {
	params := url.Values{}
	params.Set("baseToken", baseToken)
	params.Set("quoteToken", quoteToken)

	var response OrderBook
	if err := c.makeRequest(ctx, "/api/orderbook?"+params.Encode(), nil, &response); err != nil {
		return nil, utils.NewUpstreamError("GetOrderBook", err)
	}
	return &response, nil
}

// GetTrades retrieves recent trades for a pair, newest first. A limit of 0
// returns the relayer's default page size.
func (c *Client) GetTrades(ctx context.Context, baseToken, quoteToken string, limit int) ([]RawTrade, error) {
	params := url.Values{}
	params.Set("baseToken", baseToken)
	params.Set("quoteToken", quoteToken)
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}

	var response TradesResponse
	if err := c.makeRequest(ctx, "/api/trades?"+params.Encode(), nil, &response); err != nil {
		return nil, utils.NewUpstreamError("GetTrades", err)
	}
	return response.Trades, nil
}

// makeRequest is a helper method to make GET requests to the relayer.
func (c *Client) makeRequest(ctx context.Context, path string, body io.Reader, result interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errorResp ErrorResponse
		if err := json.Unmarshal(respBody, &errorResp); err == nil && errorResp.Error != "" {
			return fmt.Errorf("relayer error (%d): %s", resp.StatusCode, errorResp.Error)
		}
		return fmt.Errorf("relayer error (%d): %s", resp.StatusCode, string(respBody))
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return utils.NewMalformedUpstreamErrorf("decoding %s: %v", path, err)
		}
	}

	return nil
}

// Close closes the client. Provided for interface compatibility; the HTTP
// client needs no explicit cleanup.
func (c *Client) Close() error {
	return nil
}
