package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/tomodex/aggregator-api/internal/cache"
	"github.com/tomodex/aggregator-api/internal/format"
	"github.com/tomodex/aggregator-api/internal/tokens"
	"github.com/tomodex/aggregator-api/internal/utils"
	"github.com/tomodex/aggregator-api/pkg/relayer"
)

// CoinGeckoHandler serves the Convention A (CoinGecko-style) endpoints.
// Unknown ticker legs are a client error on this surface.
type CoinGeckoHandler struct {
	relayer  relayer.Relayer
	resolver *tokens.Resolver
	cache    *cache.ResponseCache
	logger   *logrus.Entry
}

// NewCoinGeckoHandler creates a CoinGeckoHandler with its collaborators.
func NewCoinGeckoHandler(r relayer.Relayer, resolver *tokens.Resolver, responseCache *cache.ResponseCache, logger *logrus.Logger) *CoinGeckoHandler {
	return &CoinGeckoHandler{
		relayer:  r,
		resolver: resolver,
		cache:    responseCache,
		logger:   logger.WithField("component", "coingecko"),
	}
}

// PairInfo is one entry of the /pairs listing.
type PairInfo struct {
	TickerID string `json:"ticker_id"`
	Base     string `json:"base"`
	Target   string `json:"target"`
}

// OrderBookResponse is the Convention A order book shape.
type OrderBookResponse struct {
	TickerID string     `json:"ticker_id"`
	Bids     [][]string `json:"bids"`
	Asks     [][]string `json:"asks"`
}

// HistoricalTrade is one entry of the grouped /historical_trades response.
type HistoricalTrade struct {
	TradeID      int64  `json:"trade_id"`
	Price        string `json:"price"`
	BaseVolume   string `json:"base_volume"`
	TargetVolume string `json:"target_volume"`
	Timestamp    int64  `json:"timestamp"`
	Type         string `json:"type"`
}

// GetPairs lists all tradable pairs.
func (h *CoinGeckoHandler) GetPairs(c *gin.Context) {
	ctx := c.Request.Context()

	var cached []PairInfo
	if h.cache.Get(ctx, "coingecko:pairs", &cached) {
		c.JSON(http.StatusOK, cached)
		return
	}

	pairs, err := h.relayer.GetPairs(ctx)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	result := make([]PairInfo, 0, len(pairs))
	for _, pair := range pairs {
		result = append(result, PairInfo{
			TickerID: pair.BaseTokenSymbol + "_" + pair.QuoteTokenSymbol,
			Base:     pair.BaseTokenSymbol,
			Target:   pair.QuoteTokenSymbol,
		})
	}

	h.cache.Set(ctx, "coingecko:pairs", result)
	c.JSON(http.StatusOK, result)
}

// GetTickers returns normalized 24h summaries for every pair.
func (h *CoinGeckoHandler) GetTickers(c *gin.Context) {
	ctx := c.Request.Context()

	var cached []format.TickerSummary
	if h.cache.Get(ctx, "coingecko:tickers", &cached) {
		c.JSON(http.StatusOK, cached)
		return
	}

	// Market stats and the token registry are independent snapshots.
	var (
		markets   []relayer.MarketStats
		tokenList []relayer.Token
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		markets, err = h.relayer.GetMarkets(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		tokenList, err = h.resolver.Tokens(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		respondError(c, h.logger, err)
		return
	}

	result := format.FormatTickerList(markets, tokenList)
	h.cache.Set(ctx, "coingecko:tickers", result)
	c.JSON(http.StatusOK, result)
}

// GetOrderBook returns the normalized, depth-limited order book for a pair.
func (h *CoinGeckoHandler) GetOrderBook(c *gin.Context) {
	tickerID := c.Query("ticker_id")

	violations := validateTickerID("ticker_id", tickerID, nil)
	depth, violations := numericQuery(c, "depth", violations)
	if len(violations) > 0 {
		respondError(c, h.logger, utils.NewValidationError(violations...))
		return
	}

	ctx := c.Request.Context()

	cacheKey := fmt.Sprintf("coingecko:orderbook:%s:%d", strings.ToUpper(tickerID), depth)
	var cached OrderBookResponse
	if h.cache.Get(ctx, cacheKey, &cached) {
		c.JSON(http.StatusOK, cached)
		return
	}

	base, quote, err := h.resolver.ResolvePair(ctx, tickerID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	raw, err := h.relayer.GetOrderBook(ctx, base.ContractAddress, quote.ContractAddress)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	book, err := format.FormatOrderBook(raw, base, quote, depth)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	response := OrderBookResponse{
		TickerID: tickerID,
		Bids:     format.LevelPairs(book.Bids),
		Asks:     format.LevelPairs(book.Asks),
	}
	h.cache.Set(ctx, cacheKey, response)
	c.JSON(http.StatusOK, response)
}

// GetHistoricalTrades returns recent trades grouped by side. A type filter
// drops the opposite side's key from the response entirely.
func (h *CoinGeckoHandler) GetHistoricalTrades(c *gin.Context) {
	tickerID := c.Query("ticker_id")
	tradeType := strings.ToLower(c.Query("type"))

	violations := validateTickerID("ticker_id", tickerID, nil)
	if tradeType != "" && tradeType != "buy" && tradeType != "sell" {
		violations = append(violations, "type must be buy or sell")
	}
	limit, violations := numericQuery(c, "limit", violations)
	page, violations := numericQuery(c, "page", violations)
	if len(violations) > 0 {
		respondError(c, h.logger, utils.NewValidationError(violations...))
		return
	}

	ctx := c.Request.Context()

	base, quote, err := h.resolver.ResolvePair(ctx, tickerID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	// Paging happens locally, so fetch enough to cover the requested page.
	fetchLimit := 0
	if limit > 0 {
		if page < 1 {
			page = 1
		}
		fetchLimit = limit * page
	}

	raw, err := h.relayer.GetTrades(ctx, base.ContractAddress, quote.ContractAddress, fetchLimit)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	trades, err := format.FormatTrades(raw, base, quote)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	grouped := format.GroupBySide(format.Page(trades, limit, page), tradeType)

	response := make(map[string][]HistoricalTrade, len(grouped))
	for side, sideTrades := range grouped {
		entries := make([]HistoricalTrade, 0, len(sideTrades))
		for _, trade := range sideTrades {
			entries = append(entries, HistoricalTrade{
				TradeID:      trade.TradeID,
				Price:        trade.Price.String(),
				BaseVolume:   trade.BaseVolume.String(),
				TargetVolume: trade.QuoteVolume,
				Timestamp:    trade.Timestamp.Unix(),
				Type:         trade.Type,
			})
		}
		response[side] = entries
	}
	c.JSON(http.StatusOK, response)
}
