package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/tomodex/aggregator-api/internal/assets"
	"github.com/tomodex/aggregator-api/internal/cache"
	"github.com/tomodex/aggregator-api/internal/format"
	"github.com/tomodex/aggregator-api/internal/tokens"
	"github.com/tomodex/aggregator-api/internal/utils"
	"github.com/tomodex/aggregator-api/pkg/relayer"
)

// CoinMarketCapHandler serves the Convention B (CoinMarketCap-style)
// endpoints. Unknown ticker legs fall back to 18-decimals tokens on this
// surface instead of erroring; that asymmetry with Convention A is inherited
// from the upstream exchange and kept deliberately.
type CoinMarketCapHandler struct {
	relayer  relayer.Relayer
	resolver *tokens.Resolver
	cache    *cache.ResponseCache
	logger   *logrus.Entry
}

// NewCoinMarketCapHandler creates a CoinMarketCapHandler with its collaborators.
func NewCoinMarketCapHandler(r relayer.Relayer, resolver *tokens.Resolver, responseCache *cache.ResponseCache, logger *logrus.Logger) *CoinMarketCapHandler {
	return &CoinMarketCapHandler{
		relayer:  r,
		resolver: resolver,
		cache:    responseCache,
		logger:   logger.WithField("component", "coinmarketcap"),
	}
}

// BookResponse is the Convention B order book shape. Timestamp is the
// response-generation time in unix milliseconds.
type BookResponse struct {
	Asks      [][]string `json:"asks"`
	Bids      [][]string `json:"bids"`
	Timestamp int64      `json:"timestamp"`
}

// TradeEntry is one entry of the /trades listing.
type TradeEntry struct {
	TradeID     int64  `json:"trade_id"`
	Price       string `json:"price"`
	BaseVolume  string `json:"base_volume"`
	QuoteVolume string `json:"quote_volume"`
	Timestamp   int64  `json:"timestamp"`
	Type        string `json:"type"`
}

// GetMarkets returns normalized 24h market summaries for every pair.
func (h *CoinMarketCapHandler) GetMarkets(c *gin.Context) {
	ctx := c.Request.Context()

	var cached []format.MarketSummary
	if h.cache.Get(ctx, "cmc:markets", &cached) {
		c.JSON(http.StatusOK, cached)
		return
	}

	markets, tokenList, err := h.fetchMarketsAndTokens(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	result := format.FormatMarkets(markets, tokenList)
	h.cache.Set(ctx, "cmc:markets", result)
	c.JSON(http.StatusOK, result)
}

// GetAssets serves the static asset-identity table verbatim.
func (h *CoinMarketCapHandler) GetAssets(c *gin.Context) {
	c.JSON(http.StatusOK, assets.Table)
}

// GetTickers returns the per-pair ticker map keyed by pair name.
func (h *CoinMarketCapHandler) GetTickers(c *gin.Context) {
	ctx := c.Request.Context()

	var cached map[string]format.TickerEntry
	if h.cache.Get(ctx, "cmc:tickers", &cached) {
		c.JSON(http.StatusOK, cached)
		return
	}

	markets, tokenList, err := h.fetchMarketsAndTokens(c)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	result := format.FormatTickerMap(markets, tokenList, assets.ID)
	h.cache.Set(ctx, "cmc:tickers", result)
	c.JSON(http.StatusOK, result)
}

// GetOrderBook returns the order book for /orderbook/:pairName. The level
// parameter maps onto fixed depths (1 -> 2, 2 -> 20, 3 -> everything) and
// takes precedence over an explicit depth when both are given.
func (h *CoinMarketCapHandler) GetOrderBook(c *gin.Context) {
	pairName := c.Param("pairName")

	violations := validateTickerID("pairName", pairName, nil)
	depth, violations := numericQuery(c, "depth", violations)
	level, violations := numericQuery(c, "level", violations)
	if level > 3 {
		violations = append(violations, "level must be 1, 2 or 3")
	}
	if len(violations) > 0 {
		respondError(c, h.logger, utils.NewValidationError(violations...))
		return
	}

	switch level {
	case 1:
		depth = 2
	case 2:
		depth = 20
	case 3:
		depth = 0
	}

	ctx := c.Request.Context()

	base, quote, err := h.resolver.ResolvePairLenient(ctx, pairName)
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

	c.JSON(http.StatusOK, BookResponse{
		Asks:      format.LevelPairs(book.Asks),
		Bids:      format.LevelPairs(book.Bids),
		Timestamp: time.Now().UnixMilli(),
	})
}

// GetTrades returns normalized recent trades for /trades/:pairName.
func (h *CoinMarketCapHandler) GetTrades(c *gin.Context) {
	pairName := c.Param("pairName")

	violations := validateTickerID("pairName", pairName, nil)
	if len(violations) > 0 {
		respondError(c, h.logger, utils.NewValidationError(violations...))
		return
	}

	ctx := c.Request.Context()

	base, quote, err := h.resolver.ResolvePairLenient(ctx, pairName)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	raw, err := h.relayer.GetTrades(ctx, base.ContractAddress, quote.ContractAddress, 0)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	trades, err := format.FormatTrades(raw, base, quote)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	result := make([]TradeEntry, 0, len(trades))
	for _, trade := range trades {
		result = append(result, TradeEntry{
			TradeID:     trade.TradeID,
			Price:       trade.Price.String(),
			BaseVolume:  trade.BaseVolume.String(),
			QuoteVolume: trade.QuoteVolume,
			Timestamp:   trade.Timestamp.UnixMilli(),
			Type:        trade.Type,
		})
	}
	c.JSON(http.StatusOK, result)
}

// GetRawMarkets passes the relayer's market stats through untouched, for
// operators comparing normalized output against the raw snapshot.
func (h *CoinMarketCapHandler) GetRawMarkets(c *gin.Context) {
	markets, err := h.relayer.GetMarkets(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, markets)
}

// fetchMarketsAndTokens pulls the two independent snapshots concurrently.
func (h *CoinMarketCapHandler) fetchMarketsAndTokens(c *gin.Context) ([]relayer.MarketStats, []relayer.Token, error) {
	var (
		markets   []relayer.MarketStats
		tokenList []relayer.Token
	)
	g, gctx := errgroup.WithContext(c.Request.Context())
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
		return nil, nil, err
	}
	return markets, tokenList, nil
}
