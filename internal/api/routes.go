package api

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/tomodex/aggregator-api/internal/api/handlers"
	"github.com/tomodex/aggregator-api/internal/cache"
	"github.com/tomodex/aggregator-api/internal/tokens"
	"github.com/tomodex/aggregator-api/pkg/relayer"
)

// SetupRoutes registers both aggregator conventions. Convention A is also
// mounted at the root because aggregator crawlers expect the endpoints there.
func SetupRoutes(router *gin.Engine, r relayer.Relayer, resolver *tokens.Resolver, responseCache *cache.ResponseCache, logger *logrus.Logger) {
	router.GET("/health", handlers.HealthCheck(r, responseCache))

	coingecko := handlers.NewCoinGeckoHandler(r, resolver, responseCache, logger)
	for _, group := range []*gin.RouterGroup{
		router.Group("/"),
		router.Group("/api/coingecko"),
	} {
		group.GET("/pairs", coingecko.GetPairs)
		group.GET("/tickers", coingecko.GetTickers)
		group.GET("/orderbook", coingecko.GetOrderBook)
		group.GET("/historical_trades", coingecko.GetHistoricalTrades)
	}

	coinmarketcap := handlers.NewCoinMarketCapHandler(r, resolver, responseCache, logger)
	cmc := router.Group("/api/coinmarketcap")
	{
		cmc.GET("/markets", coinmarketcap.GetMarkets)
		cmc.GET("/assets", coinmarketcap.GetAssets)
		cmc.GET("/tickers", coinmarketcap.GetTickers)
		cmc.GET("/ticker", coinmarketcap.GetTickers)
		cmc.GET("/orderbook/:pairName", coinmarketcap.GetOrderBook)
		cmc.GET("/trades/:pairName", coinmarketcap.GetTrades)
	}

	// Raw relayer snapshot, useful when debugging normalization.
	router.GET("/api/markets", coinmarketcap.GetRawMarkets)
}
