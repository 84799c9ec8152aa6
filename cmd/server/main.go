package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/tomodex/aggregator-api/internal/api"
	"github.com/tomodex/aggregator-api/internal/api/middleware"
	"github.com/tomodex/aggregator-api/internal/cache"
	"github.com/tomodex/aggregator-api/internal/config"
	"github.com/tomodex/aggregator-api/internal/logging"
	"github.com/tomodex/aggregator-api/internal/tokens"
	"github.com/tomodex/aggregator-api/pkg/relayer"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Application failed: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// A missing .env is fine; the environment may be set directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := logging.New(cfg.LogLevel)

	relayerClient := relayer.NewClient(&cfg.Relayer)
	defer func() {
		_ = relayerClient.Close()
	}()

	resolver := tokens.NewResolver(relayerClient, cfg.TokenListTTL(), logger)

	// The cache is optional: without Redis every request renders fresh.
	var responseCache *cache.ResponseCache
	if cfg.Redis.Enabled {
		responseCache, err = cache.NewResponseCache(cfg.Redis, cfg.ResponseTTL(), logger)
		if err != nil {
			logger.WithError(err).Warn("Redis unavailable, serving without response cache")
			responseCache = nil
		} else {
			defer responseCache.Close()
		}
	}

	if cfg.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(cors.New(cors.Config{
		AllowOrigins: cfg.Server.AllowedOrigins,
		AllowMethods: []string{"GET"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		MaxAge:       12 * time.Hour,
	}))

	api.SetupRoutes(router, relayerClient, resolver, responseCache, logger)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       15 * time.Second,
	}

	go func() {
		logger.WithFields(map[string]interface{}{
			"port":        cfg.Server.Port,
			"environment": cfg.Environment,
			"relayer":     cfg.Relayer.BaseURL,
		}).Info("aggregator API starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	logger.Info("server exited gracefully")
	return nil
}
