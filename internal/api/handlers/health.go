package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tomodex/aggregator-api/internal/cache"
	"github.com/tomodex/aggregator-api/pkg/relayer"
)

// HealthResponse reports the service and its collaborators.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
	Services  Services  `json:"services"`
}

// Services holds per-collaborator health states.
type Services struct {
	Relayer string `json:"relayer"`
	Cache   string `json:"cache"`
}

// HealthCheck reports whether the relayer and cache are reachable. A
// degraded collaborator turns the whole response 503.
func HealthCheck(r relayer.Relayer, responseCache *cache.ResponseCache) gin.HandlerFunc {
	return func(c *gin.Context) {
		response := HealthResponse{
			Status:    "ok",
			Timestamp: time.Now(),
			Version:   "1.0.0",
			Services: Services{
				Relayer: "ok",
				Cache:   "ok",
			},
		}

		if err := r.HealthCheck(c.Request.Context()); err != nil {
			response.Services.Relayer = "error"
			response.Status = "degraded"
		}
		if err := responseCache.HealthCheck(c.Request.Context()); err != nil {
			response.Services.Cache = "error"
			response.Status = "degraded"
		}

		statusCode := http.StatusOK
		if response.Status == "degraded" {
			statusCode = http.StatusServiceUnavailable
		}
		c.JSON(statusCode, response)
	}
}
