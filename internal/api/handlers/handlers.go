// Package handlers implements the HTTP endpoints for both aggregator
// conventions on top of the shared normalization core.
package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/tomodex/aggregator-api/internal/utils"
)

// maxSymbolLength bounds each ticker leg; anything longer is rejected before
// any upstream call.
const maxSymbolLength = 10

// respondError maps the error taxonomy onto HTTP statuses. Upstream and
// malformed-data failures are logged server-side and surfaced without the
// upstream detail.
func respondError(c *gin.Context, logger *logrus.Entry, err error) {
	var ve *utils.ValidationError
	if errors.As(err, &ve) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":      "validation failed",
			"violations": ve.Violations,
		})
		return
	}

	var ute *utils.UnknownTokenError
	if errors.As(err, &ute) {
		c.JSON(http.StatusNotFound, gin.H{"error": ute.Error()})
		return
	}

	switch {
	case errors.Is(err, utils.ErrUpstreamUnavailable):
		logger.WithError(err).Error("upstream call failed")
		c.JSON(http.StatusBadGateway, gin.H{"error": "upstream exchange unavailable"})
	case errors.Is(err, utils.ErrMalformedUpstream):
		logger.WithError(err).Error("malformed upstream data")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "malformed upstream data"})
	default:
		logger.WithError(err).Error("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// validateTickerID checks a BASE_QUOTE identifier, appending any violated
// constraints.
func validateTickerID(name, tickerID string, violations []string) []string {
	if tickerID == "" {
		return append(violations, name+" is required")
	}
	legs := strings.Split(tickerID, "_")
	if len(legs) != 2 || legs[0] == "" || legs[1] == "" {
		return append(violations, name+" must be of the form BASE_QUOTE")
	}
	for _, leg := range legs {
		if len(leg) > maxSymbolLength {
			violations = append(violations, name+" legs must be at most 10 characters")
			break
		}
	}
	return violations
}

// numericQuery parses an optional non-negative integer query parameter,
// recording a violation when it is present but not numeric.
func numericQuery(c *gin.Context, name string, violations []string) (int, []string) {
	raw := c.Query(name)
	if raw == "" {
		return 0, violations
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return 0, append(violations, name+" must be a non-negative integer")
	}
	return value, violations
}
