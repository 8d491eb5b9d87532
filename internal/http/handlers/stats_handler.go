// Package handlers implements the ops HTTP endpoints. The surface is
// deliberately tiny and read-only: the bot's real interface is Telegram,
// and this server exists for health checks, Prometheus scraping, and a
// JSON view of the usage statistics.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-recipe-bot/internal/http/middleware"
	"github.com/tbourn/go-recipe-bot/internal/services"
)

// StatsHandler serves the statistics snapshot.
type StatsHandler struct {
	// Stats assembles the counters plus derived totals.
	Stats *services.StatsService
}

// GetStats returns the current statistics snapshot as JSON. Persistence
// failures map to 503 with a generic message; details stay in the logs.
func (h *StatsHandler) GetStats(c *gin.Context) {
	snap, err := h.Stats.Snapshot(c.Request.Context())
	if err != nil {
		lg := middleware.LoggerFrom(c)
		lg.Error().Err(err).Msg("stats snapshot failed")
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "statistics temporarily unavailable"})
		return
	}
	c.JSON(http.StatusOK, snap)
}
