// Package httpapi wires the ops HTTP transport (Gin) to the statistics
// service and shared middleware. The router carries no business logic: it
// exists so operators can health-check the process, scrape Prometheus
// metrics, and read the usage statistics without talking to Telegram.
package httpapi

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tbourn/go-recipe-bot/internal/config"
	"github.com/tbourn/go-recipe-bot/internal/http/handlers"
	"github.com/tbourn/go-recipe-bot/internal/http/middleware"
	"github.com/tbourn/go-recipe-bot/internal/services"
)

// NewRouter builds the ops router: request ID → logging → recovery →
// metrics, then CORS and gzip, then the three read-only routes.
func NewRouter(cfg config.Config, stats *services.StatsService) *gin.Engine {
	gin.SetMode(cfg.GinMode)

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(),
		middleware.Recovery(),
		middleware.Metrics(),
	)

	corsCfg := cors.DefaultConfig()
	if len(cfg.CORSAllowedOrigins) > 0 {
		corsCfg.AllowOrigins = cfg.CORSAllowedOrigins
	} else {
		corsCfg.AllowAllOrigins = true
	}
	corsCfg.AllowMethods = []string{http.MethodGet}
	r.Use(cors.New(corsCfg))
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	sh := &handlers.StatsHandler{Stats: stats}
	api := r.Group(cfg.APIBasePath)
	api.GET("/stats", sh.GetStats)

	return r
}
