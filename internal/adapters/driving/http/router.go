// Package http exposes the summary pipeline over a gin JSON API.
package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpH "github.com/custodia-labs/qadigest/internal/adapters/driving/http/handlers"
	httpMW "github.com/custodia-labs/qadigest/internal/adapters/driving/http/middleware"
	"github.com/custodia-labs/qadigest/internal/logger"
)

type RouterConfig struct {
	Log *logger.Logger

	SummaryHandler *httpH.SummaryHandler
	HealthHandler  *httpH.HealthHandler

	// Gatherer serves /metrics when set.
	Gatherer prometheus.Gatherer

	CORSOrigins []string
	RateLimiter *httpMW.RateLimiter
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(httpMW.RequestID())
	r.Use(httpMW.RequestLogger(cfg.Log))
	if len(cfg.CORSOrigins) > 0 {
		r.Use(httpMW.CORS(cfg.CORSOrigins))
	}

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthz", cfg.HealthHandler.HealthCheck)
	}

	// Metrics
	if cfg.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{})))
	}

	api := r.Group("/api")
	if cfg.RateLimiter != nil {
		api.Use(httpMW.RateLimit(cfg.RateLimiter))
	}
	{
		// Summaries
		if cfg.SummaryHandler != nil {
			api.POST("/summaries", cfg.SummaryHandler.CreateSummary)
			api.GET("/summaries", cfg.SummaryHandler.GetSummaryByQuery)
			api.GET("/summaries/:id", cfg.SummaryHandler.GetSummary)
		}
	}

	return r
}
