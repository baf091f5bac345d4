// Package http assembles the gin router and the HTTP server lifecycle.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/unionworks/unioniq/internal/infrastructure/monitoring/logging"
	"github.com/unionworks/unioniq/internal/interfaces/http/handlers"
	"github.com/unionworks/unioniq/internal/interfaces/http/middleware"
)

// RouterConfig aggregates the handlers and cross-cutting dependencies the
// route tree needs.  Nil handlers skip their routes, which keeps partial
// wiring possible in tests.
type RouterConfig struct {
	ClaimHandler          *handlers.ClaimHandler
	ClauseHandler         *handlers.ClauseHandler
	RecommendationHandler *handlers.RecommendationHandler
	HealthHandler         *handlers.HealthHandler

	MetricsHandler http.Handler
	HTTPMetrics    middleware.HTTPMetrics

	Logger logging.Logger
}

// NewRouter builds the complete route tree.  Health probes and /metrics stay
// outside the tenant-scoped group; everything under /api/v1 requires a tenant.
func NewRouter(cfg RouterConfig) *gin.Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	httpLogger := logger.Named("http")

	r := gin.New()
	r.Use(middleware.Recovery(httpLogger))
	r.Use(middleware.RequestLogger(httpLogger, cfg.HTTPMetrics))

	if cfg.HealthHandler != nil {
		r.GET("/healthz", cfg.HealthHandler.Liveness)
		r.GET("/readyz", cfg.HealthHandler.Readiness)
	}
	if cfg.MetricsHandler != nil {
		r.GET("/metrics", gin.WrapH(cfg.MetricsHandler))
	}

	api := r.Group("/api/v1")
	api.Use(middleware.Tenant(httpLogger))

	if h := cfg.ClaimHandler; h != nil {
		api.POST("/claims", h.Create)
		api.GET("/claims", h.List)
		api.GET("/claims/:claimID", h.Get)
		api.PUT("/claims/:claimID", h.Update)
		api.GET("/stats/claims", h.Stats)
	}

	if h := cfg.RecommendationHandler; h != nil {
		api.POST("/claims/:claimID/recommendation", h.Generate)
	}

	if h := cfg.ClauseHandler; h != nil {
		api.POST("/clauses", h.Create)
		api.GET("/clauses", h.List)
		api.GET("/clauses/:clauseID", h.Get)
		api.PUT("/clauses/:clauseID", h.Update)
		api.DELETE("/clauses/:clauseID", h.Delete)
	}

	return r
}
