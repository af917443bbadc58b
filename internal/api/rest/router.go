package rest

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/palemoky/schooldata/internal/api/middleware"
	"github.com/palemoky/schooldata/internal/api/rest/handler"
	"github.com/palemoky/schooldata/internal/config"
	"github.com/palemoky/schooldata/internal/database"
	"github.com/palemoky/schooldata/internal/gateway"
	"github.com/palemoky/schooldata/internal/logger"
)

// SetupRouter sets up the Gin router with all routes
func SetupRouter(cfg *config.Config, db *database.DB, repo *database.Repository, gw *gateway.Gateway) *gin.Engine {
	// Set Gin mode
	gin.SetMode(cfg.Server.Mode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(logger.Named("http")))

	// CORS middleware
	router.Use(middleware.CORS())

	// Rate limiting middleware
	if cfg.RateLimit.Enabled {
		rateLimiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
		router.Use(rateLimiter.Middleware())
	}

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Health check
		v1.GET("/health", handler.HealthHandler(db))

		// Statistics
		v1.GET("/stats", handler.StatsHandler(repo))

		// Gateway routes
		queryHandler := handler.NewQueryHandler(gw)
		v1.POST("/query", queryHandler.Query)
		v1.GET("/tables", queryHandler.ListTables)
		v1.GET("/tables/:name", queryHandler.DescribeTable)
		v1.POST("/tools/:name", queryHandler.CallTool)
	}

	return router
}
