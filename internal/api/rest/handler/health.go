package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/palemoky/schooldata/internal/database"
	apperrors "github.com/palemoky/schooldata/internal/errors"
)

// StatsProvider is the repository view the stats endpoint needs
type StatsProvider interface {
	GetStatistics() (*database.Statistics, error)
}

// HealthHandler handles health check requests
func HealthHandler(db *database.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Check database connection
		sqlDB, err := db.DB.DB()
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unhealthy",
				"error":  "failed to get database connection",
			})
			return
		}

		if err := sqlDB.PingContext(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unhealthy",
				"error":  "database connection failed",
			})
			return
		}

		version, err := db.GetSchemaVersion()
		if err != nil {
			version = 0
		}

		c.JSON(http.StatusOK, gin.H{
			"status":         "healthy",
			"schema_version": version,
		})
	}
}

// StatsHandler returns row counts per table and the grade distribution
func StatsHandler(repo StatsProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := repo.GetStatistics()
		if err != nil {
			respondError(c, apperrors.Internal("failed to get statistics"))
			return
		}

		respondOK(c, stats)
	}
}
