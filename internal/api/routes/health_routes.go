package routes

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"habitloop/internal/infrastructure/store"
)

// HealthResponse represents the health check response structure
type HealthResponse struct {
	Status    string    `json:"status" example:"healthy"`
	Timestamp time.Time `json:"timestamp" example:"2026-01-01T00:00:00Z"`
}

// SetupHealthRoutes registers health check endpoints. Readiness probes the
// store with a read so a broken backend flips the probe, not the process.
func SetupHealthRoutes(router *gin.Engine, st store.Store) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, HealthResponse{
			Status:    "healthy",
			Timestamp: time.Now().UTC(),
		})
	})

	router.GET("/health/ready", func(c *gin.Context) {
		if _, err := st.Get(c.Request.Context(), "health_probe"); err != nil && !errors.Is(err, store.ErrKeyNotFound) {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status": "unhealthy",
				"error":  err.Error(),
			})
			return
		}
		c.JSON(http.StatusOK, HealthResponse{
			Status:    "ready",
			Timestamp: time.Now().UTC(),
		})
	})
}
