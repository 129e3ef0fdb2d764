package routes

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"habitloop/internal/api/handlers"
)

type ProgressRoutes struct {
	handler *handlers.ProgressHandler
}

func NewProgressRoutes(handler *handlers.ProgressHandler) *ProgressRoutes {
	return &ProgressRoutes{
		handler: handler,
	}
}

// RegisterRoutes registers progress and achievement routes
func (p *ProgressRoutes) RegisterRoutes(router *gin.Engine) {
	api := router.Group("/api")

	api.GET("/progress", gzip.Gzip(gzip.DefaultCompression), p.handler.GetProgress)

	achievements := api.Group("/achievements")
	achievements.GET("", p.handler.ListAchievements)
	achievements.GET("/unlocked", p.handler.ListUnlockedAchievements)

	api.GET("/habits/:id/stats", p.handler.GetHabitStats)
}
