package routes

import (
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"habitloop/internal/api/handlers"
)

type HabitsRoutes struct {
	handler *handlers.HabitsHandler
}

func NewHabitsRoutes(handler *handlers.HabitsHandler) *HabitsRoutes {
	return &HabitsRoutes{
		handler: handler,
	}
}

// RegisterRoutes registers all habit-related routes
func (h *HabitsRoutes) RegisterRoutes(router *gin.Engine) {
	habits := router.Group("/api/habits")

	// List responses carry full completion histories, so compress them
	habits.GET("", gzip.Gzip(gzip.DefaultCompression), h.handler.ListHabits)
	habits.POST("", h.handler.CreateHabit)

	// Undo before parameterized routes so "undo" is not read as an id
	habits.POST("/undo", h.handler.Undo)

	habits.GET("/:id", h.handler.GetHabit)
	habits.PUT("/:id", h.handler.UpdateHabit)
	habits.DELETE("/:id", h.handler.DeleteHabit)

	habits.POST("/:id/complete", h.handler.CompleteHabit)
	habits.GET("/:id/completions", gzip.Gzip(gzip.DefaultCompression), h.handler.ListCompletions)
}
