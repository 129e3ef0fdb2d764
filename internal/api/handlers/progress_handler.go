package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"habitloop/internal/api/dto"
	"habitloop/internal/app"
	"habitloop/internal/domain/progress"
	"habitloop/pkg/logger"
)

// ProgressHandler exposes aggregate progress, achievements and per-habit stats
type ProgressHandler struct {
	tracker *app.Tracker
	logger  *logger.Logger
}

// NewProgressHandler creates a new progress handler
func NewProgressHandler(tracker *app.Tracker, log *logger.Logger) *ProgressHandler {
	return &ProgressHandler{
		tracker: tracker,
		logger:  log,
	}
}

// GetProgress returns the user progress aggregate
func (h *ProgressHandler) GetProgress(c *gin.Context) {
	userProgress, err := h.tracker.UserProgress(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to get user progress", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get progress"})
		return
	}
	if userProgress == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "progress not initialized"})
		return
	}

	stats := make(map[string]dto.HabitStatsResponse, len(userProgress.HabitStats))
	for id, s := range userProgress.HabitStats {
		stats[id] = StatsToResponse(s)
	}
	c.JSON(http.StatusOK, dto.UserProgressResponse{
		TotalHabits:      userProgress.TotalHabits,
		ActiveHabits:     userProgress.ActiveHabits,
		TotalCompletions: userProgress.TotalCompletions,
		Achievements:     AchievementsToResponse(userProgress.Achievements),
		HabitStats:       stats,
		JoinDate:         userProgress.JoinDate,
	})
}

// ListAchievements returns the full achievement set, locked and unlocked
func (h *ProgressHandler) ListAchievements(c *gin.Context) {
	achievements, err := h.tracker.AllAchievements(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list achievements", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list achievements"})
		return
	}
	c.JSON(http.StatusOK, dto.AchievementListResponse{
		Achievements: AchievementsToResponse(achievements),
	})
}

// ListUnlockedAchievements returns only the achievements already unlocked
func (h *ProgressHandler) ListUnlockedAchievements(c *gin.Context) {
	achievements, err := h.tracker.UnlockedAchievements(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list unlocked achievements", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list achievements"})
		return
	}
	c.JSON(http.StatusOK, dto.AchievementListResponse{
		Achievements: AchievementsToResponse(achievements),
	})
}

// GetHabitStats returns the statistics tracked for one habit
func (h *ProgressHandler) GetHabitStats(c *gin.Context) {
	stats, err := h.tracker.HabitStats(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, progress.ErrStatsNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "habit stats not found"})
			return
		}
		h.logger.Error("Failed to get habit stats", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get habit stats"})
		return
	}
	c.JSON(http.StatusOK, StatsToResponse(stats))
}
