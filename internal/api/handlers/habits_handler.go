package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"habitloop/internal/api/dto"
	"habitloop/internal/app"
	"habitloop/internal/domain/habits"
	"habitloop/pkg/logger"
)

// HabitsHandler exposes habit CRUD, completion and undo over HTTP
type HabitsHandler struct {
	tracker *app.Tracker
	logger  *logger.Logger
}

// NewHabitsHandler creates a new habits handler
func NewHabitsHandler(tracker *app.Tracker, log *logger.Logger) *HabitsHandler {
	return &HabitsHandler{
		tracker: tracker,
		logger:  log,
	}
}

// ListHabits returns every stored habit
func (h *HabitsHandler) ListHabits(c *gin.Context) {
	list, err := h.tracker.ListHabits(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list habits", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list habits"})
		return
	}

	resp := dto.HabitListResponse{
		Habits:     make([]dto.HabitResponse, 0, len(list)),
		TotalCount: len(list),
	}
	for i := range list {
		resp.Habits = append(resp.Habits, HabitToResponse(&list[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// GetHabit returns a single habit by id
func (h *HabitsHandler) GetHabit(c *gin.Context) {
	habit, err := h.tracker.GetHabit(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, habits.ErrHabitNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "habit not found"})
			return
		}
		h.logger.Error("Failed to get habit", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get habit"})
		return
	}
	c.JSON(http.StatusOK, HabitToResponse(habit))
}

// CreateHabit creates a habit and reports any achievements it unlocked
func (h *HabitsHandler) CreateHabit(c *gin.Context) {
	var req dto.CreateHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := habits.CreateHabitInput{
		Name:            req.Name,
		Description:     req.Description,
		Frequency:       habits.Frequency(req.Frequency),
		CustomFrequency: req.CustomFrequency,
		Color:           req.Color,
	}
	result, err := h.tracker.AddHabit(c.Request.Context(), input)
	if err != nil {
		if errors.Is(err, habits.ErrInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("Failed to create habit", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create habit"})
		return
	}

	c.JSON(http.StatusCreated, dto.AddHabitResponse{
		Habit:    HabitToResponse(result.Habit),
		Unlocked: AchievementsToResponse(result.Unlocked),
	})
}

// UpdateHabit replaces a habit's record. Streak and last completion keep
// their stored values unless the request sets them.
func (h *HabitsHandler) UpdateHabit(c *gin.Context) {
	var req dto.UpdateHabitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	current, err := h.tracker.GetHabit(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, habits.ErrHabitNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "habit not found"})
			return
		}
		h.logger.Error("Failed to load habit for update", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update habit"})
		return
	}

	updated := habits.Habit{
		ID:              current.ID,
		Name:            req.Name,
		Description:     req.Description,
		Frequency:       habits.Frequency(req.Frequency),
		CustomFrequency: req.CustomFrequency,
		CreatedAt:       current.CreatedAt,
		LastCompleted:   current.LastCompleted,
		Streak:          current.Streak,
		Color:           req.Color,
	}
	if req.Streak != nil {
		updated.Streak = *req.Streak
	}
	if req.LastCompleted != nil {
		updated.LastCompleted = req.LastCompleted
	}

	habit, err := h.tracker.UpdateHabit(c.Request.Context(), updated)
	if err != nil {
		switch {
		case errors.Is(err, habits.ErrHabitNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "habit not found"})
		case errors.Is(err, habits.ErrInvalidInput):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			h.logger.Error("Failed to update habit", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update habit"})
		}
		return
	}
	c.JSON(http.StatusOK, HabitToResponse(habit))
}

// DeleteHabit removes a habit; the record stays recoverable through undo
func (h *HabitsHandler) DeleteHabit(c *gin.Context) {
	if err := h.tracker.DeleteHabit(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, habits.ErrHabitNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "habit not found"})
			return
		}
		h.logger.Error("Failed to delete habit", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete habit"})
		return
	}
	c.Status(http.StatusNoContent)
}

// CompleteHabit records a completion and reports any unlocked achievements
func (h *HabitsHandler) CompleteHabit(c *gin.Context) {
	var req dto.CompleteHabitRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	result, err := h.tracker.CompleteHabit(c.Request.Context(), c.Param("id"), req.Notes)
	if err != nil {
		if errors.Is(err, habits.ErrHabitNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "habit not found"})
			return
		}
		h.logger.Error("Failed to complete habit", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to complete habit"})
		return
	}

	c.JSON(http.StatusOK, dto.CompleteHabitResponse{
		Completion: CompletionToResponse(result.Completion),
		Habit:      HabitToResponse(result.Habit),
		Unlocked:   AchievementsToResponse(result.Unlocked),
	})
}

// ListCompletions returns the completion log for one habit
func (h *HabitsHandler) ListCompletions(c *gin.Context) {
	completions, err := h.tracker.ListCompletions(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, habits.ErrHabitNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "habit not found"})
			return
		}
		h.logger.Error("Failed to list completions", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list completions"})
		return
	}

	resp := make([]dto.CompletionResponse, 0, len(completions))
	for i := range completions {
		resp = append(resp, CompletionToResponse(&completions[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// Undo reverses the most recent add, update or delete
func (h *HabitsHandler) Undo(c *gin.Context) {
	message, err := h.tracker.UndoLastAction(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to undo last action", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to undo last action"})
		return
	}
	c.JSON(http.StatusOK, dto.UndoResponse{Message: message})
}
