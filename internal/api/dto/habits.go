package dto

import (
	"time"
)

// CreateHabitRequest represents the request to create a new habit
type CreateHabitRequest struct {
	Name            string `json:"name" binding:"required"`
	Description     string `json:"description"`
	Frequency       string `json:"frequency" binding:"required,oneof=daily weekly monthly custom"`
	CustomFrequency int    `json:"custom_frequency" binding:"omitempty,min=1"`
	Color           string `json:"color"`
}

// UpdateHabitRequest represents the request to update an existing habit.
// The stored record is replaced wholesale; omitted streak/last_completed
// keep their current values.
type UpdateHabitRequest struct {
	Name            string     `json:"name" binding:"required"`
	Description     string     `json:"description"`
	Frequency       string     `json:"frequency" binding:"required,oneof=daily weekly monthly custom"`
	CustomFrequency int        `json:"custom_frequency" binding:"omitempty,min=1"`
	Color           string     `json:"color"`
	Streak          *int       `json:"streak,omitempty" binding:"omitempty,min=0"`
	LastCompleted   *time.Time `json:"last_completed,omitempty"`
}

// CompleteHabitRequest represents the request to record a habit completion
type CompleteHabitRequest struct {
	Notes string `json:"notes"`
}

// HabitResponse represents a habit in API responses
type HabitResponse struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Description     string     `json:"description,omitempty"`
	Frequency       string     `json:"frequency"`
	CustomFrequency int        `json:"custom_frequency,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	LastCompleted   *time.Time `json:"last_completed,omitempty"`
	Streak          int        `json:"streak"`
	Color           string     `json:"color,omitempty"`
}

// HabitListResponse represents the response for listing habits
type HabitListResponse struct {
	Habits     []HabitResponse `json:"habits"`
	TotalCount int             `json:"total_count"`
}

// CompletionResponse represents a completion log entry in API responses
type CompletionResponse struct {
	ID          string    `json:"id"`
	HabitID     string    `json:"habit_id"`
	CompletedAt time.Time `json:"completed_at"`
	Notes       string    `json:"notes,omitempty"`
}

// AddHabitResponse couples the created habit with newly unlocked achievements
type AddHabitResponse struct {
	Habit    HabitResponse         `json:"habit"`
	Unlocked []AchievementResponse `json:"unlocked_achievements"`
}

// CompleteHabitResponse couples the completion with the updated habit and
// newly unlocked achievements
type CompleteHabitResponse struct {
	Completion CompletionResponse    `json:"completion"`
	Habit      HabitResponse         `json:"habit"`
	Unlocked   []AchievementResponse `json:"unlocked_achievements"`
}

// UndoResponse reports the outcome of an undo request
type UndoResponse struct {
	Message string `json:"message"`
}
