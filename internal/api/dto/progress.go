package dto

import (
	"time"
)

// RequirementResponse describes an achievement's unlock predicate
type RequirementResponse struct {
	Type    string `json:"type"`
	Value   int    `json:"value"`
	HabitID string `json:"habit_id,omitempty"`
}

// AchievementResponse represents an achievement in API responses
type AchievementResponse struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Icon        string              `json:"icon"`
	IsUnlocked  bool                `json:"is_unlocked"`
	UnlockedAt  *time.Time          `json:"unlocked_at,omitempty"`
	Requirement RequirementResponse `json:"requirement"`
}

// AchievementListResponse represents the response for listing achievements
type AchievementListResponse struct {
	Achievements []AchievementResponse `json:"achievements"`
}

// HabitStatsResponse represents per-habit statistics in API responses
type HabitStatsResponse struct {
	HabitID          string      `json:"habit_id"`
	HabitName        string      `json:"habit_name"`
	Streak           int         `json:"streak"`
	TotalCompletions int         `json:"total_completions"`
	BestStreak       int         `json:"best_streak"`
	CompletionDates  []time.Time `json:"completion_dates"`
	LastCompletedAt  *time.Time  `json:"last_completed_at,omitempty"`
}

// UserProgressResponse represents the progress aggregate in API responses
type UserProgressResponse struct {
	TotalHabits      int                           `json:"total_habits"`
	ActiveHabits     int                           `json:"active_habits"`
	TotalCompletions int                           `json:"total_completions"`
	Achievements     []AchievementResponse         `json:"achievements"`
	HabitStats       map[string]HabitStatsResponse `json:"habit_stats"`
	JoinDate         time.Time                     `json:"join_date"`
}
