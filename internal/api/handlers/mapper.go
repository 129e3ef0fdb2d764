package handlers

import (
	"habitloop/internal/api/dto"
	"habitloop/internal/domain/habits"
	"habitloop/internal/domain/progress"
)

// HabitToResponse converts a domain habit to its API representation
func HabitToResponse(h *habits.Habit) dto.HabitResponse {
	return dto.HabitResponse{
		ID:              h.ID,
		Name:            h.Name,
		Description:     h.Description,
		Frequency:       string(h.Frequency),
		CustomFrequency: h.CustomFrequency,
		CreatedAt:       h.CreatedAt,
		LastCompleted:   h.LastCompleted,
		Streak:          h.Streak,
		Color:           h.Color,
	}
}

// CompletionToResponse converts a completion log entry to its API representation
func CompletionToResponse(c *habits.HabitCompletion) dto.CompletionResponse {
	return dto.CompletionResponse{
		ID:          c.ID,
		HabitID:     c.HabitID,
		CompletedAt: c.CompletedAt,
		Notes:       c.Notes,
	}
}

// AchievementToResponse converts an achievement to its API representation
func AchievementToResponse(a progress.Achievement) dto.AchievementResponse {
	return dto.AchievementResponse{
		ID:          a.ID,
		Name:        a.Name,
		Description: a.Description,
		Icon:        a.Icon,
		IsUnlocked:  a.IsUnlocked,
		UnlockedAt:  a.UnlockedAt,
		Requirement: dto.RequirementResponse{
			Type:    string(a.Requirement.Type),
			Value:   a.Requirement.Value,
			HabitID: a.Requirement.HabitID,
		},
	}
}

// AchievementsToResponse converts a slice of achievements, never returning nil
func AchievementsToResponse(achievements []progress.Achievement) []dto.AchievementResponse {
	out := make([]dto.AchievementResponse, 0, len(achievements))
	for _, a := range achievements {
		out = append(out, AchievementToResponse(a))
	}
	return out
}

// StatsToResponse converts per-habit statistics to their API representation
func StatsToResponse(s *progress.HabitStats) dto.HabitStatsResponse {
	return dto.HabitStatsResponse{
		HabitID:          s.HabitID,
		HabitName:        s.HabitName,
		Streak:           s.Streak,
		TotalCompletions: s.TotalCompletions,
		BestStreak:       s.BestStreak,
		CompletionDates:  s.CompletionDates,
		LastCompletedAt:  s.LastCompletedAt,
	}
}
