package progress

import (
	"time"
)

// RequirementType tags an achievement's unlock predicate.
type RequirementType string

const (
	// RequirementHabits unlocks when the total habit count reaches Value.
	RequirementHabits RequirementType = "habits"
	// RequirementCompletions unlocks when total completions reach Value.
	RequirementCompletions RequirementType = "completions"
	// RequirementStreak unlocks when any habit's streak reaches Value.
	RequirementStreak RequirementType = "streak"
	// RequirementCustom unlocks when a named habit's completions reach Value.
	RequirementCustom RequirementType = "custom"
)

// Requirement is the unlock predicate of an achievement.
type Requirement struct {
	Type    RequirementType `json:"type"`
	Value   int             `json:"value"`
	HabitID string          `json:"habitId,omitempty"` // only for RequirementCustom
}

// Achievement is a named milestone. IsUnlocked transitions false to true at
// most once and never reverts; UnlockedAt is set on that transition.
type Achievement struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Icon        string      `json:"icon"`
	IsUnlocked  bool        `json:"isUnlocked"`
	UnlockedAt  *time.Time  `json:"unlockedAt,omitempty"`
	Requirement Requirement `json:"requirement"`
}

// HabitStats is the per-habit statistics record kept by the engine.
// CompletionDates is append-only and stays in insertion order.
type HabitStats struct {
	HabitID          string      `json:"habitId"`
	HabitName        string      `json:"habitName"` // snapshotted when the stat entry is created
	Streak           int         `json:"streak"`
	TotalCompletions int         `json:"totalCompletions"`
	BestStreak       int         `json:"bestStreak"`
	CompletionDates  []time.Time `json:"completionDates"`
	LastCompletedAt  *time.Time  `json:"lastCompletedAt,omitempty"`
}

// UserProgress is the aggregate root persisted under the user_progress key.
type UserProgress struct {
	TotalHabits      int                    `json:"totalHabits"`
	ActiveHabits     int                    `json:"activeHabits"`
	TotalCompletions int                    `json:"totalCompletions"`
	Achievements     []Achievement          `json:"achievements"`
	HabitStats       map[string]*HabitStats `json:"habitStats"`
	JoinDate         time.Time              `json:"joinDate"`
}
