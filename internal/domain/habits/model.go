package habits

import (
	"time"
)

// Frequency describes how often a habit is meant to be performed.
type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
	FrequencyCustom  Frequency = "custom"
)

// Valid reports whether f is one of the known frequencies.
func (f Frequency) Valid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyCustom:
		return true
	}
	return false
}

// Habit is the authoritative habit record. The JSON field names are the
// storage format; timestamps round-trip as RFC 3339 strings.
type Habit struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Description     string     `json:"description,omitempty"`
	Frequency       Frequency  `json:"frequency"`
	CustomFrequency int        `json:"customFrequency,omitempty"` // days, meaningful only for FrequencyCustom
	CreatedAt       time.Time  `json:"createdAt"`
	LastCompleted   *time.Time `json:"lastCompleted,omitempty"`
	Streak          int        `json:"streak"`
	Color           string     `json:"color,omitempty"`
}

// HabitCompletion is one append-only entry in the completion log.
// Entries are never mutated or deleted.
type HabitCompletion struct {
	ID          string    `json:"id"`
	HabitID     string    `json:"habitId"`
	CompletedAt time.Time `json:"completedAt"`
	Notes       string    `json:"notes,omitempty"`
}

// CreateHabitInput represents the caller-supplied fields for a new habit.
// ID, CreatedAt and Streak are assigned by the repository.
type CreateHabitInput struct {
	Name            string
	Description     string
	Frequency       Frequency
	CustomFrequency int
	Color           string
}

// undoAction tags the single-slot undo record.
type undoAction string

const (
	actionAdd    undoAction = "add"
	actionUpdate undoAction = "update"
	actionDelete undoAction = "delete"
)

// lastAction is the undo slot payload: the most recent undoable mutation and
// the habit state needed to reverse it. Completions are deliberately not
// recorded here.
type lastAction struct {
	Action undoAction `json:"action"`
	Habit  Habit      `json:"habit"`
}
