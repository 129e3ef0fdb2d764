package progress

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"habitloop/internal/domain/habits"
	"habitloop/internal/infrastructure/store"
	"habitloop/pkg/logger"
)

// ErrStatsNotFound is returned by GetHabitStats when no entry exists for the
// habit, either because progress was never initialized or the habit was added
// before tracking began.
var ErrStatsNotFound = errors.New("habit stats not found")

const progressKey = "user_progress"

// Engine maintains aggregate and per-habit statistics and evaluates
// achievement unlocking. It owns the user_progress document; habit records
// themselves only ever arrive as read-only snapshots from the caller.
type Engine interface {
	InitializeProgress(ctx context.Context) (*UserProgress, error)
	HabitAdded(ctx context.Context, habit habits.Habit) ([]Achievement, error)
	HabitCompleted(ctx context.Context, habit habits.Habit, completion habits.HabitCompletion) ([]Achievement, error)
	HabitDeleted(ctx context.Context, habitID string) error
	GetUserProgress(ctx context.Context) (*UserProgress, error)
	GetAllAchievements(ctx context.Context) ([]Achievement, error)
	GetUnlockedAchievements(ctx context.Context) ([]Achievement, error)
	GetHabitStats(ctx context.Context, habitID string) (*HabitStats, error)
}

type engine struct {
	store  store.Store
	logger *logger.Logger
	now    func() time.Time
}

// NewEngine creates a progress engine on top of the given store.
func NewEngine(st store.Store, log *logger.Logger) Engine {
	return &engine{
		store:  st,
		logger: log,
		now:    time.Now,
	}
}

// InitializeProgress is idempotent: existing progress is returned unchanged,
// otherwise a fresh aggregate with the full seeded achievement set is
// persisted and returned.
func (e *engine) InitializeProgress(ctx context.Context) (*UserProgress, error) {
	progress, err := e.GetUserProgress(ctx)
	if err != nil {
		return nil, err
	}
	if progress != nil {
		return progress, nil
	}

	progress = &UserProgress{
		Achievements: defaultAchievements(),
		HabitStats:   make(map[string]*HabitStats),
		JoinDate:     e.now(),
	}
	if err := e.saveProgress(ctx, progress); err != nil {
		return nil, err
	}
	e.logger.Info("Initialized user progress", zap.Int("achievements", len(progress.Achievements)))
	return progress, nil
}

// GetUserProgress returns the stored aggregate, or nil when progress was
// never initialized or the stored document is unparsable.
func (e *engine) GetUserProgress(ctx context.Context) (*UserProgress, error) {
	raw, err := e.store.Get(ctx, progressKey)
	if err != nil {
		if errors.Is(err, store.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("load progress: %w", err)
	}

	var progress UserProgress
	if err := json.Unmarshal([]byte(raw), &progress); err != nil {
		e.logger.Warn("Failed to parse stored progress", zap.Error(err))
		return nil, nil
	}
	if progress.HabitStats == nil {
		progress.HabitStats = make(map[string]*HabitStats)
	}
	return &progress, nil
}

// HabitAdded counts the new habit, seeds its stats entry and re-evaluates
// achievements. Returns the newly unlocked ones, in seed order.
func (e *engine) HabitAdded(ctx context.Context, habit habits.Habit) ([]Achievement, error) {
	progress, err := e.loadOrInitialize(ctx)
	if err != nil {
		return nil, err
	}

	progress.TotalHabits++
	progress.ActiveHabits++
	progress.HabitStats[habit.ID] = &HabitStats{
		HabitID:         habit.ID,
		HabitName:       habit.Name,
		CompletionDates: []time.Time{},
	}

	unlocked := e.checkAchievements(progress)
	if err := e.saveProgress(ctx, progress); err != nil {
		return nil, err
	}
	return unlocked, nil
}

// HabitCompleted applies one completion event. The streak is mirrored from
// the caller-supplied habit snapshot, not derived independently.
func (e *engine) HabitCompleted(ctx context.Context, habit habits.Habit, completion habits.HabitCompletion) ([]Achievement, error) {
	progress, err := e.loadOrInitialize(ctx)
	if err != nil {
		return nil, err
	}

	progress.TotalCompletions++

	stats, ok := progress.HabitStats[habit.ID]
	if !ok {
		stats = &HabitStats{
			HabitID:         habit.ID,
			HabitName:       habit.Name,
			CompletionDates: []time.Time{},
		}
		progress.HabitStats[habit.ID] = stats
	}

	stats.TotalCompletions++
	stats.Streak = habit.Streak
	if stats.Streak > stats.BestStreak {
		stats.BestStreak = stats.Streak
	}
	completedAt := completion.CompletedAt
	stats.CompletionDates = append(stats.CompletionDates, completedAt)
	stats.LastCompletedAt = &completedAt

	unlocked := e.checkAchievements(progress)
	if err := e.saveProgress(ctx, progress); err != nil {
		return nil, err
	}
	return unlocked, nil
}

// HabitDeleted removes the habit's stats entry and decrements the counters.
// Counters clamp at zero; going negative would mean delete events arrived
// for habits that were never counted.
func (e *engine) HabitDeleted(ctx context.Context, habitID string) error {
	progress, err := e.GetUserProgress(ctx)
	if err != nil {
		return err
	}
	if progress == nil {
		return nil
	}

	if progress.TotalHabits > 0 {
		progress.TotalHabits--
	} else {
		e.logger.Warn("Habit deleted with zero counted habits", zap.String("habit_id", habitID))
	}
	if progress.ActiveHabits > 0 {
		progress.ActiveHabits--
	}
	delete(progress.HabitStats, habitID)

	return e.saveProgress(ctx, progress)
}

// GetAllAchievements returns the stored achievement sequence, or the seeded
// defaults (all locked) when progress was never initialized.
func (e *engine) GetAllAchievements(ctx context.Context) ([]Achievement, error) {
	progress, err := e.GetUserProgress(ctx)
	if err != nil {
		return nil, err
	}
	if progress == nil {
		return defaultAchievements(), nil
	}
	return progress.Achievements, nil
}

func (e *engine) GetUnlockedAchievements(ctx context.Context) ([]Achievement, error) {
	progress, err := e.GetUserProgress(ctx)
	if err != nil {
		return nil, err
	}
	if progress == nil {
		return []Achievement{}, nil
	}

	unlocked := make([]Achievement, 0, len(progress.Achievements))
	for _, a := range progress.Achievements {
		if a.IsUnlocked {
			unlocked = append(unlocked, a)
		}
	}
	return unlocked, nil
}

func (e *engine) GetHabitStats(ctx context.Context, habitID string) (*HabitStats, error) {
	progress, err := e.GetUserProgress(ctx)
	if err != nil {
		return nil, err
	}
	if progress == nil {
		return nil, ErrStatsNotFound
	}
	stats, ok := progress.HabitStats[habitID]
	if !ok {
		return nil, ErrStatsNotFound
	}
	return stats, nil
}

// checkAchievements runs one pass over the achievement sequence, evaluating
// every still-locked requirement against the current aggregate. Unlocked
// achievements are skipped outright, which is what makes unlocking one-way.
func (e *engine) checkAchievements(progress *UserProgress) []Achievement {
	newlyUnlocked := []Achievement{}

	for i := range progress.Achievements {
		achievement := &progress.Achievements[i]
		if achievement.IsUnlocked {
			continue
		}

		var unlocked bool
		switch achievement.Requirement.Type {
		case RequirementHabits:
			unlocked = progress.TotalHabits >= achievement.Requirement.Value
		case RequirementCompletions:
			unlocked = progress.TotalCompletions >= achievement.Requirement.Value
		case RequirementStreak:
			for _, stats := range progress.HabitStats {
				if stats.Streak >= achievement.Requirement.Value {
					unlocked = true
					break
				}
			}
		case RequirementCustom:
			if achievement.Requirement.HabitID != "" {
				if stats, ok := progress.HabitStats[achievement.Requirement.HabitID]; ok {
					unlocked = stats.TotalCompletions >= achievement.Requirement.Value
				}
			}
		}

		if unlocked {
			unlockedAt := e.now()
			achievement.IsUnlocked = true
			achievement.UnlockedAt = &unlockedAt
			newlyUnlocked = append(newlyUnlocked, *achievement)
			e.logger.Info("Achievement unlocked",
				zap.String("achievement_id", achievement.ID),
				zap.String("name", achievement.Name))
		}
	}

	return newlyUnlocked
}

func (e *engine) loadOrInitialize(ctx context.Context) (*UserProgress, error) {
	progress, err := e.GetUserProgress(ctx)
	if err != nil {
		return nil, err
	}
	if progress == nil {
		return e.InitializeProgress(ctx)
	}
	return progress, nil
}

func (e *engine) saveProgress(ctx context.Context, progress *UserProgress) error {
	data, err := json.Marshal(progress)
	if err != nil {
		return fmt.Errorf("marshal progress: %w", err)
	}
	if err := e.store.Set(ctx, progressKey, string(data)); err != nil {
		return fmt.Errorf("save progress: %w", err)
	}
	return nil
}
