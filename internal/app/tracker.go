package app

import (
	"context"

	"go.uber.org/zap"

	"habitloop/internal/domain/habits"
	"habitloop/internal/domain/progress"
	"habitloop/pkg/logger"
)

// Tracker is the application facade. It sequences the habit repository and
// the progress engine for every user action; the two services never call
// each other directly.
type Tracker struct {
	repo   habits.Repository
	engine progress.Engine
	logger *logger.Logger
}

// NewTracker wires the facade.
func NewTracker(repo habits.Repository, engine progress.Engine, log *logger.Logger) *Tracker {
	return &Tracker{
		repo:   repo,
		engine: engine,
		logger: log,
	}
}

// AddHabitResult carries the created habit and any achievements the add
// unlocked.
type AddHabitResult struct {
	Habit    *habits.Habit
	Unlocked []progress.Achievement
}

// CompleteHabitResult carries the completion record, the habit with its
// updated streak, and any achievements the completion unlocked.
type CompleteHabitResult struct {
	Completion *habits.HabitCompletion
	Habit      *habits.Habit
	Unlocked   []progress.Achievement
}

// Start performs session bootstrap: it makes sure the progress aggregate
// exists before any habit event arrives.
func (t *Tracker) Start(ctx context.Context) error {
	if _, err := t.engine.InitializeProgress(ctx); err != nil {
		return err
	}
	return nil
}

func (t *Tracker) ListHabits(ctx context.Context) ([]habits.Habit, error) {
	return t.repo.ListHabits(ctx)
}

func (t *Tracker) GetHabit(ctx context.Context, id string) (*habits.Habit, error) {
	return t.repo.GetHabit(ctx, id)
}

func (t *Tracker) AddHabit(ctx context.Context, input habits.CreateHabitInput) (*AddHabitResult, error) {
	habit, err := t.repo.AddHabit(ctx, input)
	if err != nil {
		return nil, err
	}

	unlocked, err := t.engine.HabitAdded(ctx, *habit)
	if err != nil {
		return nil, err
	}

	t.logger.Info("Habit added",
		zap.String("habit_id", habit.ID),
		zap.String("name", habit.Name),
		zap.Int("unlocked", len(unlocked)))
	return &AddHabitResult{Habit: habit, Unlocked: unlocked}, nil
}

// UpdateHabit touches the repository only; edits do not change counters or
// stats until the next completion mirrors the streak.
func (t *Tracker) UpdateHabit(ctx context.Context, habit habits.Habit) (*habits.Habit, error) {
	return t.repo.UpdateHabit(ctx, habit)
}

func (t *Tracker) DeleteHabit(ctx context.Context, id string) error {
	if err := t.repo.DeleteHabit(ctx, id); err != nil {
		return err
	}
	if err := t.engine.HabitDeleted(ctx, id); err != nil {
		return err
	}
	t.logger.Info("Habit deleted", zap.String("habit_id", id))
	return nil
}

func (t *Tracker) CompleteHabit(ctx context.Context, id string, notes string) (*CompleteHabitResult, error) {
	completion, err := t.repo.CompleteHabit(ctx, id, notes)
	if err != nil {
		return nil, err
	}

	// Re-read so the engine sees the post-completion streak.
	habit, err := t.repo.GetHabit(ctx, id)
	if err != nil {
		return nil, err
	}

	unlocked, err := t.engine.HabitCompleted(ctx, *habit, *completion)
	if err != nil {
		return nil, err
	}

	return &CompleteHabitResult{Completion: completion, Habit: habit, Unlocked: unlocked}, nil
}

// UndoLastAction reverses the last add/update/delete in the repository.
// Progress events are deliberately not replayed: undo restores habit records,
// not counters.
func (t *Tracker) UndoLastAction(ctx context.Context) (string, error) {
	return t.repo.UndoLastAction(ctx)
}

func (t *Tracker) ListCompletions(ctx context.Context, habitID string) ([]habits.HabitCompletion, error) {
	return t.repo.ListCompletions(ctx, habitID)
}

func (t *Tracker) UserProgress(ctx context.Context) (*progress.UserProgress, error) {
	return t.engine.GetUserProgress(ctx)
}

func (t *Tracker) AllAchievements(ctx context.Context) ([]progress.Achievement, error) {
	return t.engine.GetAllAchievements(ctx)
}

func (t *Tracker) UnlockedAchievements(ctx context.Context) ([]progress.Achievement, error) {
	return t.engine.GetUnlockedAchievements(ctx)
}

func (t *Tracker) HabitStats(ctx context.Context, habitID string) (*progress.HabitStats, error) {
	return t.engine.GetHabitStats(ctx, habitID)
}
