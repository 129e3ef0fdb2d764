package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"habitloop/internal/domain/habits"
	"habitloop/internal/domain/progress"
	"habitloop/internal/infrastructure/store"
	"habitloop/pkg/logger"
)

func newTestTracker(t *testing.T) (*Tracker, *store.MemoryStore) {
	t.Helper()
	st := store.NewMemoryStore()
	log := logger.NewLogger("error")
	tracker := NewTracker(habits.NewRepository(st, log), progress.NewEngine(st, log), log)
	require.NoError(t, tracker.Start(context.Background()))
	return tracker, st
}

func TestStartInitializesProgress(t *testing.T) {
	tracker, _ := newTestTracker(t)

	userProgress, err := tracker.UserProgress(context.Background())
	require.NoError(t, err)
	require.NotNil(t, userProgress)
	assert.Len(t, userProgress.Achievements, 9)
}

func TestAddHabitUnlocksFirstHabit(t *testing.T) {
	tracker, _ := newTestTracker(t)

	result, err := tracker.AddHabit(context.Background(), habits.CreateHabitInput{
		Name:      "Read",
		Frequency: habits.FrequencyDaily,
	})
	require.NoError(t, err)
	assert.Equal(t, "Read", result.Habit.Name)
	require.Len(t, result.Unlocked, 1)
	assert.Equal(t, "first-habit", result.Unlocked[0].ID)
}

func TestCompleteHabitPropagatesStreakToStats(t *testing.T) {
	tracker, _ := newTestTracker(t)
	ctx := context.Background()

	added, err := tracker.AddHabit(ctx, habits.CreateHabitInput{Name: "Run", Frequency: habits.FrequencyDaily})
	require.NoError(t, err)

	result, err := tracker.CompleteHabit(ctx, added.Habit.ID, "lap one")
	require.NoError(t, err)
	assert.Equal(t, 1, result.Habit.Streak)
	assert.Equal(t, added.Habit.ID, result.Completion.HabitID)

	stats, err := tracker.HabitStats(ctx, added.Habit.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Streak)
	assert.Equal(t, 1, stats.TotalCompletions)
}

func TestThreeCompletionsUnlockStreakThree(t *testing.T) {
	tracker, _ := newTestTracker(t)
	ctx := context.Background()

	added, err := tracker.AddHabit(ctx, habits.CreateHabitInput{Name: "Run", Frequency: habits.FrequencyDaily})
	require.NoError(t, err)

	var seen []string
	for i := 0; i < 3; i++ {
		result, err := tracker.CompleteHabit(ctx, added.Habit.ID, "")
		require.NoError(t, err)
		for _, a := range result.Unlocked {
			seen = append(seen, a.ID)
		}
	}

	assert.Contains(t, seen, "first-completion")
	assert.Contains(t, seen, "streak-3")
}

func TestDeleteHabitUpdatesProgress(t *testing.T) {
	tracker, _ := newTestTracker(t)
	ctx := context.Background()

	added, err := tracker.AddHabit(ctx, habits.CreateHabitInput{Name: "Read", Frequency: habits.FrequencyDaily})
	require.NoError(t, err)

	require.NoError(t, tracker.DeleteHabit(ctx, added.Habit.ID))

	userProgress, err := tracker.UserProgress(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, userProgress.TotalHabits)

	_, err = tracker.GetHabit(ctx, added.Habit.ID)
	assert.ErrorIs(t, err, habits.ErrHabitNotFound)
}

func TestUndoRestoresHabitButNotCounters(t *testing.T) {
	tracker, _ := newTestTracker(t)
	ctx := context.Background()

	added, err := tracker.AddHabit(ctx, habits.CreateHabitInput{Name: "Read", Frequency: habits.FrequencyDaily})
	require.NoError(t, err)
	require.NoError(t, tracker.DeleteHabit(ctx, added.Habit.ID))

	msg, err := tracker.UndoLastAction(ctx)
	require.NoError(t, err)
	assert.Equal(t, `Restored deleted habit "Read"`, msg)

	// The habit record is back.
	got, err := tracker.GetHabit(ctx, added.Habit.ID)
	require.NoError(t, err)
	assert.Equal(t, added.Habit.ID, got.ID)

	// Progress counters are not replayed by undo.
	userProgress, err := tracker.UserProgress(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, userProgress.TotalHabits)
}

func TestUpdateHabitDoesNotTouchProgress(t *testing.T) {
	tracker, _ := newTestTracker(t)
	ctx := context.Background()

	added, err := tracker.AddHabit(ctx, habits.CreateHabitInput{Name: "Read", Frequency: habits.FrequencyDaily})
	require.NoError(t, err)

	changed := *added.Habit
	changed.Name = "Read more"
	_, err = tracker.UpdateHabit(ctx, changed)
	require.NoError(t, err)

	// The stats snapshot keeps the name from creation time.
	stats, err := tracker.HabitStats(ctx, added.Habit.ID)
	require.NoError(t, err)
	assert.Equal(t, "Read", stats.HabitName)
}
