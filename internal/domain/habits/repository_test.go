package habits

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"habitloop/internal/infrastructure/store"
	"habitloop/pkg/logger"
)

func newTestRepository(t *testing.T) (Repository, *store.MemoryStore) {
	t.Helper()
	st := store.NewMemoryStore()
	repo := NewRepository(st, logger.NewLogger("error"))
	return repo, st
}

func TestAddHabitValidation(t *testing.T) {
	tests := []struct {
		name    string
		input   CreateHabitInput
		wantErr error
	}{
		{
			name:    "Valid daily habit",
			input:   CreateHabitInput{Name: "Read", Frequency: FrequencyDaily},
			wantErr: nil,
		},
		{
			name:    "Missing name is rejected",
			input:   CreateHabitInput{Frequency: FrequencyDaily},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "Unsupported frequency is rejected",
			input:   CreateHabitInput{Name: "Read", Frequency: Frequency("hourly")},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "Custom frequency without interval is rejected",
			input:   CreateHabitInput{Name: "Read", Frequency: FrequencyCustom},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "Custom frequency with interval is accepted",
			input:   CreateHabitInput{Name: "Read", Frequency: FrequencyCustom, CustomFrequency: 3},
			wantErr: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, _ := newTestRepository(t)
			habit, err := repo.AddHabit(context.Background(), tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, habit.ID)
			assert.Equal(t, tt.input.Name, habit.Name)
			assert.Equal(t, 0, habit.Streak)
			assert.Nil(t, habit.LastCompleted)
		})
	}
}

func TestAddHabitRejectedInputLeavesStoreUntouched(t *testing.T) {
	repo, st := newTestRepository(t)
	before := st.Snapshot()

	_, err := repo.AddHabit(context.Background(), CreateHabitInput{Frequency: FrequencyDaily})
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, before, st.Snapshot())
}

func TestListHabitsEmptyStore(t *testing.T) {
	repo, _ := newTestRepository(t)
	habits, err := repo.ListHabits(context.Background())
	require.NoError(t, err)
	assert.Empty(t, habits)
}

func TestListHabitsCorruptDocument(t *testing.T) {
	repo, st := newTestRepository(t)
	require.NoError(t, st.Set(context.Background(), "habits", "{not json"))

	habits, err := repo.ListHabits(context.Background())
	require.NoError(t, err)
	assert.Empty(t, habits)
}

func TestCompleteHabitIncrementsStreak(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	habit, err := repo.AddHabit(ctx, CreateHabitInput{Name: "Run", Frequency: FrequencyDaily})
	require.NoError(t, err)

	for i := 1; i <= 3; i++ {
		completion, err := repo.CompleteHabit(ctx, habit.ID, "")
		require.NoError(t, err)
		assert.Equal(t, habit.ID, completion.HabitID)

		got, err := repo.GetHabit(ctx, habit.ID)
		require.NoError(t, err)
		assert.Equal(t, i, got.Streak)
		require.NotNil(t, got.LastCompleted)
		assert.Equal(t, completion.CompletedAt.Unix(), got.LastCompleted.Unix())
	}

	completions, err := repo.ListCompletions(ctx, habit.ID)
	require.NoError(t, err)
	assert.Len(t, completions, 3)
}

func TestCompleteHabitKeepsNotes(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	habit, err := repo.AddHabit(ctx, CreateHabitInput{Name: "Run", Frequency: FrequencyDaily})
	require.NoError(t, err)

	_, err = repo.CompleteHabit(ctx, habit.ID, "morning run")
	require.NoError(t, err)

	completions, err := repo.ListCompletions(ctx, habit.ID)
	require.NoError(t, err)
	require.Len(t, completions, 1)
	assert.Equal(t, "morning run", completions[0].Notes)
}

func TestListCompletionsFiltersByHabit(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	a, err := repo.AddHabit(ctx, CreateHabitInput{Name: "A", Frequency: FrequencyDaily})
	require.NoError(t, err)
	b, err := repo.AddHabit(ctx, CreateHabitInput{Name: "B", Frequency: FrequencyDaily})
	require.NoError(t, err)

	_, err = repo.CompleteHabit(ctx, a.ID, "")
	require.NoError(t, err)
	_, err = repo.CompleteHabit(ctx, b.ID, "")
	require.NoError(t, err)
	_, err = repo.CompleteHabit(ctx, a.ID, "")
	require.NoError(t, err)

	forA, err := repo.ListCompletions(ctx, a.ID)
	require.NoError(t, err)
	assert.Len(t, forA, 2)

	forB, err := repo.ListCompletions(ctx, b.ID)
	require.NoError(t, err)
	assert.Len(t, forB, 1)
}

func TestUpdateHabitNotFoundLeavesStoreUntouched(t *testing.T) {
	repo, st := newTestRepository(t)
	ctx := context.Background()

	_, err := repo.AddHabit(ctx, CreateHabitInput{Name: "Read", Frequency: FrequencyDaily})
	require.NoError(t, err)
	before := st.Snapshot()

	_, err = repo.UpdateHabit(ctx, Habit{ID: "missing", Name: "Nope", Frequency: FrequencyDaily})
	assert.ErrorIs(t, err, ErrHabitNotFound)
	assert.Equal(t, before, st.Snapshot())
}

func TestDeleteHabitNotFoundLeavesStoreUntouched(t *testing.T) {
	repo, st := newTestRepository(t)
	ctx := context.Background()

	_, err := repo.AddHabit(ctx, CreateHabitInput{Name: "Read", Frequency: FrequencyDaily})
	require.NoError(t, err)
	before := st.Snapshot()

	err = repo.DeleteHabit(ctx, "missing")
	assert.ErrorIs(t, err, ErrHabitNotFound)
	assert.Equal(t, before, st.Snapshot())
}

func TestCompleteHabitNotFoundLeavesStoreUntouched(t *testing.T) {
	repo, st := newTestRepository(t)
	before := st.Snapshot()

	_, err := repo.CompleteHabit(context.Background(), "missing", "")
	assert.ErrorIs(t, err, ErrHabitNotFound)
	assert.Equal(t, before, st.Snapshot())
}

func TestUndoNothingToUndo(t *testing.T) {
	repo, _ := newTestRepository(t)
	msg, err := repo.UndoLastAction(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Nothing to undo", msg)
}

func TestUndoAddRemovesHabit(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	habit, err := repo.AddHabit(ctx, CreateHabitInput{Name: "Meditate", Frequency: FrequencyDaily})
	require.NoError(t, err)

	msg, err := repo.UndoLastAction(ctx)
	require.NoError(t, err)
	assert.Equal(t, `Undid addition of habit "Meditate"`, msg)

	_, err = repo.GetHabit(ctx, habit.ID)
	assert.ErrorIs(t, err, ErrHabitNotFound)
}

func TestUndoUpdateRestoresPreviousState(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	habit, err := repo.AddHabit(ctx, CreateHabitInput{Name: "Stretch", Frequency: FrequencyDaily})
	require.NoError(t, err)

	changed := *habit
	changed.Name = "Stretch longer"
	changed.Frequency = FrequencyWeekly
	_, err = repo.UpdateHabit(ctx, changed)
	require.NoError(t, err)

	msg, err := repo.UndoLastAction(ctx)
	require.NoError(t, err)
	assert.Equal(t, `Undid update of habit "Stretch"`, msg)

	got, err := repo.GetHabit(ctx, habit.ID)
	require.NoError(t, err)
	assert.Equal(t, "Stretch", got.Name)
	assert.Equal(t, FrequencyDaily, got.Frequency)
}

func TestUndoDeleteRestoresHabit(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	habit, err := repo.AddHabit(ctx, CreateHabitInput{Name: "Journal", Frequency: FrequencyDaily})
	require.NoError(t, err)
	require.NoError(t, repo.DeleteHabit(ctx, habit.ID))

	msg, err := repo.UndoLastAction(ctx)
	require.NoError(t, err)
	assert.Equal(t, `Restored deleted habit "Journal"`, msg)

	got, err := repo.GetHabit(ctx, habit.ID)
	require.NoError(t, err)
	assert.Equal(t, habit.ID, got.ID)
}

func TestUndoSlotHoldsOnlyLastAction(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	first, err := repo.AddHabit(ctx, CreateHabitInput{Name: "First", Frequency: FrequencyDaily})
	require.NoError(t, err)
	_, err = repo.AddHabit(ctx, CreateHabitInput{Name: "Second", Frequency: FrequencyDaily})
	require.NoError(t, err)

	msg, err := repo.UndoLastAction(ctx)
	require.NoError(t, err)
	assert.Equal(t, `Undid addition of habit "Second"`, msg)

	// The slot is single-use: the first add is no longer reachable.
	msg, err = repo.UndoLastAction(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Nothing to undo", msg)

	_, err = repo.GetHabit(ctx, first.ID)
	assert.NoError(t, err)
}

func TestUndoCompletionIsNotUndoable(t *testing.T) {
	repo, _ := newTestRepository(t)
	ctx := context.Background()

	habit, err := repo.AddHabit(ctx, CreateHabitInput{Name: "Swim", Frequency: FrequencyDaily})
	require.NoError(t, err)
	_, err = repo.CompleteHabit(ctx, habit.ID, "")
	require.NoError(t, err)

	// Completing does not touch the undo slot, so undo targets the add.
	msg, err := repo.UndoLastAction(ctx)
	require.NoError(t, err)
	assert.Equal(t, `Undid addition of habit "Swim"`, msg)
}

func TestUndoCorruptSlotFailsSoftAndKeepsSlot(t *testing.T) {
	repo, st := newTestRepository(t)
	ctx := context.Background()

	require.NoError(t, st.Set(ctx, "deleted_habits", "{broken"))

	msg, err := repo.UndoLastAction(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Failed to undo last action", msg)
	assert.Equal(t, "{broken", st.Snapshot()["deleted_habits"])
}

func TestUndoUnknownActionClearsSlot(t *testing.T) {
	repo, st := newTestRepository(t)
	ctx := context.Background()

	require.NoError(t, st.Set(ctx, "deleted_habits", `{"action":"rename","habit":{"id":"x","name":"X"}}`))

	msg, err := repo.UndoLastAction(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Unknown action to undo", msg)
	assert.Equal(t, "", st.Snapshot()["deleted_habits"])
}

func TestRepositoryUsesInjectedClock(t *testing.T) {
	st := store.NewMemoryStore()
	repo := NewRepository(st, logger.NewLogger("error"))
	fixed := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	repo.(*repository).now = func() time.Time { return fixed }

	ctx := context.Background()
	habit, err := repo.AddHabit(ctx, CreateHabitInput{Name: "Walk", Frequency: FrequencyDaily})
	require.NoError(t, err)
	assert.True(t, habit.CreatedAt.Equal(fixed))

	completion, err := repo.CompleteHabit(ctx, habit.ID, "")
	require.NoError(t, err)
	assert.True(t, completion.CompletedAt.Equal(fixed))
}
