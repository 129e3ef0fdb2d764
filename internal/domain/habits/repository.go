package habits

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"habitloop/internal/infrastructure/store"
	"habitloop/pkg/logger"
)

var (
	ErrHabitNotFound = errors.New("habit not found")
	ErrInvalidInput  = errors.New("invalid input")
)

// Storage keys. Each holds one whole JSON document.
const (
	habitsKey      = "habits"
	completionsKey = "habit_completions"
	undoSlotKey    = "deleted_habits"
)

// Undo outcome messages returned to the caller.
const (
	msgNothingToUndo = "Nothing to undo"
	msgUnknownAction = "Unknown action to undo"
	msgUndoFailed    = "Failed to undo last action"
)

// Repository defines the habit persistence operations: CRUD over the habit
// set, the append-only completion log and the single-slot undo buffer.
type Repository interface {
	ListHabits(ctx context.Context) ([]Habit, error)
	GetHabit(ctx context.Context, id string) (*Habit, error)
	AddHabit(ctx context.Context, input CreateHabitInput) (*Habit, error)
	UpdateHabit(ctx context.Context, habit Habit) (*Habit, error)
	DeleteHabit(ctx context.Context, id string) error
	CompleteHabit(ctx context.Context, id string, notes string) (*HabitCompletion, error)
	ListCompletions(ctx context.Context, habitID string) ([]HabitCompletion, error)
	UndoLastAction(ctx context.Context) (string, error)
}

type repository struct {
	store  store.Store
	logger *logger.Logger
	now    func() time.Time
}

// NewRepository creates a habit repository on top of the given store.
func NewRepository(st store.Store, log *logger.Logger) Repository {
	return &repository{
		store:  st,
		logger: log,
		now:    time.Now,
	}
}

// ListHabits reads the full habit set. A missing key or an unparsable
// document degrades to an empty set; corrupt data never fails the caller.
func (r *repository) ListHabits(ctx context.Context) ([]Habit, error) {
	raw, err := r.store.Get(ctx, habitsKey)
	if err != nil {
		if errors.Is(err, store.ErrKeyNotFound) {
			return []Habit{}, nil
		}
		return nil, fmt.Errorf("list habits: %w", err)
	}

	var habits []Habit
	if err := json.Unmarshal([]byte(raw), &habits); err != nil {
		r.logger.Warn("Failed to parse stored habits, returning empty set", zap.Error(err))
		return []Habit{}, nil
	}
	if habits == nil {
		habits = []Habit{}
	}
	return habits, nil
}

func (r *repository) GetHabit(ctx context.Context, id string) (*Habit, error) {
	habits, err := r.ListHabits(ctx)
	if err != nil {
		return nil, err
	}
	for i := range habits {
		if habits[i].ID == id {
			return &habits[i], nil
		}
	}
	return nil, ErrHabitNotFound
}

func (r *repository) AddHabit(ctx context.Context, input CreateHabitInput) (*Habit, error) {
	if err := validateInput(input); err != nil {
		return nil, err
	}

	habits, err := r.ListHabits(ctx)
	if err != nil {
		return nil, err
	}

	habit := Habit{
		ID:              uuid.New().String(),
		Name:            input.Name,
		Description:     input.Description,
		Frequency:       input.Frequency,
		CustomFrequency: input.CustomFrequency,
		Color:           input.Color,
		CreatedAt:       r.now(),
		Streak:          0,
	}

	habits = append(habits, habit)
	if err := r.saveHabits(ctx, habits); err != nil {
		return nil, err
	}

	// Record into the undo slot, overwriting whatever was there.
	if err := r.saveLastAction(ctx, actionAdd, habit); err != nil {
		r.logger.Error("Failed to record undo slot for add", zap.Error(err), zap.String("habit_id", habit.ID))
	}

	return &habit, nil
}

// UpdateHabit replaces the stored record wholesale with the given habit.
// The pre-update state goes into the undo slot before the write.
func (r *repository) UpdateHabit(ctx context.Context, habit Habit) (*Habit, error) {
	habits, err := r.ListHabits(ctx)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range habits {
		if habits[i].ID == habit.ID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, ErrHabitNotFound
	}

	if err := r.saveLastAction(ctx, actionUpdate, habits[idx]); err != nil {
		r.logger.Error("Failed to record undo slot for update", zap.Error(err), zap.String("habit_id", habit.ID))
	}

	habits[idx] = habit
	if err := r.saveHabits(ctx, habits); err != nil {
		return nil, err
	}
	return &habit, nil
}

func (r *repository) DeleteHabit(ctx context.Context, id string) error {
	habits, err := r.ListHabits(ctx)
	if err != nil {
		return err
	}

	idx := -1
	for i := range habits {
		if habits[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return ErrHabitNotFound
	}

	if err := r.saveLastAction(ctx, actionDelete, habits[idx]); err != nil {
		r.logger.Error("Failed to record undo slot for delete", zap.Error(err), zap.String("habit_id", id))
	}

	habits = append(habits[:idx], habits[idx+1:]...)
	return r.saveHabits(ctx, habits)
}

// CompleteHabit increments the streak by exactly one, stamps LastCompleted
// and appends a completion record. There is no frequency-window check, and
// completions are not undoable.
func (r *repository) CompleteHabit(ctx context.Context, id string, notes string) (*HabitCompletion, error) {
	habits, err := r.ListHabits(ctx)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range habits {
		if habits[i].ID == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, ErrHabitNotFound
	}

	completedAt := r.now()
	habits[idx].Streak++
	habits[idx].LastCompleted = &completedAt

	if err := r.saveHabits(ctx, habits); err != nil {
		return nil, err
	}

	completion := HabitCompletion{
		ID:          uuid.New().String(),
		HabitID:     id,
		CompletedAt: completedAt,
		Notes:       notes,
	}
	if err := r.appendCompletion(ctx, completion); err != nil {
		return nil, err
	}

	return &completion, nil
}

// ListCompletions returns the completion log entries for one habit, in
// insertion order.
func (r *repository) ListCompletions(ctx context.Context, habitID string) ([]HabitCompletion, error) {
	completions, err := r.loadCompletions(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]HabitCompletion, 0, len(completions))
	for _, c := range completions {
		if c.HabitID == habitID {
			out = append(out, c)
		}
	}
	return out, nil
}

// UndoLastAction reverses the most recent add/update/delete and clears the
// slot. The returned string is a human-readable outcome; only store I/O
// failures surface as errors.
func (r *repository) UndoLastAction(ctx context.Context) (string, error) {
	raw, err := r.store.Get(ctx, undoSlotKey)
	if err != nil {
		if errors.Is(err, store.ErrKeyNotFound) {
			return msgNothingToUndo, nil
		}
		return "", fmt.Errorf("read undo slot: %w", err)
	}
	if raw == "" {
		return msgNothingToUndo, nil
	}

	var last lastAction
	if err := json.Unmarshal([]byte(raw), &last); err != nil {
		// Leave the slot untouched so the corrupt payload stays inspectable.
		r.logger.Error("Failed to parse undo slot", zap.Error(err))
		return msgUndoFailed, nil
	}

	habits, err := r.ListHabits(ctx)
	if err != nil {
		return "", err
	}

	var msg string
	switch last.Action {
	case actionAdd:
		kept := habits[:0]
		for _, h := range habits {
			if h.ID != last.Habit.ID {
				kept = append(kept, h)
			}
		}
		habits = kept
		msg = fmt.Sprintf("Undid addition of habit %q", last.Habit.Name)

	case actionUpdate:
		for i := range habits {
			if habits[i].ID == last.Habit.ID {
				habits[i] = last.Habit
				break
			}
		}
		msg = fmt.Sprintf("Undid update of habit %q", last.Habit.Name)

	case actionDelete:
		habits = append(habits, last.Habit)
		msg = fmt.Sprintf("Restored deleted habit %q", last.Habit.Name)

	default:
		if err := r.clearLastAction(ctx); err != nil {
			return "", err
		}
		return msgUnknownAction, nil
	}

	if err := r.saveHabits(ctx, habits); err != nil {
		return "", err
	}
	// The slot is single-use regardless of which branch ran.
	if err := r.clearLastAction(ctx); err != nil {
		return "", err
	}
	return msg, nil
}

func validateInput(input CreateHabitInput) error {
	if input.Name == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if !input.Frequency.Valid() {
		return fmt.Errorf("%w: unsupported frequency %q", ErrInvalidInput, input.Frequency)
	}
	if input.Frequency == FrequencyCustom && input.CustomFrequency <= 0 {
		return fmt.Errorf("%w: custom frequency must be positive", ErrInvalidInput)
	}
	return nil
}

func (r *repository) saveHabits(ctx context.Context, habits []Habit) error {
	data, err := json.Marshal(habits)
	if err != nil {
		return fmt.Errorf("marshal habits: %w", err)
	}
	if err := r.store.Set(ctx, habitsKey, string(data)); err != nil {
		return fmt.Errorf("save habits: %w", err)
	}
	return nil
}

func (r *repository) loadCompletions(ctx context.Context) ([]HabitCompletion, error) {
	raw, err := r.store.Get(ctx, completionsKey)
	if err != nil {
		if errors.Is(err, store.ErrKeyNotFound) {
			return []HabitCompletion{}, nil
		}
		return nil, fmt.Errorf("load completions: %w", err)
	}

	var completions []HabitCompletion
	if err := json.Unmarshal([]byte(raw), &completions); err != nil {
		r.logger.Warn("Failed to parse stored completions, returning empty log", zap.Error(err))
		return []HabitCompletion{}, nil
	}
	return completions, nil
}

func (r *repository) appendCompletion(ctx context.Context, completion HabitCompletion) error {
	completions, err := r.loadCompletions(ctx)
	if err != nil {
		return err
	}
	completions = append(completions, completion)

	data, err := json.Marshal(completions)
	if err != nil {
		return fmt.Errorf("marshal completions: %w", err)
	}
	if err := r.store.Set(ctx, completionsKey, string(data)); err != nil {
		return fmt.Errorf("save completions: %w", err)
	}
	return nil
}

func (r *repository) saveLastAction(ctx context.Context, action undoAction, habit Habit) error {
	data, err := json.Marshal(lastAction{Action: action, Habit: habit})
	if err != nil {
		return fmt.Errorf("marshal undo slot: %w", err)
	}
	return r.store.Set(ctx, undoSlotKey, string(data))
}

// clearLastAction empties the slot. The store has no delete, so an empty
// string stands in for "no pending action".
func (r *repository) clearLastAction(ctx context.Context) error {
	return r.store.Set(ctx, undoSlotKey, "")
}
