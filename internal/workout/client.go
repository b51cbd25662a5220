package workout

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/dtroode/routinekeeper/internal/logger"
	"github.com/dtroode/routinekeeper/internal/model"
	"github.com/dtroode/routinekeeper/internal/observability"
)

// ExerciseFields carries the user-editable attributes of an exercise.
// Weight and Duration are nil when absent; a zero value is a real
// measurement and is transmitted as such. Empty notes are stored as
// absent.
type ExerciseFields struct {
	Name     string
	Sets     int
	Reps     int
	Weight   *float64
	Duration *float64
	Notes    string
}

// Client performs owner-scoped routine and exercise operations against
// the store and mirrors confirmed results into a local cache keyed by
// routine id. Local state is only ever mutated after the store has
// confirmed the operation; a failed call leaves it exactly as it was.
type Client struct {
	routines  model.RoutineStore
	exercises model.ExerciseStore
	logger    *logger.Logger

	mu    sync.Mutex
	cache map[uuid.UUID]*model.Routine
}

func NewClient(routines model.RoutineStore, exercises model.ExerciseStore, logger *logger.Logger) *Client {
	return &Client{
		routines:  routines,
		exercises: exercises,
		logger:    logger.Component("workout"),
		cache:     map[uuid.UUID]*model.Routine{},
	}
}

// ListRoutines fetches all routines owned by ownerID with their nested
// exercises, newest first. No routines is an empty result, not an
// error. The cache is replaced wholesale on success.
func (c *Client) ListRoutines(ctx context.Context, ownerID uuid.UUID) ([]model.Routine, error) {
	routines, err := c.routines.ListByOwner(ctx, ownerID)
	observability.RecordStoreOp("list_routines", err)
	if err != nil {
		c.logger.Error("Workout client: failed to list routines",
			"owner_id", ownerID,
			"error", err.Error())
		return nil, fmt.Errorf("failed to list routines: %w", err)
	}

	c.mu.Lock()
	c.cache = make(map[uuid.UUID]*model.Routine, len(routines))
	for i := range routines {
		r := routines[i]
		c.cache[r.ID] = &r
	}
	snapshot := c.snapshotLocked()
	c.mu.Unlock()

	return snapshot, nil
}

// CreateRoutine inserts an owner-scoped routine. A name that trims to
// empty declines locally without a store call. The server-returned row
// is inserted into the cache with an empty exercise collection, so a
// later full reload observes the same id and timestamp.
func (c *Client) CreateRoutine(ctx context.Context, ownerID uuid.UUID, name, description string) (model.Routine, error) {
	if strings.TrimSpace(name) == "" {
		return model.Routine{}, model.ErrEmptyName
	}

	routine, err := c.routines.Create(ctx, model.CreateRoutineParams{
		OwnerID:     ownerID,
		Name:        name,
		Description: optionalString(description),
	})
	observability.RecordStoreOp("create_routine", err)
	if err != nil {
		c.logger.Error("Workout client: failed to create routine",
			"owner_id", ownerID,
			"error", err.Error())
		return model.Routine{}, fmt.Errorf("failed to create routine: %w", err)
	}

	routine.Exercises = []model.Exercise{}

	c.mu.Lock()
	c.cache[routine.ID] = &routine
	c.mu.Unlock()

	c.logger.Info("Workout client: routine created", "routine_id", routine.ID)
	return routine, nil
}

// RoutineDetail loads one routine with its exercises, scoped by both
// routine id and owner id. A routine owned by someone else is
// indistinguishable from a missing one: both return model.ErrNotFound.
func (c *Client) RoutineDetail(ctx context.Context, routineID, ownerID uuid.UUID) (model.Routine, error) {
	routine, err := c.routines.GetByIDAndOwner(ctx, routineID, ownerID)
	observability.RecordStoreOp("routine_detail", err)
	if err != nil {
		c.logger.Error("Workout client: failed to load routine",
			"routine_id", routineID,
			"error", err.Error())
		return model.Routine{}, fmt.Errorf("failed to load routine: %w", err)
	}

	c.mu.Lock()
	c.cache[routine.ID] = &routine
	snapshot := copyRoutine(&routine)
	c.mu.Unlock()

	return snapshot, nil
}

// AddExercise creates an exercise in the given routine and appends the
// server-returned row to the cached collection. Declines locally when
// the name trims to empty or the routine has not been loaded.
func (c *Client) AddExercise(ctx context.Context, routineID uuid.UUID, fields ExerciseFields) (model.Exercise, error) {
	if strings.TrimSpace(fields.Name) == "" {
		return model.Exercise{}, model.ErrEmptyName
	}

	c.mu.Lock()
	_, known := c.cache[routineID]
	c.mu.Unlock()
	if !known {
		return model.Exercise{}, model.ErrNoRoutine
	}

	exercise, err := c.exercises.Create(ctx, model.CreateExerciseParams{
		RoutineID: routineID,
		Name:      fields.Name,
		Sets:      fields.Sets,
		Reps:      fields.Reps,
		Weight:    fields.Weight,
		Duration:  fields.Duration,
		Notes:     optionalString(fields.Notes),
	})
	observability.RecordStoreOp("add_exercise", err)
	if err != nil {
		c.logger.Error("Workout client: failed to add exercise",
			"routine_id", routineID,
			"error", err.Error())
		return model.Exercise{}, fmt.Errorf("failed to add exercise: %w", err)
	}

	c.mu.Lock()
	if routine, ok := c.cache[routineID]; ok {
		routine.Exercises = append(routine.Exercises, exercise)
	}
	c.mu.Unlock()

	return exercise, nil
}

// UpdateExercise replaces the full editable field set of an exercise
// and swaps the confirmed row into the cache by id. Ids not present in
// the cache are left untouched locally.
func (c *Client) UpdateExercise(ctx context.Context, exerciseID uuid.UUID, fields ExerciseFields) (model.Exercise, error) {
	if strings.TrimSpace(fields.Name) == "" {
		return model.Exercise{}, model.ErrEmptyName
	}

	exercise, err := c.exercises.Update(ctx, exerciseID, model.UpdateExerciseParams{
		Name:     fields.Name,
		Sets:     fields.Sets,
		Reps:     fields.Reps,
		Weight:   fields.Weight,
		Duration: fields.Duration,
		Notes:    optionalString(fields.Notes),
	})
	observability.RecordStoreOp("update_exercise", err)
	if err != nil {
		c.logger.Error("Workout client: failed to update exercise",
			"exercise_id", exerciseID,
			"error", err.Error())
		return model.Exercise{}, fmt.Errorf("failed to update exercise: %w", err)
	}

	c.mu.Lock()
	if routine, ok := c.cache[exercise.RoutineID]; ok {
		for i := range routine.Exercises {
			if routine.Exercises[i].ID == exerciseID {
				routine.Exercises[i] = exercise
				break
			}
		}
	}
	c.mu.Unlock()

	return exercise, nil
}

// DeleteExercise removes the exercise remotely, then filters it out of
// the cache. Removing an id already absent locally is a no-op, so the
// local effect is idempotent.
func (c *Client) DeleteExercise(ctx context.Context, exerciseID uuid.UUID) error {
	err := c.exercises.Delete(ctx, exerciseID)
	observability.RecordStoreOp("delete_exercise", err)
	if err != nil {
		c.logger.Error("Workout client: failed to delete exercise",
			"exercise_id", exerciseID,
			"error", err.Error())
		return fmt.Errorf("failed to delete exercise: %w", err)
	}

	c.mu.Lock()
	for _, routine := range c.cache {
		routine.Exercises = slices.DeleteFunc(routine.Exercises, func(e model.Exercise) bool {
			return e.ID == exerciseID
		})
	}
	c.mu.Unlock()

	return nil
}

// Routines returns a snapshot of the cached collection ordered by
// creation time descending.
func (c *Client) Routines() []model.Routine {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Routine returns a copy of one cached routine.
func (c *Client) Routine(id uuid.UUID) (model.Routine, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	routine, ok := c.cache[id]
	if !ok {
		return model.Routine{}, false
	}
	return copyRoutine(routine), true
}

// snapshotLocked must be called with c.mu held. Ordering is derived
// from timestamps rather than insertion order, so reconciliation stays
// independent of how entries arrived.
func (c *Client) snapshotLocked() []model.Routine {
	out := make([]model.Routine, 0, len(c.cache))
	for _, routine := range c.cache {
		out = append(out, copyRoutine(routine))
	}
	slices.SortStableFunc(out, func(a, b model.Routine) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	return out
}

func copyRoutine(r *model.Routine) model.Routine {
	out := *r
	out.Exercises = slices.Clone(r.Exercises)
	return out
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
