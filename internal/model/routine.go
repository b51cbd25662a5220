package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// RoutineStore defines persistence operations for routines. Every query
// is scoped to an owner; rows belonging to other users behave as if
// they do not exist.
type RoutineStore interface {
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]Routine, error)
	Create(ctx context.Context, params CreateRoutineParams) (Routine, error)
	// GetByIDAndOwner loads one routine with its exercises. A routine
	// owned by someone else yields ErrNotFound, same as a missing id.
	GetByIDAndOwner(ctx context.Context, id, ownerID uuid.UUID) (Routine, error)
}

// ExerciseStore defines persistence operations for exercises. Ownership
// is enforced transitively through the parent routine by the store.
type ExerciseStore interface {
	Create(ctx context.Context, params CreateExerciseParams) (Exercise, error)
	Update(ctx context.Context, id uuid.UUID, params UpdateExerciseParams) (Exercise, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Routine is a user-owned named collection of exercises. IDs and
// timestamps are assigned by the store, never by callers.
type Routine struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	Name        string
	Description *string
	Exercises   []Exercise
	CreatedAt   time.Time
}

// Exercise is one prescribed movement within a routine. Weight and
// duration are independently optional; a nil pointer means "no value"
// and is distinct from a stored zero.
type Exercise struct {
	ID        uuid.UUID
	RoutineID uuid.UUID
	Name      string
	Sets      int
	Reps      int
	Weight    *float64
	Duration  *float64
	Notes     *string
	CreatedAt time.Time
}

// CreateRoutineParams contains parameters to create a routine.
type CreateRoutineParams struct {
	OwnerID     uuid.UUID
	Name        string
	Description *string
}

// CreateExerciseParams contains parameters to create an exercise.
type CreateExerciseParams struct {
	RoutineID uuid.UUID
	Name      string
	Sets      int
	Reps      int
	Weight    *float64
	Duration  *float64
	Notes     *string
}

// UpdateExerciseParams contains the full replacement field set for an
// exercise update. Optional fields set to nil are stored as absent.
type UpdateExerciseParams struct {
	Name     string
	Sets     int
	Reps     int
	Weight   *float64
	Duration *float64
	Notes    *string
}
