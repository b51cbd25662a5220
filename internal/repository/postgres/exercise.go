package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dtroode/routinekeeper/internal/model"
)

var _ model.ExerciseStore = (*ExerciseRepository)(nil)

type ExerciseRepository struct {
	db *Connection
}

func NewExerciseRepository(db *Connection) *ExerciseRepository {
	return &ExerciseRepository{
		db: db,
	}
}

func (r *ExerciseRepository) Create(ctx context.Context, params model.CreateExerciseParams) (model.Exercise, error) {
	query := `INSERT INTO exercises (id, routine_id, name, sets, reps, weight, duration, notes)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  RETURNING id, routine_id, name, sets, reps, weight, duration, notes, created_at`

	var exercise model.Exercise
	err := r.db.QueryRow(ctx, query,
		uuid.New(), params.RoutineID, params.Name, params.Sets, params.Reps,
		params.Weight, params.Duration, params.Notes,
	).Scan(
		&exercise.ID, &exercise.RoutineID, &exercise.Name, &exercise.Sets, &exercise.Reps,
		&exercise.Weight, &exercise.Duration, &exercise.Notes, &exercise.CreatedAt,
	)
	if err != nil {
		return model.Exercise{}, fmt.Errorf("failed to create exercise: %w", err)
	}

	return exercise, nil
}

func (r *ExerciseRepository) Update(ctx context.Context, id uuid.UUID, params model.UpdateExerciseParams) (model.Exercise, error) {
	query := `UPDATE exercises
			  SET name = $2, sets = $3, reps = $4, weight = $5, duration = $6, notes = $7
			  WHERE id = $1
			  RETURNING id, routine_id, name, sets, reps, weight, duration, notes, created_at`

	var exercise model.Exercise
	err := r.db.QueryRow(ctx, query,
		id, params.Name, params.Sets, params.Reps, params.Weight, params.Duration, params.Notes,
	).Scan(
		&exercise.ID, &exercise.RoutineID, &exercise.Name, &exercise.Sets, &exercise.Reps,
		&exercise.Weight, &exercise.Duration, &exercise.Notes, &exercise.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Exercise{}, model.ErrNotFound
		}
		return model.Exercise{}, fmt.Errorf("failed to update exercise: %w", err)
	}

	return exercise, nil
}

// Delete removes an exercise by id. Deleting an id with no matching
// row is not an error, matching the scoped-table capability contract.
func (r *ExerciseRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM exercises WHERE id = $1`
	if _, err := r.db.Exec(ctx, query, id); err != nil {
		return fmt.Errorf("failed to delete exercise: %w", err)
	}
	return nil
}
