package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dtroode/routinekeeper/internal/model"
)

var _ model.RoutineStore = (*RoutineRepository)(nil)

type RoutineRepository struct {
	db *Connection
}

func NewRoutineRepository(db *Connection) *RoutineRepository {
	return &RoutineRepository{
		db: db,
	}
}

func (r *RoutineRepository) Create(ctx context.Context, params model.CreateRoutineParams) (model.Routine, error) {
	query := `INSERT INTO routines (id, user_id, name, description)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id, user_id, name, description, created_at`

	var routine model.Routine
	err := r.db.QueryRow(ctx, query,
		uuid.New(), params.OwnerID, params.Name, params.Description,
	).Scan(
		&routine.ID, &routine.OwnerID, &routine.Name, &routine.Description, &routine.CreatedAt,
	)
	if err != nil {
		return model.Routine{}, fmt.Errorf("failed to create routine: %w", err)
	}

	routine.Exercises = []model.Exercise{}
	return routine, nil
}

func (r *RoutineRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Routine, error) {
	query := `
		SELECT id, user_id, name, description, created_at
		FROM routines
		WHERE user_id = $1
		ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	routines := []model.Routine{}
	ids := []uuid.UUID{}
	for rows.Next() {
		var routine model.Routine
		err := rows.Scan(
			&routine.ID, &routine.OwnerID, &routine.Name, &routine.Description, &routine.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		routine.Exercises = []model.Exercise{}
		routines = append(routines, routine)
		ids = append(ids, routine.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(routines) == 0 {
		return routines, nil
	}

	exercisesByRoutine, err := r.exercisesForRoutines(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range routines {
		if list, ok := exercisesByRoutine[routines[i].ID]; ok {
			routines[i].Exercises = list
		}
	}

	return routines, nil
}

func (r *RoutineRepository) GetByIDAndOwner(ctx context.Context, id, ownerID uuid.UUID) (model.Routine, error) {
	query := `
		SELECT id, user_id, name, description, created_at
		FROM routines
		WHERE id = $1 AND user_id = $2`

	var routine model.Routine
	err := r.db.QueryRow(ctx, query, id, ownerID).Scan(
		&routine.ID, &routine.OwnerID, &routine.Name, &routine.Description, &routine.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Routine{}, model.ErrNotFound
		}
		return model.Routine{}, fmt.Errorf("failed to get routine: %w", err)
	}

	routine.Exercises = []model.Exercise{}
	exercisesByRoutine, err := r.exercisesForRoutines(ctx, []uuid.UUID{routine.ID})
	if err != nil {
		return model.Routine{}, err
	}
	if list, ok := exercisesByRoutine[routine.ID]; ok {
		routine.Exercises = list
	}

	return routine, nil
}

func (r *RoutineRepository) exercisesForRoutines(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID][]model.Exercise, error) {
	query := `
		SELECT id, routine_id, name, sets, reps, weight, duration, notes, created_at
		FROM exercises
		WHERE routine_id = ANY($1)
		ORDER BY created_at ASC`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to list exercises: %w", err)
	}
	defer rows.Close()

	out := map[uuid.UUID][]model.Exercise{}
	for rows.Next() {
		var exercise model.Exercise
		err := rows.Scan(
			&exercise.ID, &exercise.RoutineID, &exercise.Name, &exercise.Sets, &exercise.Reps,
			&exercise.Weight, &exercise.Duration, &exercise.Notes, &exercise.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		out[exercise.RoutineID] = append(out[exercise.RoutineID], exercise)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return out, nil
}
