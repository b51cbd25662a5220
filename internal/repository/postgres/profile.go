package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dtroode/routinekeeper/internal/model"
)

var _ model.ProfileStore = (*ProfileRepository)(nil)

type ProfileRepository struct {
	db *Connection
}

func NewProfileRepository(db *Connection) *ProfileRepository {
	return &ProfileRepository{
		db: db,
	}
}

func (r *ProfileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (model.Profile, error) {
	var profile model.Profile
	query := `SELECT id, username, created_at FROM profiles WHERE id = $1`

	err := r.db.QueryRow(ctx, query, userID).Scan(
		&profile.ID, &profile.Username, &profile.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Profile{}, model.ErrNotFound
		}
		return model.Profile{}, fmt.Errorf("failed to get profile by user id: %w", err)
	}

	return profile, nil
}

func (r *ProfileRepository) Create(ctx context.Context, profile model.Profile) (model.Profile, error) {
	query := `INSERT INTO profiles (id, username, created_at)
			  VALUES ($1, $2, $3)
			  RETURNING id, username, created_at`

	var savedProfile model.Profile
	err := r.db.QueryRow(ctx, query,
		profile.ID, profile.Username, profile.CreatedAt,
	).Scan(
		&savedProfile.ID, &savedProfile.Username, &savedProfile.CreatedAt,
	)
	if err != nil {
		return model.Profile{}, fmt.Errorf("failed to create profile: %w", err)
	}

	return savedProfile, nil
}
